package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/logger"
	"collection-connector/internal/infra/provider"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ChannelService runs one webhook delivery end to end: parse the fragment,
// buffer it, wait out the debounce window, and — when this handler is the
// one that consumes the burst — drive the agent turn, the reply and the
// audit trail. Handlers that lose the race observe waiting and stop without
// side effects.
type ChannelService struct {
	Logger         *logger.Logger
	Users          Iservices.IUserService
	Parser         Iservices.IFragmentParser
	Aggregator     Iservices.IAggregatorService
	Memory         Iservices.IMemoryService
	QueryAI        Iservices.IQueryAIService
	Audit          Iservices.IAuditService
	WhatsApp       provider.IWhatsAppProvider
	Accounts       provider.IAccountProvider
	DebounceWindow time.Duration
	ReplyPause     time.Duration
}

func NewChannelService(
	logger *logger.Logger,
	users Iservices.IUserService,
	parser Iservices.IFragmentParser,
	aggregator Iservices.IAggregatorService,
	memory Iservices.IMemoryService,
	queryAI Iservices.IQueryAIService,
	audit Iservices.IAuditService,
	whatsApp provider.IWhatsAppProvider,
	accounts provider.IAccountProvider,
	debounceWindow time.Duration,
	replyPause time.Duration,
) *ChannelService {
	return &ChannelService{
		Logger:         logger,
		Users:          users,
		Parser:         parser,
		Aggregator:     aggregator,
		Memory:         memory,
		QueryAI:        queryAI,
		Audit:          audit,
		WhatsApp:       whatsApp,
		Accounts:       accounts,
		DebounceWindow: debounceWindow,
		ReplyPause:     replyPause,
	}
}

func (cs *ChannelService) HandleInbound(ctx context.Context, payload *dto.InboundMessage) error {
	sender := strings.TrimSpace(payload.Sender)
	if sender == "" {
		return fmt.Errorf("channel: empty sender")
	}

	user, err := cs.Users.GetOrCreateUser(ctx, sender, payload.ForceAnonymous)
	if err != nil {
		return err
	}

	fragment, err := cs.Parser.Parse(ctx, payload, user)
	if err != nil {
		return err
	}

	if err := cs.Aggregator.Buffer(ctx, sender, fragment); err != nil {
		return err
	}

	turn, err := cs.Aggregator.AwaitTurn(ctx, sender, cs.DebounceWindow)
	if err != nil {
		return err
	}

	cs.Logger.Info("Aggregated turn status", logrus.Fields{"user_id": sender, "session_id": user.CurrentSessionID, "status": string(turn.Status)})

	switch turn.Status {
	case entities.TurnWaiting:
		// another handler owns this burst
		return nil
	case entities.TurnInternalFailure:
		return cs.handleInternalFailure(ctx, user, turn)
	default:
		return cs.handleCompleteTurn(ctx, user, turn)
	}
}

// handleInternalFailure records both sides of the failed attempt — the raw
// rejected fragments and the synthesized failure explanation — and tells the
// user what went wrong. The agent is never invoked.
func (cs *ChannelService) handleInternalFailure(ctx context.Context, user entities.User, turn entities.TurnResult) error {
	invokeID := uuid.NewString()
	cs.Audit.RecordFragments(ctx, user, invokeID, turn.Fragments)
	cs.Audit.RecordOutcome(ctx, user, invokeID, turn.Text)

	if err := cs.WhatsApp.SendTextMessage(ctx, user.UserID, turn.Text); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to send failure message to %s: %s", user.UserID, err.Error()))
		return err
	}
	return nil
}

func (cs *ChannelService) handleCompleteTurn(ctx context.Context, user entities.User, turn entities.TurnResult) error {
	memory, err := cs.Memory.Load(ctx, user.UserID)
	if err != nil {
		return err
	}

	if memory.IsNew() && user.IsPlatformUser {
		if err := cs.hydrateMemory(ctx, user, memory); err != nil {
			cs.Logger.Warn("Failed to hydrate session from platform", logrus.Fields{"user_id": user.UserID, "error": err.Error()})
		}
	}

	memory.AppendUserMessage(turn.Text)

	result, err := cs.QueryAI.ExecuteQueryAI(ctx, dto.QueryAIRequest{
		QueryText: turn.Text,
		Messages:  memory.Messages(),
		UserID:    user.UserID,
		SessionID: user.CurrentSessionID,
	})
	if err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to execute AI query: %s", err.Error()))
		return err
	}

	memory.AppendAssistantMessage(result.Response)
	if err := memory.Save(ctx); err != nil {
		cs.Logger.Error(fmt.Sprintf("Failed to save conversation memory: %s", err.Error()))
		return err
	}

	invokeID := uuid.NewString()
	cs.Audit.RecordFragments(ctx, user, invokeID, turn.Fragments)
	cs.Audit.RecordOutcome(ctx, user, invokeID, result.Response)

	return cs.sendReply(ctx, user.UserID, result.Response)
}

// hydrateMemory seeds a fresh session with the user's clients and
// collections so the agent starts with the platform's current portfolio.
func (cs *ChannelService) hydrateMemory(ctx context.Context, user entities.User, memory Iservices.IConversationMemory) error {
	clients, err := cs.Accounts.GetClients(ctx, user.UserID)
	if err != nil {
		return err
	}
	collections, err := cs.Accounts.GetCollections(ctx, user.UserID)
	if err != nil {
		return err
	}
	for _, client := range clients {
		memory.UpsertClient(client)
	}
	for _, collection := range collections {
		memory.UpsertCollection(collection)
	}
	return nil
}

// sendReply splits the agent answer into sentences and paces them out the
// way a human would type, matching the channel's UX.
func (cs *ChannelService) sendReply(ctx context.Context, to, response string) error {
	messagesSplit := strings.Split(response, ".")

	cs.Logger.Info(fmt.Sprintf("Sending AI response messages to WhatsApp number: %s", to))
	sent := 0
	for _, message := range messagesSplit {
		if strings.TrimSpace(message) == "" {
			continue
		}
		if sent > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cs.ReplyPause):
			}
		}
		if err := cs.WhatsApp.SendTextMessage(ctx, to, strings.TrimSpace(message)); err != nil {
			cs.Logger.Error(fmt.Sprintf("Failed to send WhatsApp message to %s: %s", to, err.Error()))
			return err
		}
		sent++
	}
	return nil
}
