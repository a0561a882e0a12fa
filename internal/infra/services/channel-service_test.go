package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
)

type fakeUserService struct {
	user entities.User
	err  error
}

func (f *fakeUserService) GetOrCreateUser(_ context.Context, _ string, _ bool) (entities.User, error) {
	return f.user, f.err
}

type fakeParser struct {
	fragment entities.Fragment
	err      error
}

func (f *fakeParser) Parse(_ context.Context, _ *dto.InboundMessage, _ entities.User) (entities.Fragment, error) {
	return f.fragment, f.err
}

type fakeQueryAI struct {
	mu       sync.Mutex
	requests []dto.QueryAIRequest
	response dto.QueryAIResponse
	err      error
}

func (f *fakeQueryAI) ExecuteQueryAI(_ context.Context, request dto.QueryAIRequest) (dto.QueryAIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, request)
	return f.response, f.err
}

type fakeAudit struct {
	mu        sync.Mutex
	fragments [][]entities.Fragment
	outcomes  []string
	invokeIDs []string
}

func (f *fakeAudit) RecordFragments(_ context.Context, _ entities.User, invokeID string, fragments []entities.Fragment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fragments = append(f.fragments, fragments)
	f.invokeIDs = append(f.invokeIDs, invokeID)
}

func (f *fakeAudit) RecordOutcome(_ context.Context, _ entities.User, invokeID, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, text)
	f.invokeIDs = append(f.invokeIDs, invokeID)
}

type fakeWhatsApp struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeWhatsApp) SendTextMessage(_ context.Context, _, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

type fakeAccounts struct {
	clients     []entities.Client
	collections []entities.Collection
	err         error
}

func (f *fakeAccounts) GetAccount(_ context.Context, _ string) (*dto.Account, error) {
	return nil, f.err
}

func (f *fakeAccounts) GetClients(_ context.Context, _ string) ([]entities.Client, error) {
	return f.clients, f.err
}

func (f *fakeAccounts) GetCollections(_ context.Context, _ string) ([]entities.Collection, error) {
	return f.collections, f.err
}

type channelFixture struct {
	service  *ChannelService
	store    *fakeSessionStore
	memories *MemoryService
	users    *fakeUserService
	parser   *fakeParser
	queryAI  *fakeQueryAI
	audit    *fakeAudit
	whatsApp *fakeWhatsApp
	accounts *fakeAccounts
}

func newChannelFixture(t *testing.T) *channelFixture {
	log := newTestLogger(t)
	fake := newFakeSessionStore()
	memories := NewMemoryService(fake, log, testSessionTTL)
	aggregator := NewAggregatorService(fake, log, 2*testWindow)

	fx := &channelFixture{
		store:    fake,
		memories: memories,
		users:    &fakeUserService{user: entities.User{UserID: "51999", Type: entities.UserCreditor, IsPlatformUser: true, CurrentSessionID: "session-1"}},
		parser:   &fakeParser{fragment: entities.NewTextFragment("Hola")},
		queryAI:  &fakeQueryAI{response: dto.QueryAIResponse{Response: "Claro. Te ayudo con eso"}},
		audit:    &fakeAudit{},
		whatsApp: &fakeWhatsApp{},
		accounts: &fakeAccounts{},
	}
	fx.service = NewChannelService(
		log, fx.users, fx.parser, aggregator, memories, fx.queryAI,
		fx.audit, fx.whatsApp, fx.accounts, testWindow, 0,
	)
	return fx
}

func inboundText(text string) *dto.InboundMessage {
	return &dto.InboundMessage{Sender: "51999", Data: dto.MessageData{Type: "TEXT", Text: text}}
}

func TestHandleInboundRejectsEmptySender(t *testing.T) {
	fx := newChannelFixture(t)

	err := fx.service.HandleInbound(context.Background(), &dto.InboundMessage{Sender: "   "})
	require.Error(t, err)
	require.Empty(t, fx.whatsApp.sent)
}

func TestHandleInboundCompleteTurnDrivesAgentReplyAndAudit(t *testing.T) {
	fx := newChannelFixture(t)

	require.NoError(t, fx.service.HandleInbound(context.Background(), inboundText("Hola")))

	require.Len(t, fx.queryAI.requests, 1)
	request := fx.queryAI.requests[0]
	require.Equal(t, "Hola", request.QueryText)
	require.Equal(t, "51999", request.UserID)
	require.Equal(t, "session-1", request.SessionID)
	require.NotEmpty(t, request.Messages)
	require.Equal(t, "Hola", request.Messages[len(request.Messages)-1].Content)

	// reply is paced out sentence by sentence
	require.Equal(t, []string{"Claro", "Te ayudo con eso"}, fx.whatsApp.sent)

	require.Len(t, fx.audit.fragments, 1)
	require.Len(t, fx.audit.fragments[0], 1)
	require.Equal(t, []string{"Claro. Te ayudo con eso"}, fx.audit.outcomes)
	require.Equal(t, fx.audit.invokeIDs[0], fx.audit.invokeIDs[1])

	memory, err := fx.memories.Load(context.Background(), "51999")
	require.NoError(t, err)
	messages := memory.Messages()
	require.Len(t, messages, 2)
	require.Equal(t, entities.RoleUser, messages[0].Role)
	require.Equal(t, "Hola", messages[0].Content)
	require.Equal(t, entities.RoleAssistant, messages[1].Role)
	require.Equal(t, "Claro. Te ayudo con eso", messages[1].Content)
}

func TestHandleInboundLosingDeliveryHasNoSideEffects(t *testing.T) {
	fx := newChannelFixture(t)
	// wide enough that every delivery buffers before the first one wakes
	fx.service.DebounceWindow = 100 * time.Millisecond

	const deliveries = 4
	errs := make([]error, deliveries)
	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = fx.service.HandleInbound(context.Background(), inboundText("Hola"))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Len(t, fx.queryAI.requests, 1)
	require.Len(t, fx.audit.outcomes, 1)

	memory, err := fx.memories.Load(context.Background(), "51999")
	require.NoError(t, err)
	require.Len(t, memory.Messages(), 2)
}

func TestHandleInboundInternalFailureSkipsAgent(t *testing.T) {
	fx := newChannelFixture(t)
	fx.parser.fragment = entities.NewFailedMediaFragment(entities.KindImage, "No pude procesar tu imagen", "no pude leer la imagen", "https://cdn/img.jpg")

	require.NoError(t, fx.service.HandleInbound(context.Background(), inboundText("")))

	require.Empty(t, fx.queryAI.requests)
	require.Equal(t, []string{"No pude procesar tu imagen"}, fx.whatsApp.sent)
	require.Len(t, fx.audit.fragments, 1)
	require.Equal(t, []string{"No pude procesar tu imagen"}, fx.audit.outcomes)
	require.NotContains(t, fx.store.data, "conversation:51999")
}

func TestHandleInboundHydratesFreshPlatformSession(t *testing.T) {
	fx := newChannelFixture(t)
	fx.accounts.clients = []entities.Client{testClient("+51111222333", "Carlos")}
	fx.accounts.collections = []entities.Collection{testCollection("col-1", "raw-1")}

	require.NoError(t, fx.service.HandleInbound(context.Background(), inboundText("Hola")))

	memory, err := fx.memories.Load(context.Background(), "51999")
	require.NoError(t, err)
	require.Len(t, memory.Clients(), 1)
	require.Len(t, memory.Collections(), 1)
	require.Equal(t, "Carlos", memory.Clients()["+51111222333"].Name)
}

func TestHandleInboundSkipsHydrationForAnonymousUser(t *testing.T) {
	fx := newChannelFixture(t)
	fx.users.user = entities.User{UserID: "51999", Type: entities.UserAnonymous}
	fx.accounts.clients = []entities.Client{testClient("+51111222333", "Carlos")}

	require.NoError(t, fx.service.HandleInbound(context.Background(), inboundText("Hola")))

	memory, err := fx.memories.Load(context.Background(), "51999")
	require.NoError(t, err)
	require.Empty(t, memory.Clients())
}

func TestHandleInboundHydrationFailureDoesNotAbortTurn(t *testing.T) {
	fx := newChannelFixture(t)
	fx.accounts.err = errors.New("platform unreachable")

	require.NoError(t, fx.service.HandleInbound(context.Background(), inboundText("Hola")))
	require.Len(t, fx.queryAI.requests, 1)
	require.NotEmpty(t, fx.whatsApp.sent)
}

func TestHandleInboundUserServiceFailurePropagates(t *testing.T) {
	fx := newChannelFixture(t)
	fx.users.err = errors.New("store down")

	err := fx.service.HandleInbound(context.Background(), inboundText("Hola"))
	require.Error(t, err)
	require.Empty(t, fx.whatsApp.sent)
}

func TestHandleInboundAgentFailurePropagates(t *testing.T) {
	fx := newChannelFixture(t)
	fx.queryAI.err = errors.New("agent timeout")

	err := fx.service.HandleInbound(context.Background(), inboundText("Hola"))
	require.Error(t, err)
	require.Empty(t, fx.whatsApp.sent)
	require.NotContains(t, fx.store.data, "conversation:51999")
}

func TestHandleInboundSendFailurePropagates(t *testing.T) {
	fx := newChannelFixture(t)
	fx.whatsApp.err = errors.New("channel rejected message")

	err := fx.service.HandleInbound(context.Background(), inboundText("Hola"))
	require.Error(t, err)
}

func TestSendReplyPacesMultiSentenceAnswers(t *testing.T) {
	fx := newChannelFixture(t)
	fx.service.ReplyPause = 5 * time.Millisecond

	start := time.Now()
	require.NoError(t, fx.service.sendReply(context.Background(), "51999", "Uno. Dos. Tres."))
	elapsed := time.Since(start)

	require.Equal(t, []string{"Uno", "Dos", "Tres"}, fx.whatsApp.sent)
	require.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}
