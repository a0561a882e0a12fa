package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"collection-connector/internal/domain/dto"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/logger"
)

type WebhookHandlers struct {
	Logger         *logger.Logger
	ChannelService Iservices.IChannelService
}

func NewWebhookHandlers(logger *logger.Logger, channelService Iservices.IChannelService) *WebhookHandlers {
	return &WebhookHandlers{Logger: logger, ChannelService: channelService}
}

// ChannelWebhook acknowledges the channel immediately and processes the
// delivery in the background; the channel retries on non-2xx, and the
// debounce wait must not hold its connection open.
func (wh *WebhookHandlers) ChannelWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload dto.InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Error to process JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				wh.Logger.Error(fmt.Sprintf("Recovered from panic: %v", rec))
			}
		}()
		if err := wh.ChannelService.HandleInbound(context.Background(), &payload); err != nil {
			wh.Logger.Error(fmt.Sprintf("Failed to handle inbound message: %s", err.Error()))
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}
