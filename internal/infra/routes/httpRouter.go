package routes

import (
	"encoding/json"
	"net/http"

	"collection-connector/internal/infra/handlers"

	"github.com/gorilla/mux"
)

type Routes struct {
	Mux        *mux.Router
	Webhook    *handlers.WebhookHandlers
	MemorySync *handlers.MemorySyncHandlers
}

func NewRoutes(mux *mux.Router, webhook *handlers.WebhookHandlers, memorySync *handlers.MemorySyncHandlers) *Routes {
	return &Routes{mux, webhook, memorySync}
}

func (r *Routes) Init() {
	r.Mux.HandleFunc("/webhook", r.Webhook.ChannelWebhook).Methods(http.MethodPost)
	r.Mux.HandleFunc("/memory/clients", r.MemorySync.SyncClients).Methods(http.MethodPost)
	r.Mux.HandleFunc("/memory/collections", r.MemorySync.SyncCollections).Methods(http.MethodPost)

	r.Mux.HandleFunc("/healthCheck", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods(http.MethodGet)
}
