package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"collection-connector/internal/domain/dto"
	Iservices "collection-connector/internal/domain/interfaces/services"
	"collection-connector/internal/infra/logger"
)

type MemorySyncHandlers struct {
	Logger      *logger.Logger
	Clients     Iservices.IClientSyncService
	Collections Iservices.ICollectionSyncService
}

func NewMemorySyncHandlers(logger *logger.Logger, clients Iservices.IClientSyncService, collections Iservices.ICollectionSyncService) *MemorySyncHandlers {
	return &MemorySyncHandlers{Logger: logger, Clients: clients, Collections: collections}
}

func (mh *MemorySyncHandlers) SyncClients(w http.ResponseWriter, r *http.Request) {
	mh.Logger.Info("Starting synchronization of clients")

	var items []dto.ClientSyncItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "El payload debe ser una lista de clientes."})
		return
	}
	defer r.Body.Close()

	result, err := mh.Clients.SyncClients(r.Context(), items)
	if err != nil {
		mh.respondSyncError(w, err, "Algunos clientes tienen campos faltantes.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "OK", "result": result})
}

func (mh *MemorySyncHandlers) SyncCollections(w http.ResponseWriter, r *http.Request) {
	mh.Logger.Info("Starting synchronization of collections")

	var items []dto.CollectionSyncItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "El payload debe ser una lista de cobros."})
		return
	}
	defer r.Body.Close()

	result, err := mh.Collections.SyncCollections(r.Context(), items)
	if err != nil {
		mh.respondSyncError(w, err, "Algunas solicitudes tienen campos faltantes.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "OK", "result": result})
}

func (mh *MemorySyncHandlers) respondSyncError(w http.ResponseWriter, err error, validationMessage string) {
	var validationErr *dto.SyncValidationError
	if errors.As(err, &validationErr) {
		mh.Logger.Warn(fmt.Sprintf("Sync invalid request: %s", err.Error()))
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   validationMessage,
			"details": validationErr.Items,
		})
		return
	}

	mh.Logger.Error(fmt.Sprintf("Unexpected error during sync: %s", err.Error()))
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
