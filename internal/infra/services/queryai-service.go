package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/infra/logger"
)

// QueryAIService is the HTTP client for the conversational agent backend.
// The agent receives the assembled turn text plus the session's message
// history and answers with an assistant message and the tools it invoked.
type QueryAIService struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	Host       string
}

func NewQueryAIService(logger *logger.Logger, httpClient *http.Client, host string) *QueryAIService {
	return &QueryAIService{Logger: logger, HttpClient: httpClient, Host: host}
}

func (qs *QueryAIService) ExecuteQueryAI(ctx context.Context, request dto.QueryAIRequest) (dto.QueryAIResponse, error) {
	payloadBytes, err := json.Marshal(request)
	if err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to marshal payload: %s", err.Error()))
		return dto.QueryAIResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, qs.Host+"/agent/query", bytes.NewReader(payloadBytes))
	if err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to create HTTP request: %s", err.Error()))
		return dto.QueryAIResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := qs.HttpClient.Do(req)
	if err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to send POST request: %s", err.Error()))
		return dto.QueryAIResponse{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to read response body: %s", err.Error()))
		return dto.QueryAIResponse{}, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		qs.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", resp.Status, string(body)))
		return dto.QueryAIResponse{}, fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	var queryResponse dto.QueryAIResponse
	if err := json.Unmarshal(body, &queryResponse); err != nil {
		qs.Logger.Error(fmt.Sprintf("Failed to unmarshal response body: %s", err.Error()))
		return dto.QueryAIResponse{}, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return queryResponse, nil
}
