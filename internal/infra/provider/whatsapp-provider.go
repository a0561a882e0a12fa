package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"collection-connector/internal/infra/logger"
)

// JelouWhatsAppProvider sends outbound WhatsApp messages through the Jelou
// messaging API.
type JelouWhatsAppProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	BaseURL    string
	APIKey     string
	BotID      string
}

func NewJelouWhatsAppProvider(logger *logger.Logger, httpClient *http.Client, baseURL, apiKey, botID string) *JelouWhatsAppProvider {
	return &JelouWhatsAppProvider{Logger: logger, HttpClient: httpClient, BaseURL: baseURL, APIKey: apiKey, BotID: botID}
}

func (p *JelouWhatsAppProvider) SendTextMessage(ctx context.Context, to, message string) error {
	if to == "" || message == "" {
		return fmt.Errorf("recipient (to) and message cannot be empty")
	}

	payloadData := struct {
		UserID string `json:"userId"`
		BotID  string `json:"botId"`
		Type   string `json:"type"`
		Text   string `json:"text"`
	}{
		UserID: to,
		BotID:  p.BotID,
		Type:   "text",
		Text:   message,
	}

	payload, err := json.Marshal(payloadData)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to marshal payload %v", err))
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/whatsapp/messages", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		p.Logger.Error(fmt.Sprintf("Failed to create HTTP request %v", err))
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Basic %s", p.APIKey))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := p.HttpClient.Do(req)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("HTTP request failed %v", err))
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		p.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return fmt.Errorf("unexpected HTTP status: %s", res.Status)
	}

	return nil
}
