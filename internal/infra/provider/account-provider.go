package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
	"collection-connector/internal/infra/logger"
)

// HTTPAccountProvider talks to the platform's account API.
type HTTPAccountProvider struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	BaseURL    string
	APIKey     string
}

func NewHTTPAccountProvider(logger *logger.Logger, httpClient *http.Client, baseURL, apiKey string) *HTTPAccountProvider {
	return &HTTPAccountProvider{Logger: logger, HttpClient: httpClient, BaseURL: baseURL, APIKey: apiKey}
}

func (p *HTTPAccountProvider) GetAccount(ctx context.Context, userID string) (*dto.Account, error) {
	var account dto.Account
	found, err := p.getJSON(ctx, fmt.Sprintf("/accounts/%s", url.PathEscape(userID)), &account)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &account, nil
}

func (p *HTTPAccountProvider) GetClients(ctx context.Context, userID string) ([]entities.Client, error) {
	var clients []entities.Client
	if _, err := p.getJSON(ctx, fmt.Sprintf("/accounts/%s/clients", url.PathEscape(userID)), &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (p *HTTPAccountProvider) GetCollections(ctx context.Context, userID string) ([]entities.Collection, error) {
	var collections []entities.Collection
	if _, err := p.getJSON(ctx, fmt.Sprintf("/accounts/%s/collections", url.PathEscape(userID)), &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// getJSON fetches one resource; a 404 answers found=false without error.
func (p *HTTPAccountProvider) getJSON(ctx context.Context, path string, out interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.APIKey))
	req.Header.Set("Accept", "application/json")

	res, err := p.HttpClient.Do(req)
	if err != nil {
		p.Logger.Error(fmt.Sprintf("HTTP request failed %v", err))
		return false, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		p.Logger.Error(fmt.Sprintf("Unexpected HTTP status %s response_body %s", res.Status, string(body)))
		return false, fmt.Errorf("unexpected HTTP status: %s", res.Status)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode response body: %w", err)
	}
	return true, nil
}
