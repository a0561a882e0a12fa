package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"collection-connector/internal/domain/dto"
	"collection-connector/internal/domain/entities"
	"collection-connector/internal/infra/logger"
)

// OCRService is the HTTP client for the document-analysis backend. An
// extraction failure comes back inside the result; only transport problems
// are errors.
type OCRService struct {
	Logger     *logger.Logger
	HttpClient *http.Client
	Host       string
}

func NewOCRService(logger *logger.Logger, httpClient *http.Client, host string) *OCRService {
	return &OCRService{Logger: logger, HttpClient: httpClient, Host: host}
}

func (os *OCRService) ProcessImage(ctx context.Context, mediaURL, caption string, user entities.User) (dto.OCRResult, error) {
	return os.post(ctx, "/ocr/image", map[string]string{
		"mediaUrl":   mediaURL,
		"caption":    caption,
		"user_id":    user.UserID,
		"session_id": user.CurrentSessionID,
	})
}

func (os *OCRService) ProcessFile(ctx context.Context, mediaURL, mimeType string, user entities.User) (dto.OCRResult, error) {
	return os.post(ctx, "/ocr/file", map[string]string{
		"mediaUrl":   mediaURL,
		"mimeType":   mimeType,
		"user_id":    user.UserID,
		"session_id": user.CurrentSessionID,
	})
}

func (os *OCRService) post(ctx context.Context, path string, payload map[string]string) (dto.OCRResult, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return dto.OCRResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, os.Host+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return dto.OCRResult{}, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := os.HttpClient.Do(req)
	if err != nil {
		os.Logger.Error(fmt.Sprintf("OCR request failed %v", err))
		return dto.OCRResult{}, fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		os.Logger.Error(fmt.Sprintf("Unexpected OCR HTTP status %s", resp.Status))
		return dto.OCRResult{}, fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	var result dto.OCRResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return dto.OCRResult{}, fmt.Errorf("failed to decode OCR response: %w", err)
	}
	return result, nil
}
