package dto

import "collection-connector/internal/domain/entities"

type QueryAIRequest struct {
	QueryText string                 `json:"query_text"`
	Messages  []entities.ChatMessage `json:"messages"`
	UserID    string                 `json:"user_id"`
	SessionID string                 `json:"session_id"`
}

type QueryAIResponse struct {
	Response string   `json:"response"`
	Tools    []string `json:"tools"`
}

// OCRResult is the document-analysis backend's answer for one media
// fragment. On failure Message carries the user-facing text and Context the
// failure detail surfaced on the resulting turn.
type OCRResult struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	Context string `json:"ocr_context"`
}

// Account is the external platform's profile for a sender, used to type the
// session user.
type Account struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	IsEnterprise bool   `json:"is_enterprise"`
}
