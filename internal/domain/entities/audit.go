package entities

import "time"

// Audit sender value recorded when a fragment's OCR extraction failed.
const AuditSenderOCR = "ocr"

// Audit sender and user type recorded for assistant-produced turns.
const AuditSenderAssistant = "ia"

// AuditMessage is one record of the message audit trail. Fragments are
// audited individually with their own receivedAt date; outcome turns are
// audited once per invoke.
type AuditMessage struct {
	Type            string    `bson:"type" json:"type"`
	Message         string    `bson:"message" json:"message"`
	Sender          string    `bson:"sender" json:"sender"`
	MediaURL        string    `bson:"mediaUrl,omitempty" json:"mediaUrl,omitempty"`
	Caption         string    `bson:"caption,omitempty" json:"caption,omitempty"`
	TypeUser        string    `bson:"type_user" json:"type_user"`
	UserID          string    `bson:"user_id" json:"user_id"`
	InvokeID        string    `bson:"invokeId" json:"invokeId"`
	Date            time.Time `bson:"date" json:"date"`
	OCRContext      string    `bson:"ocr_context,omitempty" json:"ocr_context,omitempty"`
	ContentFiltered bool      `bson:"contentFiltered" json:"contentFiltered"`
	SessionID       string    `bson:"session_id" json:"session_id"`
}
