package entities

import "time"

// MessageKind is the closed set of inbound message types the channel delivers.
type MessageKind string

const (
	KindText     MessageKind = "TEXT"
	KindAudio    MessageKind = "AUDIO"
	KindImage    MessageKind = "IMAGE"
	KindContacts MessageKind = "CONTACTS"
	KindFile     MessageKind = "FILE"
)

// Fragment is one inbound unit of user input, already reduced to text by the
// channel parsers (audio transcribed, image/file passed through OCR).
type Fragment struct {
	Kind         MessageKind `json:"type"`
	Text         string      `json:"message"`
	MediaURL     string      `json:"mediaUrl,omitempty"`
	OCRSucceeded bool        `json:"ocr_success_status"`
	OCRContext   string      `json:"ocr_context,omitempty"`
	ReceivedAt   time.Time   `json:"received_at"`
}

func NewTextFragment(text string) Fragment {
	return Fragment{Kind: KindText, Text: text, OCRSucceeded: true, ReceivedAt: time.Now().UTC()}
}

func NewAudioFragment(transcript, mediaURL string) Fragment {
	return Fragment{Kind: KindAudio, Text: transcript, MediaURL: mediaURL, OCRSucceeded: true, ReceivedAt: time.Now().UTC()}
}

func NewContactsFragment(text string) Fragment {
	return Fragment{Kind: KindContacts, Text: text, OCRSucceeded: true, ReceivedAt: time.Now().UTC()}
}

// NewMediaFragment builds an IMAGE or FILE fragment whose extraction succeeded.
func NewMediaFragment(kind MessageKind, extractedText, mediaURL string) Fragment {
	return Fragment{Kind: kind, Text: extractedText, MediaURL: mediaURL, OCRSucceeded: true, ReceivedAt: time.Now().UTC()}
}

// NewFailedMediaFragment builds an IMAGE or FILE fragment whose extraction
// failed. Text carries the user-facing failure message, context the raw
// failure detail surfaced on the resulting turn.
func NewFailedMediaFragment(kind MessageKind, failureText, failureContext, mediaURL string) Fragment {
	return Fragment{
		Kind:         kind,
		Text:         failureText,
		MediaURL:     mediaURL,
		OCRSucceeded: false,
		OCRContext:   failureContext,
		ReceivedAt:   time.Now().UTC(),
	}
}
