package entities

import (
	"strings"
	"time"
)

// PendingBurst is the per-user buffer of fragments accumulated between the
// first delivery of a burst and the read-and-delete that turns it into a
// turn. It only ever exists in the session store while a burst is open;
// absence of the key is the terminal state.
//
// Fragments are kept in arrival order; each fragment carries its own
// receivedAt timestamp for the audit trail, so out-of-order deliveries are
// stored as received but concatenated in arrival order.
type PendingBurst struct {
	TextBuffer      string     `json:"message_buffer"`
	BufferedAt      time.Time  `json:"message_buffer_ts"`
	Fragments       []Fragment `json:"listed_buffer"`
	InternalFailure bool       `json:"internal_failure,omitempty"`
	FailureContext  string     `json:"internal_failure_context,omitempty"`
}

// Append accumulates one fragment. Once any fragment in the burst has failed
// extraction the failure is sticky: the text buffer holds the most recent
// failure text and later successful fragments land only in the fragment list.
func (b *PendingBurst) Append(fragment Fragment) {
	b.Fragments = append(b.Fragments, fragment)

	if fragment.OCRSucceeded {
		if !b.InternalFailure {
			b.TextBuffer = strings.TrimSpace(strings.TrimSpace(b.TextBuffer) + " " + strings.TrimSpace(fragment.Text))
			b.BufferedAt = fragment.ReceivedAt
		}
		return
	}

	b.InternalFailure = true
	b.FailureContext = fragment.OCRContext
	b.TextBuffer = strings.TrimSpace(fragment.Text)
}
