package entities

import (
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one entry of a user's conversation history.
type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Client is a counterparty profile tracked across the session. ID is the
// prefix+phone join key used by the bulk sync endpoints; RawID is the
// identifier the external platform knows the client by.
type Client struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	CodePhone   string `json:"code_phone"`
	PrefixPhone string `json:"prefix_phone"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	CreditorID  string `json:"creditor_id"`
	RawID       string `json:"raw_id"`
}

func (c Client) FullPhoneNumber() string {
	return c.PrefixPhone + c.PhoneNumber
}

func (c Client) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.Surname)
}

// Collection is a payment obligation tracked per user. Client display fields
// are denormalized and must be refreshed whenever the matching client entity
// is replaced.
type Collection struct {
	ID                string  `json:"id"`
	ClientID          string  `json:"client_id"`
	ClientCellphone   string  `json:"client_cellphone"`
	ClientFullName    string  `json:"client_full_name"`
	CreditorID        string  `json:"creditor_id"`
	CreditorFullName  string  `json:"creditor_full_name"`
	CreditorCellphone string  `json:"creditor_cellphone"`
	Status            string  `json:"status"`
	Description       string  `json:"description"`
	Currency          string  `json:"currency"`
	Amount            float64 `json:"amount"`
	CollectionDate    string  `json:"collection_date"`
	PaymentDate       string  `json:"payment_date,omitempty"`
	TotalQuotas       int     `json:"total_quotas"`
	QuotaNumber       int     `json:"quota_number"`
	FrequencyPayment  string  `json:"frequency_payment"`
	Active            bool    `json:"active"`
}

// ConversationState is the per-user structured session state persisted in
// the session store with a sliding TTL.
type ConversationState struct {
	Messages    []ChatMessage         `json:"messages"`
	Collections map[string]Collection `json:"collections"`
	Clients     map[string]Client     `json:"clients"`
}

func NewConversationState() *ConversationState {
	return &ConversationState{
		Messages:    []ChatMessage{},
		Collections: map[string]Collection{},
		Clients:     map[string]Client{},
	}
}
