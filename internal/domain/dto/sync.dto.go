package dto

import "fmt"

// ClientSyncItem is one entry of the bulk client sync payload. Fields are
// pointers so a missing key can be told apart from an empty value.
type ClientSyncItem struct {
	UserPhoneNumber *string `json:"userPhoneNumber"`
	PrefixPhone     *string `json:"prefixPhone"`
	PhoneNumber     *string `json:"phoneNumber"`
	Name            *string `json:"name"`
	Surname         *string `json:"surname"`
	CodePhone       *string `json:"codePhone"`
	Email           *string `json:"email"`
	ID              *string `json:"id"`
	UserID          *string `json:"userId"`
}

func (c ClientSyncItem) MissingFields() []string {
	var missing []string
	required := []struct {
		name  string
		value *string
	}{
		{"userPhoneNumber", c.UserPhoneNumber},
		{"prefixPhone", c.PrefixPhone},
		{"phoneNumber", c.PhoneNumber},
		{"name", c.Name},
		{"surname", c.Surname},
		{"codePhone", c.CodePhone},
		{"email", c.Email},
		{"id", c.ID},
		{"userId", c.UserID},
	}
	for _, field := range required {
		if field.value == nil {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// CollectionSyncItem is one entry of the bulk collection sync payload.
type CollectionSyncItem struct {
	ID               *string  `json:"id"`
	ClientID         *string  `json:"clientId"`
	ClientPhone      *string  `json:"clientPhoneNumber"`
	ClientFullName   *string  `json:"clientFullName"`
	UserID           *string  `json:"userId"`
	UserPhoneNumber  *string  `json:"userPhoneNumber"`
	UserFullName     *string  `json:"userFullName"`
	PaymentStatus    *string  `json:"paymentStatus"`
	Description      *string  `json:"description"`
	Currency         *string  `json:"currency"`
	Amount           *float64 `json:"amount"`
	CollectionDate   *string  `json:"collectionDate"`
	PaymentDate      *string  `json:"paymentDate"`
	TotalQuotas      *int     `json:"totalQuotas"`
	NumberQuota      *int     `json:"numberQuota"`
	FrequencyPayment *string  `json:"frequencyPayment"`
	Active           *bool    `json:"active"`
}

func (c CollectionSyncItem) MissingFields() []string {
	var missing []string
	check := func(name string, present bool) {
		if !present {
			missing = append(missing, name)
		}
	}
	check("id", c.ID != nil)
	check("clientId", c.ClientID != nil)
	check("clientPhoneNumber", c.ClientPhone != nil)
	check("clientFullName", c.ClientFullName != nil)
	check("userId", c.UserID != nil)
	check("userPhoneNumber", c.UserPhoneNumber != nil)
	check("userFullName", c.UserFullName != nil)
	check("paymentStatus", c.PaymentStatus != nil)
	check("description", c.Description != nil)
	check("currency", c.Currency != nil)
	check("amount", c.Amount != nil)
	check("collectionDate", c.CollectionDate != nil)
	check("paymentDate", c.PaymentDate != nil)
	check("totalQuotas", c.TotalQuotas != nil)
	check("numberQuota", c.NumberQuota != nil)
	check("frequencyPayment", c.FrequencyPayment != nil)
	check("active", c.Active != nil)
	return missing
}

// InvalidSyncItem reports the missing fields of one payload entry.
type InvalidSyncItem struct {
	Index         int      `json:"index"`
	MissingFields []string `json:"missing_fields"`
}

// SyncValidationError aggregates every invalid entry of a bulk sync payload.
type SyncValidationError struct {
	Items []InvalidSyncItem
}

func (e *SyncValidationError) Error() string {
	return fmt.Sprintf("sync: %d invalid items in payload", len(e.Items))
}
