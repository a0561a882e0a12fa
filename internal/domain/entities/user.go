package entities

// UserType classifies a sender for authorization decisions (OCR access,
// session hydration).
type UserType string

const (
	UserAnonymous  UserType = "anonymous"
	UserCreditor   UserType = "creditor"
	UserEnterprise UserType = "enterprise"
)

// User is the cached per-sender session record.
type User struct {
	UserID           string   `json:"user_id"`
	Name             string   `json:"name"`
	IsPlatformUser   bool     `json:"is_platform_user"`
	IsEnterprise     bool     `json:"is_enterprise"`
	Type             UserType `json:"type_user"`
	CurrentSessionID string   `json:"current_session_id"`
}
