package domain

import "strings"

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole maps any value other than ADMIN to RoleUser.
func ParseRole(raw string) Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleUser
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// SessionCredential is the resolved identity attached to authenticated calls.
type SessionCredential struct {
	Token  string
	UserID *string
	Role   Role
}

func (c *SessionCredential) Valid() bool {
	return c != nil && strings.TrimSpace(c.Token) != ""
}

func (c *SessionCredential) UserIDOrEmpty() string {
	if c == nil || c.UserID == nil {
		return ""
	}
	return *c.UserID
}

// SessionRecord is the JSON object persisted under SessionStorageKey.
// ID carries the session token.
type SessionRecord struct {
	ID        string `json:"id,omitempty"`
	Token     string `json:"token,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Role      string `json:"role,omitempty"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	UserName  string `json:"userName,omitempty"`
}

// SessionStorageKey names both the store entry and the mirrored cookie.
const SessionStorageKey = "userData"

// SessionToken returns ID, falling back to the legacy token field.
func (r SessionRecord) SessionToken() string {
	if token := strings.TrimSpace(r.ID); token != "" {
		return token
	}
	return strings.TrimSpace(r.Token)
}

func (r SessionRecord) Credential() *SessionCredential {
	token := r.SessionToken()
	if token == "" {
		return nil
	}

	credential := &SessionCredential{Token: token, Role: ParseRole(r.Role)}
	if userID := strings.TrimSpace(r.UserID); userID != "" {
		credential.UserID = &userID
	}
	return credential
}
