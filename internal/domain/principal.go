package domain

import (
	"fmt"
	"time"
)

// Principal is the authenticated identity resolved from a bearer token.
// Resolved fresh on every invocation that requires it; never cached.
type Principal struct {
	ID        string    `json:"_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	CreatedAt Timestamp `json:"created_at"`
}

// TokenGrant is the identity backend's response to signup/login.
type TokenGrant struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	User        Principal `json:"user"`
}

// Timestamp decodes the identity backend's datetime fields. The backend
// stores naive datetimes, so values usually arrive without a UTC offset
// ("2024-01-01T10:00:00"); offset-carrying RFC 3339 values are accepted
// too. Offset-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
