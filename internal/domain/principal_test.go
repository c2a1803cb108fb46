package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrincipalDecodesNaiveTimestamp(t *testing.T) {
	// The identity backend serializes created_at without a UTC offset.
	raw := `{"_id":"u1","email":"u1@example.com","fullName":"User One","created_at":"2024-01-01T10:00:00"}`

	var p Principal
	assert.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, "u1", p.ID)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), p.CreatedAt.Time)
}

func TestTimestampAcceptsVariants(t *testing.T) {
	cases := map[string]time.Time{
		`"2024-01-01T10:00:00"`:        time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		`"2024-01-01T10:00:00.500000"`: time.Date(2024, 1, 1, 10, 0, 0, 500000000, time.UTC),
		`"2024-01-01T10:00:00Z"`:       time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		`"2024-01-01T10:00:00+05:00"`:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.FixedZone("", 5*3600)),
		`null`:                         {},
		`""`:                           {},
	}
	for input, want := range cases {
		var ts Timestamp
		assert.NoError(t, json.Unmarshal([]byte(input), &ts), input)
		assert.True(t, want.Equal(ts.Time), "input %s decoded to %v", input, ts.Time)
	}

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"not a time"`), &ts))
}

func TestTokenGrantDecodesBackendLoginResponse(t *testing.T) {
	raw := `{"access_token":"tok","token_type":"bearer","expires_in":1800,
		"user":{"_id":"u1","email":"u1@example.com","fullName":"User One","created_at":"2024-01-01T10:00:00"}}`

	var grant TokenGrant
	assert.NoError(t, json.Unmarshal([]byte(raw), &grant))
	assert.Equal(t, "tok", grant.AccessToken)
	assert.Equal(t, "u1", grant.User.ID)
	assert.False(t, grant.User.CreatedAt.IsZero())
}
