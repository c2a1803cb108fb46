// Package audit persists a record of every tool dispatch for debugging
// and traceability. Audit writes are advisory: a failure here must never
// abort the dispatch that produced it.
package audit

import (
	"context"
	"time"
	"unicode/utf8"
)

// Dispatch is one recorded tool dispatch.
type Dispatch struct {
	DispatchID    string    `json:"dispatch_id"`
	ToolName      string    `json:"tool_name"`
	UserID        string    `json:"user_id,omitempty"`
	Args          string    `json:"args,omitempty"`
	Success       bool      `json:"success"`
	ResultSnippet string    `json:"result_snippet,omitempty"`
	StatusCode    int       `json:"status_code,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store records and queries dispatches.
type Store interface {
	RecordDispatch(ctx context.Context, d *Dispatch) error
	ListDispatches(ctx context.Context, limit int) ([]Dispatch, error)
	Close() error
}

// snippetLimit bounds the stored result excerpt.
const snippetLimit = 300

// Snippet truncates a result payload to the stored excerpt length. The cut
// lands on a rune boundary so a multi-byte sequence is never split.
func Snippet(s string) string {
	if len(s) <= snippetLimit {
		return s
	}
	cut := snippetLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
