package audit

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndListDispatches(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &Dispatch{
		DispatchID: "disp_1",
		ToolName:   "volvox_research_list",
		UserID:     "u1",
		Args:       `{"limit":5}`,
		Success:    true,
		CreatedAt:  time.Now().UTC().Add(-time.Minute),
	}
	second := &Dispatch{
		DispatchID:    "disp_2",
		ToolName:      "volvox_chat_ask",
		UserID:        "u1",
		Success:       false,
		ResultSnippet: "Could not validate credentials",
		StatusCode:    401,
		CreatedAt:     time.Now().UTC(),
	}
	assert.NoError(t, store.RecordDispatch(ctx, first))
	assert.NoError(t, store.RecordDispatch(ctx, second))

	entries, err := store.ListDispatches(ctx, 10)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "disp_2", entries[0].DispatchID)
	assert.False(t, entries[0].Success)
	assert.Equal(t, 401, entries[0].StatusCode)
	assert.Equal(t, "disp_1", entries[1].DispatchID)
	assert.True(t, entries[1].Success)
}

func TestListDispatchesLimit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		assert.NoError(t, store.RecordDispatch(ctx, &Dispatch{
			DispatchID: "disp_" + strings.Repeat("x", i+1),
			ToolName:   "t",
			CreatedAt:  time.Now().UTC().Add(time.Duration(i) * time.Second),
		}))
	}

	entries, err := store.ListDispatches(ctx, 3)
	assert.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSnippetTruncation(t *testing.T) {
	short := "small"
	assert.Equal(t, short, Snippet(short))

	long := strings.Repeat("a", 1000)
	got := Snippet(long)
	assert.Len(t, got, snippetLimit+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSnippetKeepsRunesWhole(t *testing.T) {
	// 149 two-byte runes put a rune straddling the cut point.
	long := strings.Repeat("é", 149) + "xé" + strings.Repeat("é", 100)
	got := Snippet(long)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), snippetLimit+3)
}
