package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
)

func waitEvent(t *testing.T, l *stream.ChannelListener) domain.StreamEvent {
	t.Helper()
	select {
	case data := <-l.C():
		var ev domain.StreamEvent
		assert.NoError(t, json.Unmarshal(data, &ev))
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return domain.StreamEvent{}
	}
}

func TestLaunchPublishesTerminalResult(t *testing.T) {
	registry := stream.NewRegistry()
	listener := attachedListener(t, registry, "th1")
	sup := NewSupervisor(registry)

	sup.Launch("th1", func(ctx context.Context) (json.RawMessage, error) {
		return json.RawMessage(`{"response":"done"}`), nil
	})

	ev := waitEvent(t, listener)
	assert.Equal(t, domain.EventTypeWorkflowComplete, ev.Type)
	assert.False(t, ev.IsError)
	assert.JSONEq(t, `{"response":"done"}`, string(ev.Result))
}

func TestLaunchPublishesFailure(t *testing.T) {
	registry := stream.NewRegistry()
	listener := attachedListener(t, registry, "th1")
	sup := NewSupervisor(registry)

	sup.Launch("th1", func(ctx context.Context) (json.RawMessage, error) {
		return nil, fmt.Errorf("backend exploded")
	})

	ev := waitEvent(t, listener)
	assert.Equal(t, domain.EventTypeWorkflowComplete, ev.Type)
	assert.True(t, ev.IsError)
	assert.Contains(t, string(ev.Result), "backend exploded")
}

func TestLaunchRecoversFromPanic(t *testing.T) {
	registry := stream.NewRegistry()
	listener := attachedListener(t, registry, "th1")
	sup := NewSupervisor(registry)

	sup.Launch("th1", func(ctx context.Context) (json.RawMessage, error) {
		panic("boom")
	})

	ev := waitEvent(t, listener)
	assert.Equal(t, domain.EventTypeWorkflowComplete, ev.Type)
	assert.True(t, ev.IsError)
	assert.Contains(t, string(ev.Result), "boom")

	// The registration is cleaned up even after a panic.
	assert.Eventually(t, func() bool { return sup.Running() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestCancelStopsTask(t *testing.T) {
	registry := stream.NewRegistry()
	listener := attachedListener(t, registry, "th1")
	sup := NewSupervisor(registry)

	started := make(chan struct{})
	sup.Launch("th1", func(ctx context.Context) (json.RawMessage, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	<-started
	assert.True(t, sup.Cancel("th1"))
	assert.False(t, sup.Cancel("th1"))

	ev := waitEvent(t, listener)
	assert.Equal(t, domain.EventTypeWorkflowComplete, ev.Type)
	assert.True(t, ev.IsError)
}

func TestRunningCount(t *testing.T) {
	registry := stream.NewRegistry()
	sup := NewSupervisor(registry)

	release := make(chan struct{})
	sup.Launch("th1", func(ctx context.Context) (json.RawMessage, error) {
		<-release
		return json.RawMessage(`{}`), nil
	})

	assert.Eventually(t, func() bool { return sup.Running() == 1 }, time.Second, 10*time.Millisecond)
	close(release)
	assert.Eventually(t, func() bool { return sup.Running() == 0 }, 2*time.Second, 10*time.Millisecond)
}
