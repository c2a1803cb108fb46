package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
)

// TaskFunc is the body of a supervised workflow run. It returns the final
// result payload published with the terminal workflow_complete event.
type TaskFunc func(ctx context.Context) (json.RawMessage, error)

// Supervisor owns background workflow runs. Every launched task is
// guaranteed to end with exactly one workflow_complete event on its thread,
// including when the task panics, and can be cancelled by thread id.
type Supervisor struct {
	registry *stream.Registry

	mu    sync.Mutex
	tasks map[string]*task
}

type task struct {
	cancel context.CancelFunc
}

// NewSupervisor creates a supervisor publishing through the given registry.
func NewSupervisor(registry *stream.Registry) *Supervisor {
	return &Supervisor{
		registry: registry,
		tasks:    make(map[string]*task),
	}
}

// Launch starts fn in a background goroutine keyed by threadID. A task
// already running under the same thread id is cancelled first.
func (s *Supervisor) Launch(threadID string, fn TaskFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{cancel: cancel}

	s.mu.Lock()
	if prior, ok := s.tasks[threadID]; ok {
		prior.cancel()
		log.Printf("WARN: cancelled prior workflow for thread %s", threadID)
	}
	s.tasks[threadID] = t
	s.mu.Unlock()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("ERROR: workflow for thread %s panicked: %v", threadID, rec)
				s.complete(threadID, errorPayload(fmt.Sprintf("workflow panicked: %v", rec)), true)
			}
			// Identity check so a replaced task never removes its
			// successor's registration.
			s.mu.Lock()
			if s.tasks[threadID] == t {
				delete(s.tasks, threadID)
			}
			s.mu.Unlock()
			cancel()
		}()

		result, err := fn(ctx)
		if err != nil {
			log.Printf("ERROR: workflow for thread %s failed: %v", threadID, err)
			s.complete(threadID, errorPayload(err.Error()), true)
			return
		}
		s.complete(threadID, result, false)
	}()
}

// Cancel stops the running workflow for threadID, if any.
func (s *Supervisor) Cancel(threadID string) bool {
	s.mu.Lock()
	t, ok := s.tasks[threadID]
	if ok {
		delete(s.tasks, threadID)
	}
	s.mu.Unlock()
	if ok {
		t.cancel()
	}
	return ok
}

// Running returns the number of in-flight workflow runs.
func (s *Supervisor) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

func (s *Supervisor) complete(threadID string, result json.RawMessage, isError bool) {
	s.registry.Publish(threadID, domain.WorkflowCompleteEvent(result, isError))
}

func errorPayload(msg string) json.RawMessage {
	encoded, _ := json.Marshal(map[string]string{"error": msg})
	return encoded
}
