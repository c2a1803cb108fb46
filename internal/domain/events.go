package domain

import "encoding/json"

// Stream event types pushed to an attached listener. The workflow_complete
// event is the authoritative result of an asynchronous workflow run; all
// other events are advisory telemetry.
const (
	EventTypeConnected        = "connected"
	EventTypeToolStart        = "tool_start"
	EventTypeToolEnd          = "tool_end"
	EventTypeToolError        = "tool_error"
	EventTypeWorkflowComplete = "workflow_complete"
)

// StreamEvent is one progress update delivered over the streaming endpoint.
// Ts is stamped at delivery time by the registry.
type StreamEvent struct {
	Type     string          `json:"type"`
	Ts       int64           `json:"ts,omitempty"`
	ThreadID string          `json:"thread_id,omitempty"`
	ToolName string          `json:"tool_name,omitempty"`
	Input    json.RawMessage `json:"input,omitempty"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
	IsError  bool            `json:"is_error,omitempty"`
}

// ConnectedEvent acknowledges a newly attached listener.
func ConnectedEvent(threadID string) StreamEvent {
	return StreamEvent{Type: EventTypeConnected, ThreadID: threadID}
}

// ToolStartEvent announces that a workflow tool call is about to run.
func ToolStartEvent(toolName string, input json.RawMessage) StreamEvent {
	return StreamEvent{Type: EventTypeToolStart, ToolName: toolName, Input: input}
}

// ToolEndEvent carries the response of a finished workflow tool call.
func ToolEndEvent(toolName string, response json.RawMessage) StreamEvent {
	return StreamEvent{Type: EventTypeToolEnd, ToolName: toolName, Response: response}
}

// ToolErrorEvent carries a failed workflow tool call.
func ToolErrorEvent(toolName, errMsg string) StreamEvent {
	return StreamEvent{Type: EventTypeToolError, ToolName: toolName, Error: errMsg}
}

// WorkflowCompleteEvent is the single terminal event of a workflow run.
func WorkflowCompleteEvent(result json.RawMessage, isError bool) StreamEvent {
	return StreamEvent{Type: EventTypeWorkflowComplete, Result: result, IsError: isError}
}
