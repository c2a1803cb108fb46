package domain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ResultKind tags the payload variant carried by a ToolResult.
type ResultKind string

const (
	ResultKindJSON   ResultKind = "json"
	ResultKindText   ResultKind = "text"
	ResultKindBinary ResultKind = "binary"
	ResultKindError  ResultKind = "error"
)

// ToolResult is the uniform outcome of any tool execution. Exactly one
// variant is populated, selected by Kind. Every handler produces one of
// these even when the underlying adapter call fails.
type ToolResult struct {
	Kind       ResultKind
	JSON       json.RawMessage
	Text       string
	Binary     []byte
	ErrMessage string
	StatusCode int
}

// JSONResult wraps an already-encoded JSON payload.
func JSONResult(raw json.RawMessage) ToolResult {
	return ToolResult{Kind: ResultKindJSON, JSON: raw}
}

// JSONResultOf marshals v into a JSON result. A marshal failure is folded
// into an error result so callers never deal with a second error path.
func JSONResultOf(v interface{}) ToolResult {
	raw, err := json.Marshal(v)
	if err != nil {
		return ErrorResult(fmt.Sprintf("failed to encode result: %v", err))
	}
	return ToolResult{Kind: ResultKindJSON, JSON: raw}
}

// TextResult wraps a plain-text payload.
func TextResult(text string) ToolResult {
	return ToolResult{Kind: ResultKindText, Text: text}
}

// BinaryResult wraps a raw binary payload such as generated PDF bytes.
func BinaryResult(data []byte) ToolResult {
	return ToolResult{Kind: ResultKindBinary, Binary: data}
}

// ErrorResult wraps a failure message.
func ErrorResult(message string) ToolResult {
	return ToolResult{Kind: ResultKindError, ErrMessage: message}
}

// ErrorResultWithStatus wraps a failure that originated from a downstream
// HTTP status.
func ErrorResultWithStatus(message string, status int) ToolResult {
	return ToolResult{Kind: ResultKindError, ErrMessage: message, StatusCode: status}
}

// IsError reports whether the result carries the error variant.
func (r ToolResult) IsError() bool {
	return r.Kind == ResultKindError
}

// CallContent is one content block inside a call result envelope.
type CallContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the wire envelope for a tools/call outcome. Binary payloads
// are base64-encoded so the envelope stays JSON-text-representable.
type CallResult struct {
	Content []CallContent `json:"content"`
	IsError bool          `json:"isError"`
}

// Envelope renders the result into its wire form.
func (r ToolResult) Envelope() CallResult {
	var text string
	switch r.Kind {
	case ResultKindJSON:
		text = string(r.JSON)
	case ResultKindText:
		text = r.Text
	case ResultKindBinary:
		encoded, _ := json.Marshal(map[string]string{
			"pdf_base64": base64.StdEncoding.EncodeToString(r.Binary),
		})
		text = string(encoded)
	case ResultKindError:
		encoded, _ := json.Marshal(map[string]string{"error": r.ErrMessage})
		text = string(encoded)
	}
	return CallResult{
		Content: []CallContent{{Type: "text", Text: text}},
		IsError: r.Kind == ResultKindError,
	}
}

// DecodeBinaryEnvelope recovers raw bytes from an envelope produced for a
// binary result.
func DecodeBinaryEnvelope(res CallResult) ([]byte, error) {
	if len(res.Content) == 0 {
		return nil, fmt.Errorf("envelope has no content")
	}
	var payload struct {
		PDFBase64 string `json:"pdf_base64"`
	}
	if err := json.Unmarshal([]byte(res.Content[0].Text), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(payload.PDFBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return data, nil
}
