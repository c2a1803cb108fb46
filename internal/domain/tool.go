// Package domain defines the core types shared between the dispatcher,
// the workflow runner and the transport layer.
package domain

// Property describes a single argument in a tool's input schema.
type Property struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Default     interface{} `json:"default,omitempty"`
	Items       *Property   `json:"items,omitempty"`
}

// Schema is the JSON-schema shaped argument description of a tool.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// ToolDefinition identifies a capability exposed through tools/list.
// Definitions are built once at startup and never mutated.
type ToolDefinition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"inputSchema"`
}

// Args is the decoded argument mapping of a tools/call request.
type Args map[string]interface{}

// String returns the named argument as a string, or the fallback when the
// argument is absent or not a string.
func (a Args) String(key, fallback string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return fallback
}

// Int returns the named argument as an int. JSON numbers decode as float64.
func (a Args) Int(key string, fallback int) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}

// Bool returns the named argument as a bool.
func (a Args) Bool(key string) bool {
	v, _ := a[key].(bool)
	return v
}

// StringSlice returns the named argument as a slice of strings, accepting
// both []string and the []interface{} shape produced by encoding/json.
func (a Args) StringSlice(key string) []string {
	switch v := a[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// FileUpload is a binary attachment carried out-of-band on a tools/call
// request and merged into the invocation before dispatch.
type FileUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
