package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/llm"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/stream"
)

// Workflow names a reasoning/acting run: a system prompt and the subset of
// tools the model may call. Workflows marked WantsBinary end with a binary
// payload (a generated PDF) captured from the last binary tool result.
type Workflow struct {
	Name         string
	SystemPrompt string
	Tools        []Tool
	WantsBinary  bool
}

// RunOutcome is the final state of a finished workflow run.
type RunOutcome struct {
	Response       string
	Binary         []byte
	ToolCallsCount int
}

// Runner drives the alternation between reasoning turns and tool-execution
// turns, publishing progress events for the run's thread id.
type Runner struct {
	llm           llm.LLMClient
	model         string
	registry      *stream.Registry
	maxIterations int
}

// NewRunner builds a runner. maxIterations bounds the number of reasoning
// turns per run; values below 1 fall back to 10.
func NewRunner(client llm.LLMClient, model string, registry *stream.Registry, maxIterations int) *Runner {
	if maxIterations < 1 {
		maxIterations = 10
	}
	return &Runner{
		llm:           client,
		model:         model,
		registry:      registry,
		maxIterations: maxIterations,
	}
}

// Run executes one workflow to completion. Tool calls requested within a
// single reasoning turn run sequentially in the order the model emitted
// them; a failed call is folded into an error message fed back to the model
// and never aborts the remaining calls of the batch.
func (r *Runner) Run(ctx context.Context, wf Workflow, principal *domain.Principal, threadID, query string) (*RunOutcome, error) {
	index := make(map[string]Tool, len(wf.Tools))
	offered := make([]llm.Tool, 0, len(wf.Tools))
	for _, t := range wf.Tools {
		index[t.Name] = t
		offered = append(offered, llm.Tool{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	messages := []llm.ChatMessage{
		{Role: "system", Content: wf.SystemPrompt},
		{Role: "user", Content: query},
	}
	outcome := &RunOutcome{}

	for iteration := 0; iteration < r.maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := r.llm.CreateChatCompletion(ctx, &llm.ChatCompletionRequest{
			Model:    r.model,
			Messages: messages,
			Tools:    offered,
		})
		if err != nil {
			return nil, fmt.Errorf("reasoning request failed: %w", err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Message == nil {
			return nil, fmt.Errorf("reasoning backend returned no choices")
		}
		msg := resp.Choices[0].Message
		messages = append(messages, *msg)

		if len(msg.ToolCalls) == 0 {
			outcome.Response = msg.Content
			return outcome, nil
		}

		for _, call := range msg.ToolCalls {
			outcome.ToolCallsCount++
			result := r.executeCall(ctx, index, principal, threadID, call)
			if result.Kind == domain.ResultKindBinary {
				outcome.Binary = result.Binary
			}
			messages = append(messages, llm.ChatMessage{
				Role:       "tool",
				ToolCallID: call.ID,
				Content:    feedbackContent(result),
			})
		}
	}

	return nil, fmt.Errorf("workflow %s exceeded %d reasoning iterations", wf.Name, r.maxIterations)
}

// executeCall runs one requested tool call and publishes its lifecycle
// events in order.
func (r *Runner) executeCall(ctx context.Context, index map[string]Tool, principal *domain.Principal, threadID string, call llm.ToolCall) domain.ToolResult {
	name := call.Function.Name

	args := domain.Args{}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			r.registry.Publish(threadID, domain.ToolErrorEvent(name, err.Error()))
			return domain.ErrorResult(fmt.Sprintf("invalid tool arguments: %v", err))
		}
	}
	// The principal travels as a typed parameter; strip any identity the
	// model may have fabricated into the arguments.
	delete(args, "user_id")

	r.registry.Publish(threadID, domain.ToolStartEvent(name, rawArgs(args)))

	tool, ok := index[name]
	if !ok {
		msg := fmt.Sprintf("Unknown tool: %s", name)
		r.registry.Publish(threadID, domain.ToolErrorEvent(name, msg))
		return domain.ErrorResult(msg)
	}

	result, err := tool.Invoke(ctx, principal, args)
	if err != nil {
		log.Printf("ERROR: workflow tool %s failed: %v", name, err)
		r.registry.Publish(threadID, domain.ToolErrorEvent(name, err.Error()))
		return domain.ErrorResult(err.Error())
	}
	if result.IsError() {
		r.registry.Publish(threadID, domain.ToolErrorEvent(name, result.ErrMessage))
		return result
	}

	r.registry.Publish(threadID, domain.ToolEndEvent(name, feedbackRaw(result)))
	return result
}

// feedbackContent renders a tool result as the text fed back to the model.
// Binary payloads are summarized rather than inlined; the raw bytes are
// captured on the run outcome instead.
func feedbackContent(result domain.ToolResult) string {
	switch result.Kind {
	case domain.ResultKindJSON:
		return string(result.JSON)
	case domain.ResultKindText:
		return result.Text
	case domain.ResultKindBinary:
		return fmt.Sprintf(`{"status":"generated","binary_size":%d}`, len(result.Binary))
	case domain.ResultKindError:
		encoded, _ := json.Marshal(map[string]string{"error": result.ErrMessage})
		return string(encoded)
	}
	return "{}"
}

// feedbackRaw renders the tool_end response payload as JSON.
func feedbackRaw(result domain.ToolResult) json.RawMessage {
	switch result.Kind {
	case domain.ResultKindJSON:
		return result.JSON
	case domain.ResultKindText:
		encoded, _ := json.Marshal(map[string]string{"result": result.Text})
		return encoded
	case domain.ResultKindBinary:
		return json.RawMessage(fmt.Sprintf(`{"status":"generated","binary_size":%d}`, len(result.Binary)))
	}
	return json.RawMessage(`{}`)
}
