// Package agent implements the workflow runner: a reasoning/acting loop
// that lets the reasoning backend drive a bounded sequence of tool calls,
// publishing progress events per thread id along the way.
package agent

import (
	"context"
	"encoding/json"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/innoscope"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/kickstart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/smart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/volvox"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
)

// Tool is one capability callable by the workflow runner. The principal is
// a typed parameter injected by the runner; a model-supplied identity field
// can never shadow it.
type Tool struct {
	Name        string
	Description string
	Parameters  domain.Schema
	Invoke      func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error)
}

// Toolset is the full vocabulary of workflow tools, built once from the
// backend clients. Workflows select subsets of it.
type Toolset struct {
	tools map[string]Tool
}

// Get returns the named tool.
func (ts *Toolset) Get(name string) (Tool, bool) {
	t, ok := ts.tools[name]
	return t, ok
}

// Select returns the named subset in order; unknown names are skipped.
func (ts *Toolset) Select(names ...string) []Tool {
	out := make([]Tool, 0, len(names))
	for _, name := range names {
		if t, ok := ts.tools[name]; ok {
			out = append(out, t)
		}
	}
	return out
}

func stringProp(desc string) domain.Property {
	return domain.Property{Type: "string", Description: desc}
}

// NewToolset wires the workflow tool vocabulary to the backend clients.
func NewToolset(vx *volvox.Client, sm *smart.Client, inno *innoscope.Client, ks *kickstart.Client) *Toolset {
	tools := []Tool{
		{
			Name:        "volvox_search_documents",
			Description: "List and search the user's research documents",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"limit":      {Type: "number", Default: 20},
					"offset":     {Type: "number", Default: 0},
					"search":     stringProp("Search query for document names"),
					"start_date": stringProp("Filter start date (ISO format)"),
					"end_date":   stringProp("Filter end date (ISO format)"),
				},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.ResearchList(ctx, principal.ID, volvox.ResearchListOptions{
					Limit:     args.Int("limit", 20),
					Offset:    args.Int("offset", 0),
					Search:    args.String("search", ""),
					StartDate: args.String("start_date", ""),
					EndDate:   args.String("end_date", ""),
				})
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_ask_document",
			Description: "Ask a question about documents or content using RAG, optionally scoped to a document or continuing a chat, with optional web search",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"question":    stringProp("The question to ask"),
					"document_id": stringProp("Optional: specific document"),
					"chat_id":     stringProp("Optional: continue conversation"),
					"web_search":  {Type: "boolean", Description: "Optional: enable web search"},
				},
				Required: []string{"question"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.ChatAsk(ctx, principal.ID, args.String("question", ""),
					args.String("document_id", ""), args.String("chat_id", ""), args.Bool("web_search"))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_summarize_documents",
			Description: "Summarize multiple research documents",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"document_ids": {Type: "array", Description: "Array of document IDs", Items: &domain.Property{Type: "string"}},
				},
				Required: []string{"document_ids"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.SummarizeResearch(ctx, args.StringSlice("document_ids"))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_summarize_content",
			Description: "Summarize long content text",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"content": stringProp("The text to summarize"),
				},
				Required: []string{"content"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.SummarizeContent(ctx, args.String("content", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_summarize_video",
			Description: "Summarize a video transcript",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"video_url": stringProp("URL of the video to summarize"),
				},
				Required: []string{"video_url"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.SummarizeVideo(ctx, args.String("video_url", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_chat_history_list",
			Description: "List all chat conversations for the user",
			Parameters:  domain.Schema{Type: "object", Properties: map[string]domain.Property{}},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.ChatHistoryList(ctx, principal.ID)
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_chat_history_get",
			Description: "Get the full history of one chat conversation",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"chat_id": stringProp("Specific chat ID"),
				},
				Required: []string{"chat_id"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.ChatHistoryGet(ctx, principal.ID, args.String("chat_id", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "volvox_delete_chat_history",
			Description: "Delete a chat conversation's history",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"chat_id": stringProp("Specific chat ID"),
				},
				Required: []string{"chat_id"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := vx.ChatHistoryDelete(ctx, principal.ID, args.String("chat_id", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "smart_deep_search",
			Description: "Ask the knowledge base a question; performs a deep search",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"question": stringProp("The question to search"),
					"mode":     {Type: "string", Default: "deep"},
				},
				Required: []string{"question"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				raw, err := sm.MessageQuery(ctx, args.String("question", ""), args.String("mode", "deep"))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.JSONResult(raw), nil
			},
		},
		{
			Name:        "generate_feasibility",
			Description: "Generate feasibility output from a project summary",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"summary": stringProp("The project summary text"),
				},
				Required: []string{"summary"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				text, err := inno.FeasibilityFromSummary(ctx, args.String("summary", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.TextResult(text), nil
			},
		},
		{
			Name:        "generate_roadmap",
			Description: "Generate a roadmap from a project summary",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"summary": stringProp("The project summary text"),
				},
				Required: []string{"summary"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				text, err := inno.RoadmapFromSummary(ctx, args.String("summary", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.TextResult(text), nil
			},
		},
		{
			Name:        "generate_proposal_from_text",
			Description: "Generate a funding proposal PDF from a feasibility report text",
			Parameters: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"report_text": stringProp("The feasibility report content"),
				},
				Required: []string{"report_text"},
			},
			Invoke: func(ctx context.Context, principal *domain.Principal, args domain.Args) (domain.ToolResult, error) {
				pdf, err := ks.GenerateProposal(ctx, args.String("report_text", ""))
				if err != nil {
					return domain.ToolResult{}, err
				}
				return domain.BinaryResult(pdf), nil
			},
		},
	}

	index := make(map[string]Tool, len(tools))
	for _, t := range tools {
		index[t.Name] = t
	}
	return &Toolset{tools: index}
}

// rawArgs re-encodes the argument mapping for event publication.
func rawArgs(args domain.Args) json.RawMessage {
	raw, err := json.Marshal(args)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}
