// Package tools holds the tool catalog exposed through tools/list and the
// dispatcher executing tools/call invocations against the backend clients.
package tools

import "github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"

func tokenProp() domain.Property {
	return domain.Property{Type: "string", Description: "JWT token from login"}
}

func threadIDProp() domain.Property {
	return domain.Property{Type: "string", Description: "Optional: stream thread id to publish progress events on; attach the websocket listener before calling"}
}

// Catalog returns the static tool definitions. The list is assembled once
// at startup and validated by the dispatcher constructor.
func Catalog() []domain.ToolDefinition {
	return []domain.ToolDefinition{
		{
			Name:        "run_agent_smart_search",
			Description: "Run agent to achieve goal through agentic workflow",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":     tokenProp(),
					"query":     {Type: "string", Description: "User Query to perform tasks"},
					"thread_id": threadIDProp(),
				},
				Required: []string{"token", "query"},
			},
		},
		{
			Name:        "run_agent_market_intelligence",
			Description: "Run agent to achieve goal through agentic workflow",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":     tokenProp(),
					"query":     {Type: "string", Description: "User Query to perform tasks"},
					"thread_id": threadIDProp(),
				},
				Required: []string{"token", "query"},
			},
		},
		{
			Name:        "run_agent_smart_qa",
			Description: "Run agent to achieve goal through agentic workflow",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":     tokenProp(),
					"query":     {Type: "string", Description: "User Query to perform tasks"},
					"thread_id": threadIDProp(),
				},
				Required: []string{"token", "query"},
			},
		},
		{
			Name:        "run_agent_business_proposal",
			Description: "Run agent to achieve goal through agentic workflow",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":        tokenProp(),
					"researchName": {Type: "string"},
					"thread_id":    threadIDProp(),
				},
				Required: []string{"token", "researchName"},
			},
		},
		{
			Name:        "volvox_auth_signup",
			Description: "Signup to Volvox resulting in creation of user account",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"email":    {Type: "string", Description: "User Email"},
					"password": {Type: "string", Description: "User password"},
					"fullName": {Type: "string", Description: "User Full Name"},
				},
				Required: []string{"email", "password", "fullName"},
			},
		},
		{
			Name:        "volvox_auth_login",
			Description: "Login to Volvox and get JWT token. Use this first before other Volvox operations.",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"email":    {Type: "string", Description: "User email"},
					"password": {Type: "string", Description: "User password"},
				},
				Required: []string{"email", "password"},
			},
		},
		{
			Name:        "volvox_auth_get_user",
			Description: "Get current user information using JWT token",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token": tokenProp(),
				},
				Required: []string{"token"},
			},
		},
		{
			Name:        "volvox_research_list",
			Description: "List user's research documents with optional filters",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":      tokenProp(),
					"limit":      {Type: "number", Default: 20},
					"offset":     {Type: "number", Default: 0},
					"search":     {Type: "string", Description: "Search query"},
					"start_date": {Type: "string", Description: "ISO date string"},
					"end_date":   {Type: "string", Description: "ISO date string"},
				},
				Required: []string{"token"},
			},
		},
		{
			Name:        "volvox_research_create",
			Description: "Upload a new research document (PDF, DOCX, etc.) for the user. Send as multipart/form-data.",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":        tokenProp(),
					"researchName": {Type: "string"},
				},
				Required: []string{"token", "researchName"},
			},
		},
		{
			Name:        "volvox_research_update",
			Description: "Update research name and/or replace file. Use multipart/form-data if uploading new file.",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":        tokenProp(),
					"research_id":  {Type: "string"},
					"researchName": {Type: "string"},
				},
				Required: []string{"token", "research_id"},
			},
		},
		{
			Name:        "volvox_research_delete",
			Description: "Delete research document",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":       tokenProp(),
					"research_id": {Type: "string"},
				},
				Required: []string{"token", "research_id"},
			},
		},
		{
			Name:        "volvox_chat_ask",
			Description: "Ask AI assistant a question about documents using RAG",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":       tokenProp(),
					"question":    {Type: "string"},
					"document_id": {Type: "string", Description: "Optional: specific document"},
					"chat_id":     {Type: "string", Description: "Optional: continue conversation"},
					"web_search":  {Type: "boolean", Description: "Optional: Implement Web Search"},
				},
				Required: []string{"token", "question"},
			},
		},
		{
			Name:        "volvox_summarize_research",
			Description: "Generate AI summary of multiple research documents",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token": tokenProp(),
					"document_ids": {
						Type:        "array",
						Items:       &domain.Property{Type: "string"},
						Description: "Array of document IDs",
					},
				},
				Required: []string{"token", "document_ids"},
			},
		},
		{
			Name:        "volvox_summarize_content",
			Description: "Generate AI summary of a large text content",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":   tokenProp(),
					"content": {Type: "string"},
				},
				Required: []string{"token", "content"},
			},
		},
		{
			Name:        "volvox_summarize_video",
			Description: "Generate AI summary of video transcripts",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":     tokenProp(),
					"video_url": {Type: "string"},
				},
				Required: []string{"token", "video_url"},
			},
		},
		{
			Name:        "volvox_chat_history_list",
			Description: "Get list of all chat conversations",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token": tokenProp(),
				},
				Required: []string{"token"},
			},
		},
		{
			Name:        "volvox_chat_history_get",
			Description: "Get full chat history for specific conversation",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":   tokenProp(),
					"chat_id": {Type: "string"},
				},
				Required: []string{"token", "chat_id"},
			},
		},
		{
			Name:        "volvox_chat_history_delete",
			Description: "Delete chat history for specific conversation",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":   tokenProp(),
					"chat_id": {Type: "string"},
				},
				Required: []string{"token", "chat_id"},
			},
		},
		{
			Name:        "smart_message_query",
			Description: "Ask AI assistant a question about topic and it will search from the knowledge base",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":    tokenProp(),
					"question": {Type: "string"},
					"mode":     {Type: "string"},
				},
				Required: []string{"token", "question"},
			},
		},
		{
			Name:        "innoscope_generate_feasibility",
			Description: "Generate feasibility output from a project summary",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":   tokenProp(),
					"summary": {Type: "string"},
				},
				Required: []string{"token", "summary"},
			},
		},
		{
			Name:        "innoscope_generate_roadmap",
			Description: "Generate a roadmap from a project summary",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":   tokenProp(),
					"summary": {Type: "string"},
				},
				Required: []string{"token", "summary"},
			},
		},
		{
			Name:        "kickstart_generate_proposal_from_text",
			Description: "Generate a funding proposal PDF from a feasibility report text",
			InputSchema: domain.Schema{
				Type: "object",
				Properties: map[string]domain.Property{
					"token":       tokenProp(),
					"report_text": {Type: "string"},
				},
				Required: []string{"token", "report_text"},
			},
		},
	}
}
