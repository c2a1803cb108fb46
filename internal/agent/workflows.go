package agent

import "fmt"

const assistantPreamble = `You are Volvox AI, an expert research assistant.

You have full access to the user's personal research library and chat history.
The user identity is already known and automatically passed to all tools. NEVER ask for it.
`

const assistantRules = `
RULES:
- Always use tools when the user wants to see, search, or ask about their documents
- Never say "I don't have access" or "please provide your user ID"
- Always respond helpfully and directly
- If no documents exist, say: "You haven't uploaded any research yet."

You are ready. Begin helping the user immediately.
`

// SmartSearchWorkflow performs a deep knowledge-base search and condenses
// the result into a summary.
func SmartSearchWorkflow(ts *Toolset) Workflow {
	return Workflow{
		Name: "smart_search",
		SystemPrompt: assistantPreamble + `
Your available tools:
- smart_deep_search: Ask AI assistant a question about topic and it will search from the knowledge base
- volvox_summarize_content: Summarize long Content Text
` + assistantRules,
		Tools: ts.Select("smart_deep_search", "volvox_summarize_content"),
	}
}

// SmartQAWorkflow answers topic questions with the full research toolset,
// threading the search result into the conversational RAG backend.
func SmartQAWorkflow(ts *Toolset) Workflow {
	return Workflow{
		Name: "smart_qa",
		SystemPrompt: assistantPreamble + `
Your available tools:
- smart_deep_search: Ask AI assistant a question about topic and it will search from the knowledge base
- volvox_search_documents: list and search research papers
- volvox_ask_document: Ask a question about documents or content using RAG, also aware of the chat history using specific chat_id for a chat search and also enable web_search
- volvox_summarize_documents: summarize multiple papers
- volvox_summarize_content: Summarize long Content Text
- volvox_summarize_video: summarize YouTube videos
- volvox_chat_history_list: show past conversations
- volvox_chat_history_get: retrieve a full chat
- volvox_delete_chat_history: delete a chat
` + assistantRules,
		Tools: ts.Select(
			"smart_deep_search",
			"volvox_search_documents",
			"volvox_ask_document",
			"volvox_summarize_documents",
			"volvox_summarize_content",
			"volvox_summarize_video",
			"volvox_chat_history_list",
			"volvox_chat_history_get",
			"volvox_delete_chat_history",
		),
	}
}

// MarketIntelligenceWorkflow chains search, summarization, feasibility,
// roadmap and proposal generation into one PDF-producing run.
func MarketIntelligenceWorkflow(ts *Toolset) Workflow {
	return Workflow{
		Name: "market_intelligence",
		SystemPrompt: assistantPreamble + `
Your available tools:
- smart_deep_search: Ask AI assistant a question about topic and it will search from the knowledge base
- volvox_summarize_content: Summarize long Content Text
- generate_feasibility: Generate feasibility output from a project summary
- generate_roadmap: Generate a roadmap from a project summary
- generate_proposal_from_text: Generate a funding proposal PDF from a feasibility report text
` + assistantRules,
		Tools: ts.Select(
			"smart_deep_search",
			"volvox_summarize_content",
			"generate_feasibility",
			"generate_roadmap",
			"generate_proposal_from_text",
		),
		WantsBinary: true,
	}
}

// BusinessProposalWorkflow drafts a funding proposal PDF grounded in the
// user's research library.
func BusinessProposalWorkflow(ts *Toolset) Workflow {
	return Workflow{
		Name: "business_proposal",
		SystemPrompt: assistantPreamble + `
Your available tools:
- volvox_search_documents: list and search research papers
- volvox_summarize_documents: summarize multiple papers
- generate_feasibility: Generate feasibility output from a project summary
- generate_roadmap: Generate a roadmap from a project summary
- generate_proposal_from_text: Generate a funding proposal PDF from a feasibility report text
` + assistantRules,
		Tools: ts.Select(
			"volvox_search_documents",
			"volvox_summarize_documents",
			"generate_feasibility",
			"generate_roadmap",
			"generate_proposal_from_text",
		),
		WantsBinary: true,
	}
}

// SmartSearchQuery builds the run instruction for the smart_search workflow.
func SmartSearchQuery(query string) string {
	return fmt.Sprintf(`Based on the query %s user has provided, perform smart deep search on it,
then summarize the result of deep search.`, query)
}

// SmartQAQuery builds the run instruction for the smart_qa workflow.
func SmartQAQuery(query string) string {
	return fmt.Sprintf(`Based on the query %s user has provided, perform smart deep search on it,
then give the result of that to volvox chat ask means chatbot and
ask it to remember that context.`, query)
}

// MarketIntelligenceQuery builds the step-by-step run instruction for the
// market_intelligence workflow.
func MarketIntelligenceQuery(query string) string {
	return fmt.Sprintf(`You are an expert market intelligence analyst. Follow these steps EXACTLY in this order:

1. Call the tool smart_deep_search with the original user query (mode="deep").
2. Take the full search result and call volvox_summarize_content on it to create a concise summary.
3. Take that same summary and call generate_feasibility.
4. Take the same summary again and call generate_roadmap.
5. Combine the full feasibility text + roadmap text into one single string.
6. Call generate_proposal_from_text with that combined string.
7. Finally, respond with something like: "Here is your complete market intelligence report with feasibility, roadmap and funding proposal (PDF attached)."

Never skip steps and never answer before the PDF is generated.
Original user query: %s`, query)
}

// BusinessProposalQuery builds the run instruction for the
// business_proposal workflow.
func BusinessProposalQuery(topic string) string {
	return fmt.Sprintf("Generate Business Proposal on Topic %s", topic)
}
