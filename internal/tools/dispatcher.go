package tools

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/innoscope"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/kickstart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/remote"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/smart"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/adapter/volvox"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/agent"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/audit"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/internal/domain"
	"github.com/AmirHashmi017/MCP-Server-And-LangGraph-Agent/policy"
)

// bootstrapTools are callable without a resolved principal; they exist to
// obtain one.
var bootstrapTools = map[string]bool{
	"volvox_auth_signup": true,
	"volvox_auth_login":  true,
}

// fileRequiredTools must carry a file upload on the invocation.
var fileRequiredTools = map[string]bool{
	"volvox_research_create":      true,
	"run_agent_business_proposal": true,
}

// Deps carries everything the dispatcher needs.
type Deps struct {
	Volvox     *volvox.Client
	Smart      *smart.Client
	Innoscope  *innoscope.Client
	Kickstart  *kickstart.Client
	Runner     *agent.Runner
	Supervisor *agent.Supervisor
	Toolset    *agent.Toolset
	Policy     *policy.Engine
	Audit      audit.Store
}

// Dispatcher validates, authorizes and executes tools/call invocations.
// Every failure mode is folded into an error-variant result; Execute never
// returns an error to the transport.
type Dispatcher struct {
	catalog []domain.ToolDefinition
	index   map[string]domain.ToolDefinition
	deps    Deps
}

// NewDispatcher builds a dispatcher over the static catalog. The catalog is
// validated here so a malformed definition fails startup instead of a
// later call.
func NewDispatcher(deps Deps) (*Dispatcher, error) {
	catalog := Catalog()
	index := make(map[string]domain.ToolDefinition, len(catalog))
	for _, def := range catalog {
		if def.Name == "" {
			return nil, fmt.Errorf("tool definition with empty name")
		}
		if def.Description == "" {
			return nil, fmt.Errorf("tool %s has no description", def.Name)
		}
		if _, dup := index[def.Name]; dup {
			return nil, fmt.Errorf("duplicate tool definition: %s", def.Name)
		}
		for _, req := range def.InputSchema.Required {
			if _, ok := def.InputSchema.Properties[req]; !ok {
				return nil, fmt.Errorf("tool %s requires undeclared argument %s", def.Name, req)
			}
		}
		index[def.Name] = def
	}
	return &Dispatcher{catalog: catalog, index: index, deps: deps}, nil
}

// Definitions returns the catalog in declaration order.
func (d *Dispatcher) Definitions() []domain.ToolDefinition {
	return d.catalog
}

// Execute runs one tool invocation through the full pipeline: lookup, auth
// resolution, argument validation, policy gate, audit, then the handler.
func (d *Dispatcher) Execute(ctx context.Context, name string, args domain.Args, file *domain.FileUpload) domain.ToolResult {
	def, ok := d.index[name]
	if !ok {
		return domain.ErrorResult(fmt.Sprintf("Unknown tool: %s", name))
	}
	if args == nil {
		args = domain.Args{}
	}

	var principal *domain.Principal
	if !bootstrapTools[name] {
		resolved, err := d.deps.Volvox.ResolveToken(ctx, args.String("token", ""))
		if err != nil {
			result := domain.ErrorResultWithStatus(authFailureMessage(err), remote.StatusOf(err))
			d.record(ctx, name, "", args, result)
			return result
		}
		principal = resolved
		// The resolved identity is authoritative; a caller-supplied
		// user_id can never widen access. Work on a copy so the
		// transport's map is left untouched.
		args = argsWithoutIdentity(args)
	}

	if result, ok := validateArgs(def, args); !ok {
		d.record(ctx, name, principalID(principal), args, result)
		return result
	}
	if fileRequiredTools[name] && file == nil {
		result := domain.ErrorResult("File is required for research creation")
		d.record(ctx, name, principalID(principal), args, result)
		return result
	}

	if result, blocked := d.gate(ctx, name, principal); blocked {
		d.record(ctx, name, principalID(principal), args, result)
		return result
	}

	result := d.dispatch(ctx, name, principal, args, file)
	d.record(ctx, name, principalID(principal), args, result)
	return result
}

// argsWithoutIdentity clones the argument map minus any identity field.
func argsWithoutIdentity(args domain.Args) domain.Args {
	clone := make(domain.Args, len(args))
	for k, v := range args {
		if k == "user_id" {
			continue
		}
		clone[k] = v
	}
	return clone
}

// validateArgs checks the schema-required arguments are present.
func validateArgs(def domain.ToolDefinition, args domain.Args) (domain.ToolResult, bool) {
	for _, req := range def.InputSchema.Required {
		if _, present := args[req]; !present {
			return domain.ErrorResult(fmt.Sprintf("missing required argument: %s", req)), false
		}
	}
	return domain.ToolResult{}, true
}

// gate consults the policy engine. Evaluation errors fail closed.
func (d *Dispatcher) gate(ctx context.Context, name string, principal *domain.Principal) (domain.ToolResult, bool) {
	if d.deps.Policy == nil {
		return domain.ToolResult{}, false
	}
	input := map[string]interface{}{
		"tool_name": name,
		"user_id":   principalID(principal),
	}
	decision, reason, err := d.deps.Policy.Evaluate(ctx, input)
	if err != nil {
		log.Printf("ERROR: policy evaluation failed for %s: %v", name, err)
		return domain.ErrorResult("policy evaluation failed"), true
	}
	if decision == "block" {
		if reason == "" {
			reason = fmt.Sprintf("tool %s blocked by policy", name)
		}
		return domain.ErrorResult(reason), true
	}
	return domain.ToolResult{}, false
}

// record persists the dispatch outcome. Audit failures are logged, never
// surfaced.
func (d *Dispatcher) record(ctx context.Context, name, userID string, args domain.Args, result domain.ToolResult) {
	if d.deps.Audit == nil {
		return
	}
	entry := &audit.Dispatch{
		DispatchID:    "disp_" + uuid.NewString()[:8],
		ToolName:      name,
		UserID:        userID,
		Args:          audit.Snippet(string(redactedArgs(args))),
		Success:       !result.IsError(),
		ResultSnippet: audit.Snippet(resultSnippet(result)),
		StatusCode:    result.StatusCode,
		CreatedAt:     time.Now().UTC(),
	}
	if err := d.deps.Audit.RecordDispatch(ctx, entry); err != nil {
		log.Printf("WARN: failed to record dispatch %s: %v", entry.DispatchID, err)
	}
}

// dispatch routes a validated, authorized invocation to its handler.
func (d *Dispatcher) dispatch(ctx context.Context, name string, principal *domain.Principal, args domain.Args, file *domain.FileUpload) domain.ToolResult {
	switch name {
	case "volvox_auth_signup":
		grant, err := d.deps.Volvox.Signup(ctx, args.String("email", ""), args.String("password", ""), args.String("fullName", ""))
		if err != nil {
			return remoteError(err)
		}
		return domain.JSONResultOf(grant)

	case "volvox_auth_login":
		grant, err := d.deps.Volvox.Login(ctx, args.String("email", ""), args.String("password", ""))
		if err != nil {
			return remoteError(err)
		}
		return domain.JSONResultOf(grant)

	case "volvox_auth_get_user":
		return domain.JSONResultOf(principal)

	case "volvox_research_list":
		raw, err := d.deps.Volvox.ResearchList(ctx, principal.ID, volvox.ResearchListOptions{
			Limit:     args.Int("limit", 20),
			Offset:    args.Int("offset", 0),
			Search:    args.String("search", ""),
			StartDate: args.String("start_date", ""),
			EndDate:   args.String("end_date", ""),
		})
		return jsonOrError(raw, err)

	case "volvox_research_create":
		raw, err := d.deps.Volvox.ResearchCreate(ctx, principal.ID, args.String("researchName", ""), file)
		return jsonOrError(raw, err)

	case "volvox_research_update":
		raw, err := d.deps.Volvox.ResearchUpdate(ctx, principal.ID, args.String("research_id", ""), args.String("researchName", ""), file)
		return jsonOrError(raw, err)

	case "volvox_research_delete":
		raw, err := d.deps.Volvox.ResearchDelete(ctx, principal.ID, args.String("research_id", ""))
		return jsonOrError(raw, err)

	case "volvox_chat_ask":
		raw, err := d.deps.Volvox.ChatAsk(ctx, principal.ID, args.String("question", ""),
			args.String("document_id", ""), args.String("chat_id", ""), args.Bool("web_search"))
		return jsonOrError(raw, err)

	case "volvox_summarize_research":
		raw, err := d.deps.Volvox.SummarizeResearch(ctx, args.StringSlice("document_ids"))
		return jsonOrError(raw, err)

	case "volvox_summarize_content":
		raw, err := d.deps.Volvox.SummarizeContent(ctx, args.String("content", ""))
		return jsonOrError(raw, err)

	case "volvox_summarize_video":
		raw, err := d.deps.Volvox.SummarizeVideo(ctx, args.String("video_url", ""))
		return jsonOrError(raw, err)

	case "volvox_chat_history_list":
		raw, err := d.deps.Volvox.ChatHistoryList(ctx, principal.ID)
		return jsonOrError(raw, err)

	case "volvox_chat_history_get":
		raw, err := d.deps.Volvox.ChatHistoryGet(ctx, principal.ID, args.String("chat_id", ""))
		return jsonOrError(raw, err)

	case "volvox_chat_history_delete":
		raw, err := d.deps.Volvox.ChatHistoryDelete(ctx, principal.ID, args.String("chat_id", ""))
		return jsonOrError(raw, err)

	case "smart_message_query":
		raw, err := d.deps.Smart.MessageQuery(ctx, args.String("question", ""), args.String("mode", "simple"))
		return jsonOrError(raw, err)

	case "innoscope_generate_feasibility":
		text, err := d.deps.Innoscope.FeasibilityFromSummary(ctx, args.String("summary", ""))
		if err != nil {
			return remoteError(err)
		}
		return domain.TextResult(text)

	case "innoscope_generate_roadmap":
		text, err := d.deps.Innoscope.RoadmapFromSummary(ctx, args.String("summary", ""))
		if err != nil {
			return remoteError(err)
		}
		return domain.TextResult(text)

	case "kickstart_generate_proposal_from_text":
		pdf, err := d.deps.Kickstart.GenerateProposal(ctx, args.String("report_text", ""))
		if err != nil {
			return remoteError(err)
		}
		return domain.BinaryResult(pdf)

	case "run_agent_smart_search":
		return d.launchWorkflow(agent.SmartSearchWorkflow(d.deps.Toolset), principal, args,
			agent.SmartSearchQuery(args.String("query", "")), nil)

	case "run_agent_smart_qa":
		return d.launchWorkflow(agent.SmartQAWorkflow(d.deps.Toolset), principal, args,
			agent.SmartQAQuery(args.String("query", "")), nil)

	case "run_agent_market_intelligence":
		return d.launchWorkflow(agent.MarketIntelligenceWorkflow(d.deps.Toolset), principal, args,
			agent.MarketIntelligenceQuery(args.String("query", "")), nil)

	case "run_agent_business_proposal":
		return d.launchBusinessProposal(ctx, principal, args, file)
	}

	// Catalog entries and handler arms are kept in lockstep; reaching here
	// means a definition was added without a handler.
	return domain.ErrorResult(fmt.Sprintf("Unknown tool: %s", name))
}

// launchWorkflow starts a supervised background run and answers immediately
// with the thread id the caller should attach a stream listener to.
func (d *Dispatcher) launchWorkflow(wf agent.Workflow, principal *domain.Principal, args domain.Args, query string, before agent.TaskFunc) domain.ToolResult {
	threadID := args.String("thread_id", "")
	if threadID == "" {
		threadID = "run_" + uuid.NewString()[:8]
	}

	d.deps.Supervisor.Launch(threadID, func(ctx context.Context) (json.RawMessage, error) {
		if before != nil {
			if _, err := before(ctx); err != nil {
				return nil, err
			}
		}
		outcome, err := d.deps.Runner.Run(ctx, wf, principal, threadID, query)
		if err != nil {
			return nil, err
		}
		return workflowPayload(wf, outcome, threadID)
	})

	return domain.JSONResultOf(map[string]string{
		"status":    "started",
		"thread_id": threadID,
	})
}

// launchBusinessProposal uploads the attached research document first, then
// runs the proposal workflow against it.
func (d *Dispatcher) launchBusinessProposal(ctx context.Context, principal *domain.Principal, args domain.Args, file *domain.FileUpload) domain.ToolResult {
	researchName := args.String("researchName", "")
	query := agent.BusinessProposalQuery(researchName)

	return d.launchWorkflow(agent.BusinessProposalWorkflow(d.deps.Toolset), principal, args, query,
		func(ctx context.Context) (json.RawMessage, error) {
			raw, err := d.deps.Volvox.ResearchCreate(ctx, principal.ID, researchName, file)
			if err != nil {
				return nil, fmt.Errorf("research creation failed: %w", err)
			}
			var created struct {
				ID string `json:"_id"`
			}
			if err := json.Unmarshal(raw, &created); err != nil || created.ID == "" {
				return nil, fmt.Errorf("research creation returned no ID")
			}
			return raw, nil
		})
}

// workflowPayload shapes the terminal workflow_complete result.
func workflowPayload(wf agent.Workflow, outcome *agent.RunOutcome, threadID string) (json.RawMessage, error) {
	if wf.WantsBinary {
		if len(outcome.Binary) == 0 {
			return nil, fmt.Errorf("workflow %s finished without generating a document", wf.Name)
		}
		return json.Marshal(map[string]string{
			"pdf_base64": base64.StdEncoding.EncodeToString(outcome.Binary),
		})
	}
	return json.Marshal(map[string]interface{}{
		"response":         outcome.Response,
		"thread_id":        threadID,
		"tool_calls_count": outcome.ToolCallsCount,
	})
}

// authFailureMessage normalizes an identity resolution failure.
func authFailureMessage(err error) string {
	if status := remote.StatusOf(err); status != 0 {
		return "Could not validate credentials"
	}
	return fmt.Sprintf("identity resolution failed: %v", err)
}

// remoteError folds a backend call failure into an error result carrying
// the downstream status when one exists.
func remoteError(err error) domain.ToolResult {
	return domain.ErrorResultWithStatus(err.Error(), remote.StatusOf(err))
}

func jsonOrError(raw json.RawMessage, err error) domain.ToolResult {
	if err != nil {
		return remoteError(err)
	}
	return domain.JSONResult(raw)
}

func principalID(p *domain.Principal) string {
	if p == nil {
		return ""
	}
	return p.ID
}

// redactedArgs renders the argument map for the audit trail with the
// bearer token masked.
func redactedArgs(args domain.Args) json.RawMessage {
	clone := make(domain.Args, len(args))
	for k, v := range args {
		if k == "token" || k == "password" {
			clone[k] = "[redacted]"
			continue
		}
		clone[k] = v
	}
	raw, err := json.Marshal(clone)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

// resultSnippet renders a short text form of the result for the audit trail.
func resultSnippet(result domain.ToolResult) string {
	switch result.Kind {
	case domain.ResultKindJSON:
		return string(result.JSON)
	case domain.ResultKindText:
		return result.Text
	case domain.ResultKindBinary:
		return fmt.Sprintf("[binary %d bytes]", len(result.Binary))
	case domain.ResultKindError:
		return result.ErrMessage
	}
	return ""
}
