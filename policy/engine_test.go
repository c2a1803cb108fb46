package policy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicyAllowsAuthenticatedWorkflow(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	assert.NoError(t, err)

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool_name": "run_agent_smart_search",
		"user_id":   "u1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "allow", decision)
}

func TestDefaultPolicyBlocksAnonymousWorkflow(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	assert.NoError(t, err)

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool_name": "run_agent_market_intelligence",
		"user_id":   "",
	})
	assert.NoError(t, err)
	assert.Equal(t, "block", decision)
}

func TestDefaultPolicyAllowsPlainTools(t *testing.T) {
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	assert.NoError(t, err)

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool_name": "volvox_research_list",
		"user_id":   "",
	})
	assert.NoError(t, err)
	assert.Equal(t, "allow", decision)
}

func TestCustomPolicyBlockReason(t *testing.T) {
	const custom = `
package tool_policy

default decision = "allow"

decision = "block" {
	input.tool_name == "volvox_research_delete"
}
`
	engine, err := NewEngine(context.Background(), custom)
	assert.NoError(t, err)

	decision, _, err := engine.Evaluate(context.Background(), map[string]interface{}{
		"tool_name": "volvox_research_delete",
		"user_id":   "u1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "block", decision)
}

func TestMalformedPolicyFailsConstruction(t *testing.T) {
	_, err := NewEngine(context.Background(), "package tool_policy\n\ndecision :=")
	assert.Error(t, err)
}
