package tools

import (
	"encoding/json"
	"testing"

	"github.com/emergent-company/dronemcp/internal/confidence"
	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/emergent-company/dronemcp/internal/nlp"
	"github.com/emergent-company/dronemcp/internal/patterns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNLTool(t *testing.T, svc *fakeService) *mcp.Registry {
	t.Helper()
	lib := patterns.LoadDefault()
	tok := nlp.NewDefaultTokenizer()
	engine := nlp.NewEngine(lib, tok, nil)
	evaluator := confidence.NewEvaluator(lib)

	reg := mcp.NewRegistry()
	RegisterNLTool(reg, engine, evaluator, tok, svc, confidence.DefaultExecutableThreshold)
	return reg
}

func TestExecuteNaturalLanguageCommandDispatchesConfidentConnect(t *testing.T) {
	svc := newFakeService()
	reg := newTestNLTool(t, svc)

	result := callTool(t, reg, "execute_natural_language_command", map[string]any{
		"command": "ドローンAAに接続して",
	})
	require.False(t, result.IsError)

	var decoded nlResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.True(t, decoded.Executed)
	assert.Equal(t, "connect", decoded.Intent.Action)
	assert.Contains(t, svc.calls, "connect:AA")
}

func TestExecuteNaturalLanguageCommandDryRunNeverDispatches(t *testing.T) {
	svc := newFakeService()
	reg := newTestNLTool(t, svc)

	result := callTool(t, reg, "execute_natural_language_command", map[string]any{
		"command": "ドローンAAに接続して",
		"dry_run": true,
	})
	require.False(t, result.IsError)

	var decoded nlResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.False(t, decoded.Executed)
	assert.True(t, decoded.DryRun)
	assert.Empty(t, svc.calls)
}

func TestExecuteNaturalLanguageCommandUnknownReturnsSuggestions(t *testing.T) {
	svc := newFakeService()
	reg := newTestNLTool(t, svc)

	result := callTool(t, reg, "execute_natural_language_command", map[string]any{
		"command": "asdkjfh qwoeiruqwoe",
	})
	require.False(t, result.IsError)

	var decoded nlResult
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.Equal(t, "unknown", decoded.Intent.Action)
	assert.False(t, decoded.Executed)
	assert.Empty(t, svc.calls)
}

func TestExecuteNaturalLanguageCommandHealthCheckRoutesToQuery(t *testing.T) {
	svc := newFakeService()
	svc.health = &model.SystemStatus{Status: "ok"}
	reg := newTestNLTool(t, svc)

	result := callTool(t, reg, "execute_natural_language_command", map[string]any{
		"command": "run a health check",
	})
	require.False(t, result.IsError)
	assert.Contains(t, svc.calls, "health_check")
}
