// Package content provides MCP prompts and resources for the dronemcp server.
package content

import "github.com/emergent-company/dronemcp/internal/mcp"

// --- dronemcp-guide prompt ---

// GuidePrompt is an actionable prompt that orients an agent to the tool
// surface and the safety model before it issues its first command.
type GuidePrompt struct{}

func (p *GuidePrompt) Definition() mcp.PromptDefinition {
	return mcp.PromptDefinition{
		Name:        "dronemcp-guide",
		Description: "Orientation guide covering the natural-language command path, the typed tool surface, and the safety preconditions that gate every dispatch.",
		Arguments:   []mcp.PromptArgument{},
	}
}

func (p *GuidePrompt) Get(arguments map[string]string) (*mcp.PromptsGetResult, error) {
	return &mcp.PromptsGetResult{
		Description: "Guide to commanding the drone fleet through dronemcp",
		Messages: []mcp.PromptMessage{
			{
				Role:    "user",
				Content: mcp.TextContent(guideText),
			},
		},
	}, nil
}

const guideText = `# Commanding the Drone Fleet

You can control drones two ways: a natural-language sentence, or a typed
tool call with structured parameters.

## Natural language

Call ` + "`execute_natural_language_command`" + ` with a Japanese or English
sentence, e.g. "ドローンAAに接続して" or "move forward 2m". The server parses
the sentence, scores its confidence, and either dispatches it or returns
suggestions for a clearer rephrasing. Pass ` + "`dry_run: true`" + ` to see the
parsed plan without dispatching, or ` + "`confirm_before_execution: true`" + `
to confirm a parsed ` + "`emergency_stop`" + `.

## Typed tools

Prefer typed tools (` + "`connect_drone`" + `, ` + "`takeoff`" + `, ` + "`move`" + `, ` + "`rotate`" + `,
` + "`land`" + `, ` + "`emergency_stop`" + `, ...) when you already know the exact
parameters — they skip parsing entirely and fail fast on schema mismatches.

## Safety model

Every command, typed or parsed, passes through the same precondition
gate before it reaches the backend: unknown drones, disconnected or
errored drones, low battery on takeoff, and commands that assume
in-flight state on a landed drone are all rejected locally, with no
backend call made. Dangerous commands (` + "`emergency_stop`" + `,
` + "`land_immediate`" + `, ` + "`reset`" + `) additionally require an explicit
` + "`confirm: true`" + ` argument.

## Batches

` + "`execute_batch`" + ` accepts a list of commands (natural language or typed)
plus an ` + "`execution_mode`" + ` (` + "`sequential`" + `, ` + "`parallel`" + `, or
` + "`optimized`" + `) and a ` + "`stop_on_error`" + ` flag. The server infers
dependencies automatically — connect before flight, takeoff before
movement — so you rarely need to order commands by hand.

## Checking status

` + "`get_drone_status`" + ` is a cheap, cached read (30s TTL); any successful
command you issue invalidates the relevant cache entries automatically.
` + "`get_drones`" + `, ` + "`get_system_status`" + `, and ` + "`health_check`" + ` query
the backend on every call.
`
