// Package tools implements the MCP Tool Surface (Component F): the
// typed control and query tools, the natural-language command tool, and
// the batch executor tool. Every tool validates its arguments against a
// compiled JSON Schema before anything reaches the Drone Service —
// schema violations fail INVALID_REQUEST and never touch the backend.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/xeipuuv/gojsonschema"
)

// simpleTool adapts a name/description/schema/handler tuple into an
// mcp.Tool. The schema is compiled once, at construction, so a
// malformed schema fails loudly at startup rather than on first call.
type simpleTool struct {
	name        string
	description string
	schemaRaw   json.RawMessage
	schema      *gojsonschema.Schema
	handler     func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error)
}

func newTool(name, description, schemaJSON string, handler func(context.Context, json.RawMessage) (*mcp.ToolsCallResult, error)) *simpleTool {
	loader := gojsonschema.NewStringLoader(schemaJSON)
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		panic(fmt.Sprintf("tool %s: invalid schema: %v", name, err))
	}
	return &simpleTool{
		name:        name,
		description: description,
		schemaRaw:   json.RawMessage(schemaJSON),
		schema:      schema,
		handler:     handler,
	}
}

func (t *simpleTool) Name() string                  { return t.name }
func (t *simpleTool) Description() string           { return t.description }
func (t *simpleTool) InputSchema() json.RawMessage  { return t.schemaRaw }

func (t *simpleTool) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	result, err := t.schema.Validate(gojsonschema.NewBytesLoader(params))
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("%s: %v", errs.CodeInvalidRequest, err)), nil
	}
	if !result.Valid() {
		return mcp.ErrorResult(schemaErrorMessage(result)), nil
	}
	return t.handler(ctx, params)
}

func schemaErrorMessage(result *gojsonschema.Result) string {
	msg := string(errs.CodeInvalidRequest) + ":"
	for _, e := range result.Errors() {
		msg += " " + e.String() + ";"
	}
	return msg
}

// errResult renders an *errs.Error as a tool-visible error result.
func errResult(err error) *mcp.ToolsCallResult {
	return mcp.ErrorResult(fmt.Sprintf("%s: %s", errs.CodeOf(err), err.Error()))
}
