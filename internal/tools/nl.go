package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/emergent-company/dronemcp/internal/confidence"
	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/emergent-company/dronemcp/internal/nlp"
)

// nlArgs is the execute_natural_language_command argument shape.
type nlArgs struct {
	Command                string         `json:"command"`
	Context                map[string]any `json:"context"`
	DryRun                  bool           `json:"dry_run"`
	ConfirmBeforeExecution  bool           `json:"confirm_before_execution"`
}

// nlResult is what the tool returns whether or not it dispatched.
type nlResult struct {
	Intent     nlp.ParsedIntent       `json:"intent"`
	Evaluation confidence.Evaluation  `json:"evaluation"`
	Executed   bool                   `json:"executed"`
	DryRun     bool                   `json:"dry_run"`
	Result     *model.CommandResult   `json:"result,omitempty"`
	Suggestions []nlp.Suggestion      `json:"suggestions,omitempty"`
}

// RegisterNLTool registers execute_natural_language_command: it parses
// free text into an intent, scores the intent's confidence, and only
// dispatches to svc when the result clears the executable threshold (or
// returns the evaluation untouched for dry_run / low-confidence input).
func RegisterNLTool(reg *mcp.Registry, engine *nlp.Engine, evaluator *confidence.Evaluator, tok nlp.Tokenizer, svc droneService, executableThreshold float64) {
	reg.Register(newTool("execute_natural_language_command", "Parse and, if confident enough, execute a free-text drone command", `{
		"type":"object","required":["command"],
		"properties":{
			"command":{"type":"string","minLength":1},
			"context":{"type":"object"},
			"dry_run":{"type":"boolean"},
			"confirm_before_execution":{"type":"boolean"}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args nlArgs
		json.Unmarshal(params, &args)

		intent := engine.Parse(args.Command, args.Context)

		var tokens []nlp.Token
		if tok != nil {
			tokens = tok.Tokenize(args.Command)
		}
		eval := evaluator.Evaluate(intent, args.Command, tokens)

		res := nlResult{Intent: intent, Evaluation: eval, DryRun: args.DryRun}

		if intent.Action == "unknown" {
			res.Suggestions = engine.Suggest(args.Command)
			return mcp.JSONResult(res)
		}

		if args.DryRun {
			return mcp.JSONResult(res)
		}

		if !confidence.IsExecutable(eval, executableThreshold) {
			res.Suggestions = engine.Suggest(args.Command)
			return mcp.JSONResult(res)
		}

		droneID, _ := intent.Parameters["drone_id"].(string)
		if droneID == "" {
			if v, ok := args.Context["drone_id"].(string); ok {
				droneID = v
			}
		}

		if intent.Action == "get_status" || intent.Action == "health_check" {
			queried, err := dispatchQuery(ctx, svc, intent.Action, droneID)
			if err != nil {
				return errResult(err), nil
			}
			res.Executed = true
			return mcp.JSONResult(map[string]any{"intent": res.Intent, "evaluation": res.Evaluation, "executed": true, "status": queried})
		}

		if droneID == "" {
			return errResult(errs.New(errs.CodeParameterMissing, "drone_id could not be determined from the command or context")), nil
		}

		result, err := dispatchParsed(ctx, svc, intent, droneID, args.ConfirmBeforeExecution)
		if err != nil {
			return errResult(err), nil
		}
		res.Executed = true
		res.Result = result
		return mcp.JSONResult(res)
	}))
}

// dispatchParsed routes a parsed intent to the matching droneService
// method, pulling typed parameters out of intent.Parameters.
func dispatchParsed(ctx context.Context, svc droneService, intent nlp.ParsedIntent, droneID string, confirm bool) (*model.CommandResult, error) {
	p := intent.Parameters
	switch intent.Action {
	case "connect":
		return svc.Connect(ctx, droneID)
	case "disconnect":
		return svc.Disconnect(ctx, droneID)
	case "takeoff":
		return svc.Takeoff(ctx, droneID, floatPtr(p, "height"))
	case "land":
		return svc.Land(ctx, droneID)
	case "emergency_stop":
		return svc.EmergencyStop(ctx, droneID, confirm)
	case "move":
		dir, _ := p["direction"].(string)
		dist, _ := p["distance"].(float64)
		return svc.Move(ctx, droneID, model.Direction(dir), dist)
	case "rotate":
		dir, _ := p["direction"].(string)
		angle, _ := p["angle"].(float64)
		return svc.Rotate(ctx, droneID, model.Direction(dir), angle)
	case "altitude":
		height, _ := p["height"].(float64)
		return svc.SetAltitude(ctx, droneID, height, model.AltitudeAbsolute)
	case "take_photo":
		quality, _ := p["quality"].(string)
		filename, _ := p["filename"].(string)
		return svc.TakePhoto(ctx, droneID, quality, filename)
	case "start_streaming":
		quality, _ := p["quality"].(string)
		return svc.StartStreaming(ctx, droneID, quality, "")
	case "stop_streaming":
		return svc.StopStreaming(ctx, droneID)
	case "detect_objects":
		target, _ := p["target_class"].(string)
		return svc.Detect(ctx, droneID, target, floatPtr(p, "confidence_threshold"))
	case "start_tracking":
		target, _ := p["target_class"].(string)
		return svc.StartTracking(ctx, droneID, target, nil)
	case "stop_tracking":
		return svc.StopTracking(ctx, droneID)
	default:
		return nil, errs.New(errs.CodeUnknownAction, fmt.Sprintf("no dispatch route for action %q", intent.Action))
	}
}

// dispatchQuery routes the two read-only actions the natural-language
// tool recognizes as commands: asking for status or for a health check.
func dispatchQuery(ctx context.Context, svc droneService, action, droneID string) (any, error) {
	if action == "health_check" {
		return svc.HealthCheck(ctx)
	}
	return svc.DroneStatus(ctx, droneID)
}

func floatPtr(p map[string]any, key string) *float64 {
	v, ok := p[key].(float64)
	if !ok {
		return nil
	}
	return &v
}
