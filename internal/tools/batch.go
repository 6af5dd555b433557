package tools

import (
	"context"
	"encoding/json"

	"github.com/emergent-company/dronemcp/internal/batch"
	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/emergent-company/dronemcp/internal/nlp"
)

type batchArgs struct {
	Commands      []batch.CommandSpec `json:"commands"`
	ExecutionMode string              `json:"execution_mode"`
	StopOnError   bool                `json:"stop_on_error"`
}

// RegisterBatchTool registers execute_batch: it resolves any
// natural-language commands through engine, plans a dependency graph
// over the resulting typed commands, and schedules them per
// execution_mode.
func RegisterBatchTool(reg *mcp.Registry, svc droneService, engine *nlp.Engine) {
	reg.Register(newTool("execute_batch", "Plan and execute a batch of drone commands", `{
		"type":"object","required":["commands"],
		"properties":{
			"commands":{
				"type":"array","minItems":1,
				"items":{
					"type":"object",
					"oneOf":[
						{"required":["command"]},
						{"required":["drone_id","action"]}
					],
					"properties":{
						"drone_id":{"type":"string"},
						"action":{"type":"string"},
						"parameters":{"type":"object"},
						"command":{"type":"string","minLength":1}
					}
				}
			},
			"execution_mode":{"type":"string","enum":["sequential","parallel","optimized"]},
			"stop_on_error":{"type":"boolean"}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args batchArgs
		json.Unmarshal(params, &args)

		mode := batch.ExecutionMode(args.ExecutionMode)
		if mode == "" {
			mode = batch.ModeSequential
		}

		resolved, err := batch.ResolveNL(args.Commands, engine)
		if err != nil {
			return errResult(err), nil
		}

		plan, err := batch.Plan(resolved, mode)
		if err != nil {
			return errResult(err), nil
		}

		report := batch.Run(ctx, plan, args.StopOnError, func(ctx context.Context, spec batch.CommandSpec) (*model.CommandResult, error) {
			return dispatchBatchSpec(ctx, svc, spec)
		})

		return mcp.JSONResult(report)
	}))
}

// dispatchBatchSpec routes one planned command to the matching
// droneService method, the same dispatch table the natural-language tool
// uses but keyed on an explicit action/parameters pair instead of a
// parsed intent.
func dispatchBatchSpec(ctx context.Context, svc droneService, spec batch.CommandSpec) (*model.CommandResult, error) {
	p := spec.Parameters
	switch spec.Action {
	case "connect":
		return svc.Connect(ctx, spec.DroneID)
	case "disconnect":
		return svc.Disconnect(ctx, spec.DroneID)
	case "takeoff":
		return svc.Takeoff(ctx, spec.DroneID, floatPtr(p, "height"))
	case "land":
		return svc.Land(ctx, spec.DroneID)
	case "emergency_stop":
		confirm, _ := p["confirm"].(bool)
		return svc.EmergencyStop(ctx, spec.DroneID, confirm)
	case "move":
		dir, _ := p["direction"].(string)
		dist, _ := p["distance"].(float64)
		return svc.Move(ctx, spec.DroneID, model.Direction(dir), dist)
	case "rotate":
		dir, _ := p["direction"].(string)
		angle, _ := p["angle"].(float64)
		return svc.Rotate(ctx, spec.DroneID, model.Direction(dir), angle)
	case "altitude":
		target, _ := p["target"].(float64)
		mode, _ := p["mode"].(string)
		if mode == "" {
			mode = string(model.AltitudeAbsolute)
		}
		return svc.SetAltitude(ctx, spec.DroneID, target, model.AltitudeMode(mode))
	case "take_photo":
		quality, _ := p["quality"].(string)
		filename, _ := p["filename"].(string)
		return svc.TakePhoto(ctx, spec.DroneID, quality, filename)
	case "start_streaming":
		quality, _ := p["quality"].(string)
		resolution, _ := p["resolution"].(string)
		return svc.StartStreaming(ctx, spec.DroneID, quality, resolution)
	case "stop_streaming":
		return svc.StopStreaming(ctx, spec.DroneID)
	case "detect_objects":
		target, _ := p["target_class"].(string)
		return svc.Detect(ctx, spec.DroneID, target, floatPtr(p, "confidence_threshold"))
	case "start_tracking":
		target, _ := p["target_class"].(string)
		return svc.StartTracking(ctx, spec.DroneID, target, floatPtr(p, "follow_distance"))
	case "stop_tracking":
		return svc.StopTracking(ctx, spec.DroneID)
	default:
		return nil, errs.New(errs.CodeUnknownAction, "unsupported batch action: "+spec.Action)
	}
}
