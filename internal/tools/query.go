package tools

import (
	"context"
	"encoding/json"

	"github.com/emergent-company/dronemcp/internal/mcp"
)

// RegisterQueryTools registers the read-only fleet query tools from
// SPEC_FULL.md §4.6 against reg, backed by svc.
func RegisterQueryTools(reg *mcp.Registry, svc droneService) {
	reg.Register(newTool("get_drones", "List every known drone and its status", `{
		"type":"object","properties":{}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		list, err := svc.ListDrones(ctx)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(list)
	}))

	reg.Register(newTool("get_drone_status", "Get a single drone's current status", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
		}
		json.Unmarshal(params, &args)
		status, err := svc.DroneStatus(ctx, args.DroneID)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(status)
	}))

	reg.Register(newTool("get_system_status", "Get aggregate fleet and backend status", `{
		"type":"object","properties":{}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		status, err := svc.SystemStatus(ctx)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(status)
	}))

	reg.Register(newTool("health_check", "Check backend reachability and health", `{
		"type":"object","properties":{}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		status, err := svc.HealthCheck(ctx)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(status)
	}))

	reg.Register(newTool("scan_drones", "Trigger fresh drone discovery, invalidating the status cache", `{
		"type":"object","properties":{}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		list, err := svc.ScanDrones(ctx)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(list)
	}))
}
