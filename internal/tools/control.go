package tools

import (
	"context"
	"encoding/json"

	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/emergent-company/dronemcp/internal/model"
)

// droneService is the subset of *drone.Service the control/query tools
// need. Declared here so tools can be unit tested against a fake.
type droneService interface {
	Connect(ctx context.Context, droneID string) (*model.CommandResult, error)
	Disconnect(ctx context.Context, droneID string) (*model.CommandResult, error)
	Takeoff(ctx context.Context, droneID string, height *float64) (*model.CommandResult, error)
	Land(ctx context.Context, droneID string) (*model.CommandResult, error)
	Move(ctx context.Context, droneID string, direction model.Direction, distance float64) (*model.CommandResult, error)
	Rotate(ctx context.Context, droneID string, direction model.Direction, angle float64) (*model.CommandResult, error)
	SetAltitude(ctx context.Context, droneID string, target float64, mode model.AltitudeMode) (*model.CommandResult, error)
	EmergencyStop(ctx context.Context, droneID string, confirmed bool) (*model.CommandResult, error)
	TakePhoto(ctx context.Context, droneID, quality, filename string) (*model.CommandResult, error)
	StartStreaming(ctx context.Context, droneID, quality, resolution string) (*model.CommandResult, error)
	StopStreaming(ctx context.Context, droneID string) (*model.CommandResult, error)
	Detect(ctx context.Context, droneID, modelID string, threshold *float64) (*model.CommandResult, error)
	StartTracking(ctx context.Context, droneID, modelID string, followDistance *float64) (*model.CommandResult, error)
	StopTracking(ctx context.Context, droneID string) (*model.CommandResult, error)
	ScanDrones(ctx context.Context) ([]model.DroneStatus, error)
	ListDrones(ctx context.Context) (any, error)
	DroneStatus(ctx context.Context, droneID string) (any, error)
	SystemStatus(ctx context.Context) (any, error)
	HealthCheck(ctx context.Context) (*model.SystemStatus, error)
}

// RegisterControlTools registers every typed control operation from
// SPEC_FULL.md §4.6 against reg, backed by svc.
func RegisterControlTools(reg *mcp.Registry, svc droneService) {
	reg.Register(newTool("connect_drone", "Open a connection to a drone", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Connect(ctx, args.DroneID)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("disconnect_drone", "Close the connection to a drone", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Disconnect(ctx, args.DroneID)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("takeoff", "Command a drone to take off", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"},"height":{"type":"number"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string   `json:"drone_id"`
			Height  *float64 `json:"height"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Takeoff(ctx, args.DroneID, args.Height)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("land", "Command a drone to land", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Land(ctx, args.DroneID)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("move", "Move a drone a distance in a direction", `{
		"type":"object","required":["drone_id","direction","distance"],
		"properties":{
			"drone_id":{"type":"string"},
			"direction":{"type":"string","enum":["up","down","left","right","forward","back"]},
			"distance":{"type":"number","exclusiveMinimum":0,"maximum":1000}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID   string  `json:"drone_id"`
			Direction string  `json:"direction"`
			Distance  float64 `json:"distance"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Move(ctx, args.DroneID, model.Direction(args.Direction), args.Distance)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("rotate", "Rotate a drone by an angle in a direction", `{
		"type":"object","required":["drone_id","direction","angle"],
		"properties":{
			"drone_id":{"type":"string"},
			"direction":{"type":"string","enum":["clockwise","counterclockwise"]},
			"angle":{"type":"number","minimum":0,"maximum":360}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID   string  `json:"drone_id"`
			Direction string  `json:"direction"`
			Angle     float64 `json:"angle"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Rotate(ctx, args.DroneID, model.Direction(args.Direction), args.Angle)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("set_altitude", "Set a drone's target altitude", `{
		"type":"object","required":["drone_id","target","mode"],
		"properties":{
			"drone_id":{"type":"string"},
			"target":{"type":"number","minimum":0,"maximum":1000},
			"mode":{"type":"string","enum":["absolute","relative"]}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string  `json:"drone_id"`
			Target  float64 `json:"target"`
			Mode    string  `json:"mode"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.SetAltitude(ctx, args.DroneID, args.Target, model.AltitudeMode(args.Mode))
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("emergency_stop", "Immediately stop a drone; requires confirm=true", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"},"confirm":{"type":"boolean"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
			Confirm bool   `json:"confirm"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.EmergencyStop(ctx, args.DroneID, args.Confirm)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("take_photo", "Capture a still photo from a drone's camera", `{
		"type":"object","required":["drone_id"],
		"properties":{
			"drone_id":{"type":"string"},
			"quality":{"type":"string","enum":["lowest","low","medium","high","highest"]},
			"filename":{"type":"string"}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID  string `json:"drone_id"`
			Quality  string `json:"quality"`
			Filename string `json:"filename"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.TakePhoto(ctx, args.DroneID, args.Quality, args.Filename)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("start_streaming", "Start a drone's video stream", `{
		"type":"object","required":["drone_id"],
		"properties":{
			"drone_id":{"type":"string"},
			"quality":{"type":"string","enum":["lowest","low","medium","high","highest"]},
			"resolution":{"type":"string"}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID    string `json:"drone_id"`
			Quality    string `json:"quality"`
			Resolution string `json:"resolution"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.StartStreaming(ctx, args.DroneID, args.Quality, args.Resolution)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("stop_streaming", "Stop a drone's video stream", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.StopStreaming(ctx, args.DroneID)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("detect", "Run object detection against a drone's live feed", `{
		"type":"object","required":["drone_id","model_id"],
		"properties":{
			"drone_id":{"type":"string"},
			"model_id":{"type":"string"},
			"threshold":{"type":"number","minimum":0,"maximum":1}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID   string   `json:"drone_id"`
			ModelID   string   `json:"model_id"`
			Threshold *float64 `json:"threshold"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.Detect(ctx, args.DroneID, args.ModelID, args.Threshold)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("start_tracking", "Start tracking a detected object", `{
		"type":"object","required":["drone_id","model_id"],
		"properties":{
			"drone_id":{"type":"string"},
			"model_id":{"type":"string"},
			"follow_distance":{"type":"number","exclusiveMinimum":0,"maximum":1000}
		}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID        string   `json:"drone_id"`
			ModelID        string   `json:"model_id"`
			FollowDistance *float64 `json:"follow_distance"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.StartTracking(ctx, args.DroneID, args.ModelID, args.FollowDistance)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))

	reg.Register(newTool("stop_tracking", "Stop tracking", `{
		"type":"object","required":["drone_id"],
		"properties":{"drone_id":{"type":"string"}}
	}`, func(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
		var args struct {
			DroneID string `json:"drone_id"`
		}
		json.Unmarshal(params, &args)
		result, err := svc.StopTracking(ctx, args.DroneID)
		if err != nil {
			return errResult(err), nil
		}
		return mcp.JSONResult(result)
	}))
}
