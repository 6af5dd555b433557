package backend

import (
	"context"
	"fmt"

	"github.com/emergent-company/dronemcp/internal/model"
)

// ListDrones returns every drone known to the backend.
func (c *Client) ListDrones(ctx context.Context) ([]model.DroneStatus, error) {
	var out []model.DroneStatus
	if err := c.do(ctx, "GET", "/api/drones", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllStatus returns the status of every drone in one call.
func (c *Client) AllStatus(ctx context.Context) ([]model.DroneStatus, error) {
	var out []model.DroneStatus
	if err := c.do(ctx, "GET", "/api/drones/status", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Status returns a single drone's status.
func (c *Client) Status(ctx context.Context, droneID string) (*model.DroneStatus, error) {
	var out model.DroneStatus
	if err := c.do(ctx, "GET", fmt.Sprintf("/api/drones/%s/status", droneID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Scan triggers a fresh discovery scan for available drones.
func (c *Client) Scan(ctx context.Context) ([]model.DroneStatus, error) {
	var out []model.DroneStatus
	if err := c.do(ctx, "POST", "/api/drones/scan", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Connect opens a connection to droneID.
func (c *Client) Connect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/connect", droneID), nil)
}

// Disconnect closes the connection to droneID.
func (c *Client) Disconnect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/disconnect", droneID), nil)
}

// Takeoff commands droneID to take off, optionally to targetHeight cm.
func (c *Client) Takeoff(ctx context.Context, droneID string, targetHeight *float64) (*model.CommandResult, error) {
	body := map[string]any{}
	if targetHeight != nil {
		body["target_height"] = *targetHeight
	}
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/takeoff", droneID), body)
}

// Land commands droneID to land.
func (c *Client) Land(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/land", droneID), nil)
}

// Move commands droneID to move distance centimeters in direction.
func (c *Client) Move(ctx context.Context, droneID string, direction model.Direction, distance float64) (*model.CommandResult, error) {
	body := map[string]any{"direction": direction, "distance": distance}
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/move", droneID), body)
}

// Rotate commands droneID to rotate angle degrees in direction.
func (c *Client) Rotate(ctx context.Context, droneID string, direction model.Direction, angle float64) (*model.CommandResult, error) {
	body := map[string]any{"direction": direction, "angle": angle}
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/rotate", droneID), body)
}

// Altitude sets droneID's altitude to targetHeight centimeters under mode.
func (c *Client) Altitude(ctx context.Context, droneID string, targetHeight float64, mode model.AltitudeMode) (*model.CommandResult, error) {
	body := map[string]any{"target_height": targetHeight, "mode": mode}
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/altitude", droneID), body)
}

// Emergency issues an immediate stop to droneID.
func (c *Client) Emergency(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/emergency", droneID), nil)
}

// TakePhoto captures a still image. quality and filename are optional.
func (c *Client) TakePhoto(ctx context.Context, droneID string, quality, filename string) (*model.CommandResult, error) {
	body := map[string]any{}
	if quality != "" {
		body["quality"] = quality
	}
	if filename != "" {
		body["filename"] = filename
	}
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/camera/photo", droneID), body)
}

// Streaming starts or stops a video stream (action is "start" or "stop").
func (c *Client) Streaming(ctx context.Context, droneID, action, quality, resolution string) (*model.CommandResult, error) {
	body := map[string]any{"action": action}
	if quality != "" {
		body["quality"] = quality
	}
	if resolution != "" {
		body["resolution"] = resolution
	}
	return c.postCommand(ctx, fmt.Sprintf("/api/drones/%s/camera/streaming", droneID), body)
}

// Detect runs object detection on droneID's live feed.
func (c *Client) Detect(ctx context.Context, droneID, modelID string, threshold *float64) (*model.CommandResult, error) {
	body := map[string]any{"drone_id": droneID, "model_id": modelID}
	if threshold != nil {
		body["confidence_threshold"] = *threshold
	}
	return c.postCommand(ctx, "/api/vision/detection", body)
}

// Track starts or stops object tracking (action is "start" or "stop").
func (c *Client) Track(ctx context.Context, droneID, action, modelID string, followDistance *float64) (*model.CommandResult, error) {
	body := map[string]any{"action": action, "drone_id": droneID, "model_id": modelID}
	if followDistance != nil {
		body["follow_distance"] = *followDistance
	}
	return c.postCommand(ctx, "/api/vision/tracking", body)
}

// SystemStatus returns the backend's overall status.
func (c *Client) SystemStatus(ctx context.Context) (*model.SystemStatus, error) {
	var out model.SystemStatus
	if err := c.do(ctx, "GET", "/api/system/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health returns the backend's health check result.
func (c *Client) Health(ctx context.Context) (*model.SystemStatus, error) {
	var out model.SystemStatus
	if err := c.do(ctx, "GET", "/api/system/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// postCommand issues a POST and decodes the response into a
// CommandResult. On failure the *NetworkError from do is returned
// unchanged; callers read retryability from NetworkError.Retryable.
func (c *Client) postCommand(ctx context.Context, path string, body any) (*model.CommandResult, error) {
	var out model.CommandResult
	if err := c.do(ctx, "POST", path, body, &out); err != nil {
		if netErr, ok := err.(*NetworkError); ok {
			return nil, netErr
		}
		return nil, err
	}
	return &out, nil
}
