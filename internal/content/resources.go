package content

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/emergent-company/dronemcp/internal/mcp"
)

// StatusSource is the subset of the Drone Service the resources need. It is
// satisfied by *drone.Service; the interface lives here (not in package
// drone) so content has no import-cycle back to the service layer.
type StatusSource interface {
	ListDrones(ctx context.Context) (any, error)
	DroneStatus(ctx context.Context, droneID string) (any, error)
	SystemStatus(ctx context.Context) (any, error)
}

// LogSource supplies the recent log tail for system://logs. It is satisfied
// by a ring buffer slog.Handler installed at startup (see cmd/dronemcp).
type LogSource interface {
	RecentLogs(n int) []string
}

func envelope(payload any) ([]byte, error) {
	return json.MarshalIndent(struct {
		Timestamp time.Time `json:"timestamp"`
		Data      any       `json:"data"`
	}{
		Timestamp: time.Now(),
		Data:      payload,
	}, "", "  ")
}

// --- drone://available ---

// AvailableDronesResource lists every drone the backend currently knows
// about, resolved live against the Drone Service's cache.
type AvailableDronesResource struct {
	Status StatusSource
}

func (r *AvailableDronesResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "drone://available",
		Name:        "Available Drones",
		Description: "Live list of drones known to the fleet, with connection and flight status",
		MimeType:    "application/json",
	}
}

func (r *AvailableDronesResource) Read() (*mcp.ResourcesReadResult, error) {
	drones, err := r.Status.ListDrones(context.Background())
	if err != nil {
		return nil, err
	}
	body, err := envelope(drones)
	if err != nil {
		return nil, err
	}
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{URI: "drone://available", MimeType: "application/json", Text: string(body)},
		},
	}, nil
}

// --- drone://status/{id} ---

// DroneStatusResource resolves drone://status/<id> to that drone's live
// (cache-permitted) status.
type DroneStatusResource struct {
	Status StatusSource
}

func (r *DroneStatusResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "drone://status/{id}",
		Name:        "Drone Status",
		Description: "Live status for a single drone, identified by ID",
		MimeType:    "application/json",
	}
}

func (r *DroneStatusResource) Read() (*mcp.ResourcesReadResult, error) {
	return nil, errTemplateOnly
}

func (r *DroneStatusResource) Match(uri string) bool {
	return strings.HasPrefix(uri, "drone://status/") && len(uri) > len("drone://status/")
}

func (r *DroneStatusResource) ReadURI(uri string) (*mcp.ResourcesReadResult, error) {
	droneID := strings.TrimPrefix(uri, "drone://status/")
	status, err := r.Status.DroneStatus(context.Background(), droneID)
	if err != nil {
		return nil, err
	}
	body, err := envelope(status)
	if err != nil {
		return nil, err
	}
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{URI: uri, MimeType: "application/json", Text: string(body)},
		},
	}, nil
}

// --- system://status ---

// SystemStatusResource reports overall fleet/backend health.
type SystemStatusResource struct {
	Status StatusSource
}

func (r *SystemStatusResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "system://status",
		Name:        "System Status",
		Description: "Overall backend and fleet health",
		MimeType:    "application/json",
	}
}

func (r *SystemStatusResource) Read() (*mcp.ResourcesReadResult, error) {
	status, err := r.Status.SystemStatus(context.Background())
	if err != nil {
		return nil, err
	}
	body, err := envelope(status)
	if err != nil {
		return nil, err
	}
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{URI: "system://status", MimeType: "application/json", Text: string(body)},
		},
	}, nil
}

// --- system://logs ---

// SystemLogsResource exposes the tail of the server's own structured log
// buffer, for agents debugging a failed dispatch.
type SystemLogsResource struct {
	Logs LogSource
}

func (r *SystemLogsResource) Definition() mcp.ResourceDefinition {
	return mcp.ResourceDefinition{
		URI:         "system://logs",
		Name:        "System Logs",
		Description: "Recent server log lines (most recent last)",
		MimeType:    "application/json",
	}
}

func (r *SystemLogsResource) Read() (*mcp.ResourcesReadResult, error) {
	lines := r.Logs.RecentLogs(200)
	body, err := envelope(lines)
	if err != nil {
		return nil, err
	}
	return &mcp.ResourcesReadResult{
		Contents: []mcp.ResourceContent{
			{URI: "system://logs", MimeType: "application/json", Text: string(body)},
		},
	}, nil
}

type templateOnlyError string

func (e templateOnlyError) Error() string { return string(e) }

const errTemplateOnly = templateOnlyError("this resource is a template; call ReadURI with a concrete URI")
