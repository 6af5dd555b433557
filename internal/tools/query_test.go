package tools

import (
	"encoding/json"
	"testing"

	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/mcp"
	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryToolsAreAllRegistered(t *testing.T) {
	reg := mcp.NewRegistry()
	RegisterQueryTools(reg, newFakeService())

	for _, name := range []string{"get_drones", "get_drone_status", "get_system_status", "health_check", "scan_drones"} {
		assert.NotNil(t, reg.Get(name))
	}
}

func TestGetDroneStatusReturnsKnownDrone(t *testing.T) {
	reg := mcp.NewRegistry()
	svc := newFakeService()
	svc.status["AA"] = &model.DroneStatus{DroneID: "AA", BatteryLevel: 80}
	RegisterQueryTools(reg, svc)

	result := callTool(t, reg, "get_drone_status", map[string]any{"drone_id": "AA"})
	require.False(t, result.IsError)

	var decoded model.DroneStatus
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.Equal(t, "AA", decoded.DroneID)
	assert.Equal(t, 80, decoded.BatteryLevel)
}

func TestGetDroneStatusSurfacesNotFound(t *testing.T) {
	reg := mcp.NewRegistry()
	svc := newFakeService()
	RegisterQueryTools(reg, svc)

	result := callTool(t, reg, "get_drone_status", map[string]any{"drone_id": "ZZ"})
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, string(errs.CodeDroneNotFound))
}

func TestScanDronesInvokesService(t *testing.T) {
	reg := mcp.NewRegistry()
	svc := newFakeService()
	svc.drones = []model.DroneStatus{{DroneID: "AA"}, {DroneID: "BB"}}
	RegisterQueryTools(reg, svc)

	result := callTool(t, reg, "scan_drones", map[string]any{})
	require.False(t, result.IsError)
	assert.Contains(t, svc.calls, "scan_drones")

	var decoded []model.DroneStatus
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &decoded))
	assert.Len(t, decoded, 2)
}

func TestHealthCheckInvokesService(t *testing.T) {
	reg := mcp.NewRegistry()
	svc := newFakeService()
	svc.health = &model.SystemStatus{Status: "ok"}
	RegisterQueryTools(reg, svc)

	result := callTool(t, reg, "health_check", map[string]any{})
	require.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "ok")
}
