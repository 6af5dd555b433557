package drone

import (
	"context"
	"testing"
	"time"

	"github.com/emergent-company/dronemcp/internal/backend"
	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	statuses    map[string]model.DroneStatus
	statusCalls int
	commandFn   func(action, droneID string) (*model.CommandResult, error)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{statuses: make(map[string]model.DroneStatus)}
}

func (f *fakeBackend) ListDrones(ctx context.Context) ([]model.DroneStatus, error) { return nil, nil }
func (f *fakeBackend) AllStatus(ctx context.Context) ([]model.DroneStatus, error)  { return nil, nil }

func (f *fakeBackend) Status(ctx context.Context, droneID string) (*model.DroneStatus, error) {
	f.statusCalls++
	st, ok := f.statuses[droneID]
	if !ok {
		return nil, &backend.NetworkError{Status: 404, Message: "not found"}
	}
	return &st, nil
}

func (f *fakeBackend) Scan(ctx context.Context) ([]model.DroneStatus, error) { return nil, nil }

func (f *fakeBackend) result(action, droneID string) (*model.CommandResult, error) {
	if f.commandFn != nil {
		return f.commandFn(action, droneID)
	}
	return &model.CommandResult{Success: true, Message: action + " ok"}, nil
}

func (f *fakeBackend) Connect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return f.result("connect", droneID)
}
func (f *fakeBackend) Disconnect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return f.result("disconnect", droneID)
}
func (f *fakeBackend) Takeoff(ctx context.Context, droneID string, h *float64) (*model.CommandResult, error) {
	return f.result("takeoff", droneID)
}
func (f *fakeBackend) Land(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return f.result("land", droneID)
}
func (f *fakeBackend) Move(ctx context.Context, droneID string, d model.Direction, dist float64) (*model.CommandResult, error) {
	return f.result("move", droneID)
}
func (f *fakeBackend) Rotate(ctx context.Context, droneID string, d model.Direction, a float64) (*model.CommandResult, error) {
	return f.result("rotate", droneID)
}
func (f *fakeBackend) Altitude(ctx context.Context, droneID string, t float64, m model.AltitudeMode) (*model.CommandResult, error) {
	return f.result("altitude", droneID)
}
func (f *fakeBackend) Emergency(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return f.result("emergency", droneID)
}
func (f *fakeBackend) TakePhoto(ctx context.Context, droneID, q, fn string) (*model.CommandResult, error) {
	return f.result("take_photo", droneID)
}
func (f *fakeBackend) Streaming(ctx context.Context, droneID, action, q, r string) (*model.CommandResult, error) {
	return f.result("streaming", droneID)
}
func (f *fakeBackend) Detect(ctx context.Context, droneID, modelID string, th *float64) (*model.CommandResult, error) {
	return f.result("detect", droneID)
}
func (f *fakeBackend) Track(ctx context.Context, droneID, action, modelID string, fd *float64) (*model.CommandResult, error) {
	return f.result("track", droneID)
}
func (f *fakeBackend) SystemStatus(ctx context.Context) (*model.SystemStatus, error) { return nil, nil }
func (f *fakeBackend) Health(ctx context.Context) (*model.SystemStatus, error)       { return nil, nil }

func TestConnectRejectsAlreadyConnected(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightLanded}
	svc := NewService(fb, time.Second, nil)

	_, err := svc.Connect(t.Context(), "AA")
	require.Error(t, err)
	assert.Equal(t, errs.CodeDroneAlreadyConnected, errs.CodeOf(err))
}

func TestTakeoffRejectsLowBattery(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightLanded, BatteryLevel: 10}
	svc := NewService(fb, time.Second, nil)

	_, err := svc.Takeoff(t.Context(), "AA", nil)
	require.Error(t, err)
	assert.Equal(t, errs.CodeLowBattery, errs.CodeOf(err))
}

func TestTakeoffAcceptsSixteenPercentBattery(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightLanded, BatteryLevel: 16}
	svc := NewService(fb, time.Second, nil)

	result, err := svc.Takeoff(t.Context(), "AA", nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestMoveRejectsWhenLanded(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightLanded, BatteryLevel: 80}
	svc := NewService(fb, time.Second, nil)

	_, err := svc.Move(t.Context(), "AA", model.DirForward, 100)
	require.Error(t, err)
	assert.Equal(t, errs.CodeDroneNotReady, errs.CodeOf(err))
}

func TestCommandOnUnknownDroneIsRejected(t *testing.T) {
	fb := newFakeBackend()
	svc := NewService(fb, time.Second, nil)

	_, err := svc.Land(t.Context(), "ZZ")
	require.Error(t, err)
	assert.Equal(t, errs.CodeDroneNotFound, errs.CodeOf(err))
}

func TestDisconnectedDroneRejectsNonConnectCommands(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionDisconnected, FlightStatus: model.FlightLanded}
	svc := NewService(fb, time.Second, nil)

	_, err := svc.Takeoff(t.Context(), "AA", nil)
	require.Error(t, err)
	assert.Equal(t, errs.CodeDroneDisconnected, errs.CodeOf(err))
}

func TestEmergencyStopRequiresConfirmation(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightFlying, BatteryLevel: 50}
	svc := NewService(fb, time.Second, nil)

	_, err := svc.EmergencyStop(t.Context(), "AA", false)
	require.Error(t, err)
	assert.Equal(t, errs.CodeDangerousCommandConfirmationNeeded, errs.CodeOf(err))

	result, err := svc.EmergencyStop(t.Context(), "AA", true)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestSuccessfulCommandInvalidatesCache(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightLanded, BatteryLevel: 80}
	svc := NewService(fb, time.Minute, nil)

	_, err := svc.DroneStatus(t.Context(), "AA")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.statusCalls)

	_, err = svc.DroneStatus(t.Context(), "AA")
	require.NoError(t, err)
	assert.Equal(t, 1, fb.statusCalls, "second read within TTL must be served from cache")

	_, err = svc.Takeoff(t.Context(), "AA", nil)
	require.NoError(t, err)

	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightFlying, BatteryLevel: 80}
	_, err = svc.DroneStatus(t.Context(), "AA")
	require.NoError(t, err)
	assert.Equal(t, 2, fb.statusCalls, "cache must be invalidated by the successful takeoff")
}

func TestScanInvalidatesEntireCache(t *testing.T) {
	fb := newFakeBackend()
	fb.statuses["AA"] = model.DroneStatus{DroneID: "AA", ConnectionStatus: model.ConnectionConnected, FlightStatus: model.FlightLanded, BatteryLevel: 80}
	svc := NewService(fb, time.Minute, nil)

	_, _ = svc.DroneStatus(t.Context(), "AA")
	assert.Equal(t, 1, fb.statusCalls)

	_, err := svc.ScanDrones(t.Context())
	require.NoError(t, err)

	_, _ = svc.DroneStatus(t.Context(), "AA")
	assert.Equal(t, 2, fb.statusCalls, "scan must force a fresh fetch afterward")
}
