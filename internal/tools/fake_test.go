package tools

import (
	"context"
	"testing"

	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/emergent-company/dronemcp/internal/nlp"
	"github.com/emergent-company/dronemcp/internal/patterns"
)

// newTestEngine builds a real NLP Engine against the built-in pattern
// library, shared by every test in this package that needs to resolve
// free text into an intent.
func newTestEngine(t *testing.T) *nlp.Engine {
	t.Helper()
	lib := patterns.LoadDefault()
	tok := nlp.NewDefaultTokenizer()
	return nlp.NewEngine(lib, tok, nil)
}

// fakeService is a minimal droneService double for exercising tool
// registration and dispatch without the real precondition gate.
type fakeService struct {
	calls  []string
	drones []model.DroneStatus
	status map[string]*model.DroneStatus
	system *model.SystemStatus
	health *model.SystemStatus
	err    error
	result *model.CommandResult
}

func newFakeService() *fakeService {
	return &fakeService{
		status: make(map[string]*model.DroneStatus),
		result: &model.CommandResult{Success: true, Message: "ok"},
	}
}

func (f *fakeService) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeService) res() (*model.CommandResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeService) Connect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	f.record("connect:" + droneID)
	return f.res()
}
func (f *fakeService) Disconnect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	f.record("disconnect:" + droneID)
	return f.res()
}
func (f *fakeService) Takeoff(ctx context.Context, droneID string, height *float64) (*model.CommandResult, error) {
	f.record("takeoff:" + droneID)
	return f.res()
}
func (f *fakeService) Land(ctx context.Context, droneID string) (*model.CommandResult, error) {
	f.record("land:" + droneID)
	return f.res()
}
func (f *fakeService) Move(ctx context.Context, droneID string, direction model.Direction, distance float64) (*model.CommandResult, error) {
	f.record("move:" + droneID)
	return f.res()
}
func (f *fakeService) Rotate(ctx context.Context, droneID string, direction model.Direction, angle float64) (*model.CommandResult, error) {
	f.record("rotate:" + droneID)
	return f.res()
}
func (f *fakeService) SetAltitude(ctx context.Context, droneID string, target float64, mode model.AltitudeMode) (*model.CommandResult, error) {
	f.record("altitude:" + droneID)
	return f.res()
}
func (f *fakeService) EmergencyStop(ctx context.Context, droneID string, confirmed bool) (*model.CommandResult, error) {
	f.record("emergency_stop:" + droneID)
	if !confirmed {
		return nil, errs.New(errs.CodeDangerousCommandConfirmationNeeded, "confirm required")
	}
	return f.res()
}
func (f *fakeService) TakePhoto(ctx context.Context, droneID, quality, filename string) (*model.CommandResult, error) {
	f.record("take_photo:" + droneID)
	return f.res()
}
func (f *fakeService) StartStreaming(ctx context.Context, droneID, quality, resolution string) (*model.CommandResult, error) {
	f.record("start_streaming:" + droneID)
	return f.res()
}
func (f *fakeService) StopStreaming(ctx context.Context, droneID string) (*model.CommandResult, error) {
	f.record("stop_streaming:" + droneID)
	return f.res()
}
func (f *fakeService) Detect(ctx context.Context, droneID, modelID string, threshold *float64) (*model.CommandResult, error) {
	f.record("detect:" + droneID)
	return f.res()
}
func (f *fakeService) StartTracking(ctx context.Context, droneID, modelID string, followDistance *float64) (*model.CommandResult, error) {
	f.record("start_tracking:" + droneID)
	return f.res()
}
func (f *fakeService) StopTracking(ctx context.Context, droneID string) (*model.CommandResult, error) {
	f.record("stop_tracking:" + droneID)
	return f.res()
}
func (f *fakeService) ScanDrones(ctx context.Context) ([]model.DroneStatus, error) {
	f.record("scan_drones")
	if f.err != nil {
		return nil, f.err
	}
	return f.drones, nil
}
func (f *fakeService) ListDrones(ctx context.Context) (any, error) {
	f.record("get_drones")
	if f.err != nil {
		return nil, f.err
	}
	return f.drones, nil
}
func (f *fakeService) DroneStatus(ctx context.Context, droneID string) (any, error) {
	f.record("get_drone_status:" + droneID)
	if f.err != nil {
		return nil, f.err
	}
	st, ok := f.status[droneID]
	if !ok {
		return nil, errs.New(errs.CodeDroneNotFound, "unknown drone: "+droneID)
	}
	return st, nil
}
func (f *fakeService) SystemStatus(ctx context.Context) (any, error) {
	f.record("get_system_status")
	if f.err != nil {
		return nil, f.err
	}
	return f.system, nil
}
func (f *fakeService) HealthCheck(ctx context.Context) (*model.SystemStatus, error) {
	f.record("health_check")
	if f.err != nil {
		return nil, f.err
	}
	return f.health, nil
}
