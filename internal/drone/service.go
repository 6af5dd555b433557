// Package drone implements the Drone Service: the short-TTL status
// cache, the precondition gate, and command dispatch/normalization that
// sit between the tool surface and the backend client.
package drone

import (
	"context"
	"log/slog"
	"time"

	"github.com/emergent-company/dronemcp/internal/backend"
	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/guards"
	"github.com/emergent-company/dronemcp/internal/model"
)

// BackendClient is the subset of *backend.Client the service depends on.
// Declaring it here (rather than depending on the concrete type) lets
// tests substitute a fake without touching the network.
type BackendClient interface {
	ListDrones(ctx context.Context) ([]model.DroneStatus, error)
	AllStatus(ctx context.Context) ([]model.DroneStatus, error)
	Status(ctx context.Context, droneID string) (*model.DroneStatus, error)
	Scan(ctx context.Context) ([]model.DroneStatus, error)
	Connect(ctx context.Context, droneID string) (*model.CommandResult, error)
	Disconnect(ctx context.Context, droneID string) (*model.CommandResult, error)
	Takeoff(ctx context.Context, droneID string, targetHeight *float64) (*model.CommandResult, error)
	Land(ctx context.Context, droneID string) (*model.CommandResult, error)
	Move(ctx context.Context, droneID string, direction model.Direction, distance float64) (*model.CommandResult, error)
	Rotate(ctx context.Context, droneID string, direction model.Direction, angle float64) (*model.CommandResult, error)
	Altitude(ctx context.Context, droneID string, targetHeight float64, mode model.AltitudeMode) (*model.CommandResult, error)
	Emergency(ctx context.Context, droneID string) (*model.CommandResult, error)
	TakePhoto(ctx context.Context, droneID, quality, filename string) (*model.CommandResult, error)
	Streaming(ctx context.Context, droneID, action, quality, resolution string) (*model.CommandResult, error)
	Detect(ctx context.Context, droneID, modelID string, threshold *float64) (*model.CommandResult, error)
	Track(ctx context.Context, droneID, action, modelID string, followDistance *float64) (*model.CommandResult, error)
	SystemStatus(ctx context.Context) (*model.SystemStatus, error)
	Health(ctx context.Context) (*model.SystemStatus, error)
}

// Service is the Drone Service (Component E).
type Service struct {
	backend BackendClient
	cache   *statusCache
	runner  *guards.Runner
	logger  *slog.Logger
}

// NewService constructs a Service. ttl <= 0 uses DefaultCacheTTL.
func NewService(backendClient BackendClient, ttl time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		backend: backendClient,
		cache:   newStatusCache(ttl),
		runner:  guards.NewRunner(),
		logger:  logger,
	}
}

// fetchStatusPermitCache returns a drone's status, using the cache if
// fresh. known is false for a drone the backend has never heard of
// (404). fetchFailed is true when the fetch itself errored for any
// other reason, in which case the backend remains the authority and the
// precondition gate must not block on state it could not observe.
func (s *Service) fetchStatusPermitCache(ctx context.Context, droneID string) (status *model.DroneStatus, known bool, fetchFailed bool) {
	if cached, ok := s.cache.getDrone(droneID); ok {
		return cached, true, false
	}
	st, err := s.backend.Status(ctx, droneID)
	if err != nil {
		if netErr, ok := err.(*backend.NetworkError); ok && netErr.Status == 404 {
			return nil, false, false
		}
		s.logger.Warn("status fetch failed, proceeding without precondition data", "drone_id", droneID, "error", err)
		return nil, false, true
	}
	s.cache.setDrone(droneID, *st)
	return st, true, false
}

// gate runs the precondition guards for action against droneID and
// returns the taxonomy error for the first blocking result, or nil if
// the command may proceed.
func (s *Service) gate(ctx context.Context, droneID, action string, force bool) error {
	status, known, fetchFailed := s.fetchStatusPermitCache(ctx, droneID)

	gctx := &guards.GuardContext{
		DroneID:           droneID,
		Action:            action,
		Force:             force,
		StatusKnown:       known,
		StatusFetchFailed: fetchFailed,
		RequiresInFlight:  inFlightActions[action],
		IsDangerous:       dangerousActions[action],
	}
	if status != nil {
		gctx.ConnectionStatus = string(status.ConnectionStatus)
		gctx.FlightStatus = string(status.FlightStatus)
		gctx.BatteryLevel = status.BatteryLevel
	}

	outcome := s.runner.Run(ctx, gctx, preconditionGuards())
	if !outcome.Blocked {
		return nil
	}
	if r := firstBlockingResult(outcome); r != nil {
		return errs.Newf(errs.Code(r.Message), r.Message, map[string]any{"remedy": r.Remedy})
	}
	return errs.New(errs.CodeInternalError, "guard blocked dispatch with no blocking result recorded")
}

func firstBlockingResult(o *guards.Outcome) *guards.Result {
	if hb := o.HardBlocks(); len(hb) > 0 {
		return &hb[0]
	}
	if sb := o.SoftBlocks(); len(sb) > 0 {
		return &sb[0]
	}
	return nil
}

// dispatch gates, calls the backend, measures elapsed time, normalizes
// failures, and invalidates the cache on any attempted dispatch that
// reached the backend.
func (s *Service) dispatch(ctx context.Context, droneID, action string, force bool, call func(context.Context) (*model.CommandResult, error)) (*model.CommandResult, error) {
	if err := s.gate(ctx, droneID, action, force); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := call(ctx)
	elapsed := time.Since(start).Milliseconds()

	s.cache.invalidate(droneID)

	if err != nil {
		retryable := false
		if netErr, ok := err.(*backend.NetworkError); ok {
			retryable = netErr.Retryable()
		}
		code := errs.CodeCommandFailed
		if retryable {
			code = errs.CodeBackendUnavailable
		}
		return nil, errs.Newf(code, err.Error(), map[string]any{"retryable": retryable})
	}

	result.ExecutionMS = elapsed
	return result, nil
}

// --- typed control operations ---

func (s *Service) Connect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "connect", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Connect(ctx, droneID)
	})
}

func (s *Service) Disconnect(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "disconnect", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Disconnect(ctx, droneID)
	})
}

func (s *Service) Takeoff(ctx context.Context, droneID string, height *float64) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "takeoff", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Takeoff(ctx, droneID, height)
	})
}

func (s *Service) Land(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "land", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Land(ctx, droneID)
	})
}

func (s *Service) Move(ctx context.Context, droneID string, direction model.Direction, distance float64) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "move", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Move(ctx, droneID, direction, distance)
	})
}

func (s *Service) Rotate(ctx context.Context, droneID string, direction model.Direction, angle float64) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "rotate", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Rotate(ctx, droneID, direction, angle)
	})
}

func (s *Service) SetAltitude(ctx context.Context, droneID string, target float64, mode model.AltitudeMode) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "altitude", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Altitude(ctx, droneID, target, mode)
	})
}

// EmergencyStop requires confirmed=true (the tool surface's
// confirm_before_execution argument); otherwise the dangerous-command
// guard rejects it before the backend is ever called.
func (s *Service) EmergencyStop(ctx context.Context, droneID string, confirmed bool) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "emergency_stop", confirmed, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Emergency(ctx, droneID)
	})
}

func (s *Service) TakePhoto(ctx context.Context, droneID, quality, filename string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "take_photo", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.TakePhoto(ctx, droneID, quality, filename)
	})
}

func (s *Service) StartStreaming(ctx context.Context, droneID, quality, resolution string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "start_streaming", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Streaming(ctx, droneID, "start", quality, resolution)
	})
}

func (s *Service) StopStreaming(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "stop_streaming", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Streaming(ctx, droneID, "stop", "", "")
	})
}

func (s *Service) Detect(ctx context.Context, droneID, modelID string, threshold *float64) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "detect_objects", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Detect(ctx, droneID, modelID, threshold)
	})
}

func (s *Service) StartTracking(ctx context.Context, droneID, modelID string, followDistance *float64) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "start_tracking", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Track(ctx, droneID, "start", modelID, followDistance)
	})
}

func (s *Service) StopTracking(ctx context.Context, droneID string) (*model.CommandResult, error) {
	return s.dispatch(ctx, droneID, "stop_tracking", false, func(ctx context.Context) (*model.CommandResult, error) {
		return s.backend.Track(ctx, droneID, "stop", "", nil)
	})
}

// --- query operations ---

// ScanDrones triggers fresh discovery and invalidates the entire cache,
// since any previously cached entry may now be stale.
func (s *Service) ScanDrones(ctx context.Context) ([]model.DroneStatus, error) {
	list, err := s.backend.Scan(ctx)
	s.cache.invalidateAll()
	if err != nil {
		return nil, classifyErr(err)
	}
	return list, nil
}

// ListDrones satisfies content.StatusSource.
func (s *Service) ListDrones(ctx context.Context) (any, error) {
	list, err := s.backend.ListDrones(ctx)
	if err != nil {
		return nil, classifyErr(err)
	}
	return list, nil
}

// DroneStatus satisfies content.StatusSource. An empty droneID returns
// every drone's status (the cached "all" entry).
func (s *Service) DroneStatus(ctx context.Context, droneID string) (any, error) {
	if droneID == "" {
		if cached, ok := s.cache.getAll(); ok {
			return cached, nil
		}
		list, err := s.backend.AllStatus(ctx)
		if err != nil {
			return nil, classifyErr(err)
		}
		s.cache.setAll(list)
		return list, nil
	}

	status, known, fetchFailed := s.fetchStatusPermitCache(ctx, droneID)
	if fetchFailed {
		return nil, errs.New(errs.CodeBackendUnavailable, "status fetch failed")
	}
	if !known {
		return nil, errs.New(errs.CodeDroneNotFound, "drone not found")
	}
	return status, nil
}

// SystemStatus satisfies content.StatusSource.
func (s *Service) SystemStatus(ctx context.Context) (any, error) {
	status, err := s.backend.SystemStatus(ctx)
	if err != nil {
		return nil, classifyErr(err)
	}
	return status, nil
}

// HealthCheck returns the backend's health result.
func (s *Service) HealthCheck(ctx context.Context) (*model.SystemStatus, error) {
	status, err := s.backend.Health(ctx)
	if err != nil {
		return nil, classifyErr(err)
	}
	return status, nil
}

func classifyErr(err error) error {
	netErr, ok := err.(*backend.NetworkError)
	if !ok {
		return errs.New(errs.CodeInternalError, err.Error())
	}
	if netErr.Retryable() {
		return errs.New(errs.CodeBackendUnavailable, netErr.Error())
	}
	return errs.New(errs.CodeCommandFailed, netErr.Error())
}
