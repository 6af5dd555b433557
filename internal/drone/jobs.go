package drone

import "context"

// cacheSweepJob is a scheduler.Job (by structural typing) that evicts
// stale status-cache entries on a fixed interval. Registered by
// cmd/dronemcp, not started here, matching the teacher's pattern of
// wiring scheduler.Job instances at the composition root rather than
// inside the package that owns the state being swept.
type cacheSweepJob struct {
	svc *Service
}

// NewCacheSweepJob returns the periodic stale-cache eviction job.
func NewCacheSweepJob(svc *Service) *cacheSweepJob {
	return &cacheSweepJob{svc: svc}
}

func (j *cacheSweepJob) Name() string { return "drone-status-cache-sweep" }

func (j *cacheSweepJob) Run(ctx context.Context) error {
	evicted := j.svc.cache.sweepStale()
	if evicted > 0 {
		j.svc.logger.Debug("swept stale status cache entries", "evicted", evicted)
	}
	return nil
}

// healthPollJob periodically polls the backend's health endpoint and
// logs reachability, independent of any tool call.
type healthPollJob struct {
	svc *Service
}

// NewHealthPollJob returns the periodic backend health poll job.
func NewHealthPollJob(svc *Service) *healthPollJob {
	return &healthPollJob{svc: svc}
}

func (j *healthPollJob) Name() string { return "backend-health-poll" }

func (j *healthPollJob) Run(ctx context.Context) error {
	status, err := j.svc.HealthCheck(ctx)
	if err != nil {
		j.svc.logger.Warn("backend health poll failed", "error", err)
		return nil
	}
	if status == nil {
		j.svc.logger.Debug("backend health poll ok")
		return nil
	}
	j.svc.logger.Debug("backend health poll ok", "status", status.Status)
	return nil
}
