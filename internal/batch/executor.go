package batch

import (
	"context"
	"sync"
	"time"

	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/model"
	"golang.org/x/sync/errgroup"
)

// ItemStatus is the terminal disposition of one batch item.
type ItemStatus string

const (
	StatusExecuted           ItemStatus = "executed"
	StatusCancelled          ItemStatus = "cancelled"
	StatusSkippedDependency  ItemStatus = "skipped_dependency"
)

// ItemResult is one command's outcome within a batch run.
type ItemResult struct {
	ID       string                `json:"id"`
	DroneID  string                `json:"drone_id"`
	Action   string                `json:"action"`
	Status   ItemStatus            `json:"status"`
	Result   *model.CommandResult  `json:"result,omitempty"`
	Error    string                `json:"error,omitempty"`
}

// Summary aggregates a batch run's outcome.
type Summary struct {
	Total     int   `json:"total"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
	Cancelled int   `json:"cancelled"`
	TotalMS   int64 `json:"total_ms"`
}

// Report is what RunBatch returns: per-item results in input order, plus
// the aggregated summary.
type Report struct {
	Results []ItemResult `json:"results"`
	Summary Summary      `json:"summary"`
}

// Dispatcher executes a single planned command. Implementations are
// expected to be the drone service's typed control methods, selected by
// spec.Action.
type Dispatcher func(ctx context.Context, spec CommandSpec) (*model.CommandResult, error)

// Run walks plan, dispatching each node through dispatch once its
// dependencies have completed successfully. When stopOnError is true, a
// failure marks every not-yet-started node CANCELLED. When it is false,
// nodes that depend (directly or through a skipped node) on a failed node
// are marked SKIPPED_DEPENDENCY and independent nodes still run. Results
// are returned in the same order as plan.Nodes (== input order).
func Run(ctx context.Context, plan *BatchPlan, stopOnError bool, dispatch Dispatcher) *Report {
	start := time.Now()

	n := len(plan.Nodes)
	results := make([]ItemResult, n)
	done := make(map[string]chan struct{}, n)
	failed := make(map[string]bool, n)

	var mu sync.Mutex
	indexByID := make(map[string]int, n)
	for i, node := range plan.Nodes {
		indexByID[node.ID] = i
		done[node.ID] = make(chan struct{})
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, egCtx := errgroup.WithContext(runCtx)

	for i := range plan.Nodes {
		node := plan.Nodes[i]
		idx := i
		eg.Go(func() error {
			defer close(done[node.ID])

			for _, depID := range node.DependsOn {
				select {
				case <-done[depID]:
				case <-egCtx.Done():
					recordResult(&mu, results, idx, node, StatusCancelled, nil, "")
					return nil
				}
			}

			mu.Lock()
			depFailed := false
			for _, depID := range node.DependsOn {
				if failed[depID] {
					depFailed = true
					break
				}
			}
			mu.Unlock()

			if depFailed {
				status := StatusSkippedDependency
				if stopOnError {
					status = StatusCancelled
				}
				recordResult(&mu, results, idx, node, status, nil, "a dependency in this batch failed")
				mu.Lock()
				failed[node.ID] = true
				mu.Unlock()
				return nil
			}

			select {
			case <-egCtx.Done():
				recordResult(&mu, results, idx, node, StatusCancelled, nil, "")
				return nil
			default:
			}

			result, err := dispatch(egCtx, node.Spec)
			if err != nil {
				recordResult(&mu, results, idx, node, StatusExecuted, nil, err.Error())
				mu.Lock()
				failed[node.ID] = true
				mu.Unlock()
				if stopOnError {
					cancel()
				}
				return nil
			}

			recordResult(&mu, results, idx, node, StatusExecuted, result, "")
			return nil
		})
	}

	eg.Wait()

	return &Report{Results: results, Summary: summarize(results, time.Since(start).Milliseconds())}
}

func recordResult(mu *sync.Mutex, results []ItemResult, idx int, node PlanNode, status ItemStatus, result *model.CommandResult, errMsg string) {
	mu.Lock()
	defer mu.Unlock()
	results[idx] = ItemResult{
		ID:      node.ID,
		DroneID: node.Spec.DroneID,
		Action:  node.Spec.Action,
		Status:  status,
		Result:  result,
		Error:   errMsg,
	}
}

func summarize(results []ItemResult, totalMS int64) Summary {
	s := Summary{Total: len(results), TotalMS: totalMS}
	for _, r := range results {
		switch {
		case r.Status == StatusExecuted && r.Error == "":
			s.Succeeded++
		case r.Status == StatusExecuted && r.Error != "":
			s.Failed++
		case r.Status == StatusCancelled:
			s.Cancelled++
		case r.Status == StatusSkippedDependency:
			s.Cancelled++
		}
	}
	return s
}

// codeFor maps an ItemResult's terminal status to a taxonomy code, used
// when the tool surface renders a batch report alongside an overall
// error for entirely-failed batches.
func codeFor(status ItemStatus) errs.Code {
	switch status {
	case StatusCancelled:
		return errs.CodeCancelled
	case StatusSkippedDependency:
		return errs.CodeSkippedDependency
	default:
		return ""
	}
}
