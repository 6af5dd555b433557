package batch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/emergent-company/dronemcp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecutesLinearChainInOrder(t *testing.T) {
	cmds := []CommandSpec{
		{DroneID: "AA", Action: "connect"},
		{DroneID: "AA", Action: "takeoff"},
		{DroneID: "AA", Action: "take_photo"},
		{DroneID: "AA", Action: "land"},
	}
	plan, err := Plan(cmds, ModeOptimized)
	require.NoError(t, err)

	var mu sync.Mutex
	var order []string
	dispatch := func(ctx context.Context, spec CommandSpec) (*model.CommandResult, error) {
		mu.Lock()
		order = append(order, spec.Action)
		mu.Unlock()
		return &model.CommandResult{Success: true}, nil
	}

	report := Run(context.Background(), plan, true, dispatch)
	require.Len(t, report.Results, 4)
	assert.Equal(t, []string{"connect", "takeoff", "take_photo", "land"}, order)
	assert.Equal(t, Summary{Total: 4, Succeeded: 4}, report.Summary)
}

func TestRunIndependentDronesExecuteConcurrently(t *testing.T) {
	cmds := []CommandSpec{
		{DroneID: "AA", Action: "connect"},
		{DroneID: "BB", Action: "connect"},
	}
	plan, err := Plan(cmds, ModeParallel)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	dispatch := func(ctx context.Context, spec CommandSpec) (*model.CommandResult, error) {
		wg.Done()
		wg.Wait() // both must be in-flight simultaneously, or this deadlocks the test
		return &model.CommandResult{Success: true}, nil
	}

	done := make(chan *Report, 1)
	go func() { done <- Run(context.Background(), plan, false, dispatch) }()

	select {
	case report := <-done:
		assert.Equal(t, 2, report.Summary.Succeeded)
	case <-time.After(2 * time.Second):
		t.Fatal("independent commands did not run concurrently")
	}
}

func TestRunStopOnErrorCancelsDependents(t *testing.T) {
	cmds := []CommandSpec{
		{DroneID: "AA", Action: "connect"},
		{DroneID: "AA", Action: "takeoff"},
		{DroneID: "AA", Action: "take_photo"},
	}
	plan, err := Plan(cmds, ModeOptimized)
	require.NoError(t, err)

	dispatch := func(ctx context.Context, spec CommandSpec) (*model.CommandResult, error) {
		if spec.Action == "takeoff" {
			return nil, errors.New("backend rejected takeoff")
		}
		return &model.CommandResult{Success: true}, nil
	}

	report := Run(context.Background(), plan, true, dispatch)
	require.Len(t, report.Results, 3)
	assert.Equal(t, StatusExecuted, report.Results[0].Status)
	assert.Equal(t, StatusExecuted, report.Results[1].Status)
	assert.NotEmpty(t, report.Results[1].Error)
	assert.Equal(t, StatusCancelled, report.Results[2].Status)
	assert.Equal(t, 1, report.Summary.Succeeded)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.Cancelled)
}

func TestRunWithoutStopOnErrorContinuesPastFailure(t *testing.T) {
	cmds := []CommandSpec{
		{DroneID: "AA", Action: "connect"},
		{DroneID: "BB", Action: "connect"},
	}
	plan, err := Plan(cmds, ModeParallel)
	require.NoError(t, err)

	dispatch := func(ctx context.Context, spec CommandSpec) (*model.CommandResult, error) {
		if spec.DroneID == "AA" {
			return nil, errors.New("unreachable")
		}
		return &model.CommandResult{Success: true}, nil
	}

	report := Run(context.Background(), plan, false, dispatch)
	assert.Equal(t, 1, report.Summary.Succeeded)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 0, report.Summary.Cancelled)
}

func TestResultsPreserveInputOrder(t *testing.T) {
	cmds := []CommandSpec{
		{DroneID: "AA", Action: "connect"},
		{DroneID: "BB", Action: "connect"},
		{DroneID: "CC", Action: "connect"},
	}
	plan, err := Plan(cmds, ModeParallel)
	require.NoError(t, err)

	dispatch := func(ctx context.Context, spec CommandSpec) (*model.CommandResult, error) {
		return &model.CommandResult{Success: true}, nil
	}

	report := Run(context.Background(), plan, false, dispatch)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "AA", report.Results[0].DroneID)
	assert.Equal(t, "BB", report.Results[1].DroneID)
	assert.Equal(t, "CC", report.Results[2].DroneID)
}
