// Package batch implements the Batch Executor (Component G): it plans a
// dependency graph over a list of commands, schedules them according to
// the requested execution mode, and reports a per-command result plus an
// aggregated summary.
package batch

import (
	"fmt"

	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/google/uuid"
)

// ExecutionMode selects how the planned DAG is walked.
type ExecutionMode string

const (
	ModeSequential ExecutionMode = "sequential"
	ModeParallel   ExecutionMode = "parallel"
	ModeOptimized  ExecutionMode = "optimized"
)

// CommandSpec is one command submitted to execute_batch, before
// planning. A command is either typed (DroneID+Action[+Parameters]) or
// natural-language (Command, a free-text string resolved through the
// NLP Engine by ResolveNL before Plan ever sees it) — never both.
type CommandSpec struct {
	DroneID    string         `json:"drone_id,omitempty"`
	Action     string         `json:"action,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Command    string         `json:"command,omitempty"`
}

// PlanNode is one scheduled unit in a BatchPlan.
type PlanNode struct {
	ID        string      `json:"id"`
	Spec      CommandSpec `json:"spec"`
	DependsOn []string    `json:"depends_on"`
}

// BatchPlan is the fully resolved dependency graph for a batch request.
type BatchPlan struct {
	Mode  ExecutionMode `json:"mode"`
	Nodes []PlanNode    `json:"nodes"`
}

// produces/requires model per-drone state resources a command either
// establishes or depends on. Every key is scoped to a drone ID by Plan.
var produces = map[string]string{
	"connect": "connected",
	"takeoff": "in_air",
}

var requires = map[string][]string{
	"disconnect":      {"connected"},
	"takeoff":         {"connected"},
	"land":            {"in_air"},
	"move":            {"in_air"},
	"rotate":          {"in_air"},
	"altitude":        {"in_air"},
	"take_photo":      {"in_air"},
	"start_streaming": {"in_air"},
	"stop_streaming":  {"in_air"},
	"detect_objects":  {"in_air"},
	"start_tracking":  {"in_air"},
	"stop_tracking":   {"in_air"},
	"emergency_stop":  {"connected"},
}

// Plan builds the dependency graph for cmds. Each node depends on the
// most recent earlier node, on the same drone, that produces a resource
// this node requires — except under parallel, which drops these
// resource edges entirely and issues every command concurrently,
// leaving the precondition gate in the drone service as the sole
// authority over any resulting ordering violation. sequential
// additionally chains every node to its immediate predecessor in
// submission order, since sequential execution must honor submission
// order even across independent drones.
func Plan(cmds []CommandSpec, mode ExecutionMode) (*BatchPlan, error) {
	nodes := make([]PlanNode, len(cmds))
	// lastProducer[droneID][resource] = node ID of the most recent
	// producer of that resource on that drone.
	lastProducer := make(map[string]map[string]string)

	for i, spec := range cmds {
		id := uuid.NewString()
		node := PlanNode{ID: id, Spec: spec}

		if lastProducer[spec.DroneID] == nil {
			lastProducer[spec.DroneID] = make(map[string]string)
		}

		if mode != ModeParallel {
			for _, res := range requires[spec.Action] {
				if producerID, ok := lastProducer[spec.DroneID][res]; ok {
					node.DependsOn = appendUnique(node.DependsOn, producerID)
				}
			}
		}

		if mode == ModeSequential && i > 0 {
			node.DependsOn = appendUnique(node.DependsOn, nodes[i-1].ID)
		}

		nodes[i] = node

		if res, ok := produces[spec.Action]; ok {
			lastProducer[spec.DroneID][res] = id
		}
	}

	plan := &BatchPlan{Mode: mode, Nodes: nodes}
	if err := checkAcyclic(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func appendUnique(list []string, id string) []string {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

// checkAcyclic runs Kahn's algorithm over the plan's dependency edges and
// fails with CodeBatchPlanCycle if any node is unreachable from the
// in-degree-zero frontier, i.e. a cycle exists.
func checkAcyclic(plan *BatchPlan) error {
	inDegree := make(map[string]int, len(plan.Nodes))
	dependents := make(map[string][]string)
	for _, n := range plan.Nodes {
		if _, ok := inDegree[n.ID]; !ok {
			inDegree[n.ID] = 0
		}
		for _, dep := range n.DependsOn {
			inDegree[n.ID]++
			dependents[dep] = append(dependents[dep], n.ID)
		}
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range dependents[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if visited != len(plan.Nodes) {
		return errs.New(errs.CodeBatchPlanCycle, fmt.Sprintf("batch plan contains a dependency cycle (%d of %d nodes reachable)", visited, len(plan.Nodes)))
	}
	return nil
}
