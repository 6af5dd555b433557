package batch

import (
	"github.com/emergent-company/dronemcp/internal/errs"
	"github.com/emergent-company/dronemcp/internal/nlp"
)

// NLResolver is the narrow nlp.Engine surface ResolveNL needs: parse
// free text into an intent. Declared here so ResolveNL can be tested
// against a fake instead of the real pattern-backed engine.
type NLResolver interface {
	Parse(text string, context map[string]any) nlp.ParsedIntent
}

// ResolveNL turns every natural-language CommandSpec (Command set,
// Action empty) into a typed one by parsing it through engine, before
// the result ever reaches Plan. A command's own text may omit drone_id
// (e.g. "離陸して" following "ドローンAAに接続して" in the same batch) —
// ResolveNL carries the most recently resolved drone_id forward across
// the batch, the same way a pilot's "it" refers back to the last drone
// named. Typed commands (Command empty) pass through unchanged but
// still update the carried drone_id, so a batch may freely mix typed
// and natural-language entries.
func ResolveNL(cmds []CommandSpec, engine NLResolver) ([]CommandSpec, error) {
	resolved := make([]CommandSpec, len(cmds))
	var lastDroneID string

	for i, spec := range cmds {
		if spec.Command == "" {
			resolved[i] = spec
			if spec.DroneID != "" {
				lastDroneID = spec.DroneID
			}
			continue
		}

		intent := engine.Parse(spec.Command, nil)
		if intent.Action == "" || intent.Action == "unknown" {
			return nil, errs.New(errs.CodeUnknownAction, "no pattern matched batch command: "+spec.Command)
		}

		droneID, _ := intent.Parameters["drone_id"].(string)
		if droneID == "" {
			droneID = lastDroneID
		}
		if droneID == "" {
			return nil, errs.New(errs.CodeParameterMissing, "drone_id could not be determined for batch command: "+spec.Command)
		}
		lastDroneID = droneID

		resolved[i] = CommandSpec{
			DroneID:    droneID,
			Action:     intent.Action,
			Parameters: intent.Parameters,
		}
	}

	return resolved, nil
}
