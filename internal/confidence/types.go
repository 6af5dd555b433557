// Package confidence implements the Confidence Evaluator: it scores a
// parsed intent against the original text and produces the quality
// signals, suggestions, and risk annotations the tool surface uses to
// decide whether a command is safe to dispatch.
package confidence

// QualityFlags are the boolean quality indicators evaluated alongside
// the scalar scores.
type QualityFlags struct {
	HasAllRequired       bool `json:"has_all_required"`
	HasConflictingParams bool `json:"has_conflicting_params"`
	HasAmbiguousTerms    bool `json:"has_ambiguous_terms"`
	MorphologicalMatch   bool `json:"morphological_match"`
}

// Evaluation is the Confidence Evaluator's full scoring result. Every
// scalar field is in [0, 1].
type Evaluation struct {
	Overall         float64      `json:"overall"`
	ActionScore     float64      `json:"action_score"`
	ParameterScore  float64      `json:"parameter_score"`
	Completeness    float64      `json:"completeness"`
	QualityFlags    QualityFlags `json:"quality_flags"`
	Suggestions     []string     `json:"suggestions"`
	Risks           []string     `json:"risks"`
}

// DefaultExecutableThreshold is the overall-confidence floor a command
// must clear to be considered executable.
const DefaultExecutableThreshold = 0.7

// DangerousConfidenceThreshold is the stricter floor applied to
// dangerous actions (takeoff, land, emergency_stop).
const DangerousConfidenceThreshold = 0.85

var dangerousActions = map[string]bool{
	"takeoff":        true,
	"land":           true,
	"emergency_stop": true,
}

// IsDangerous reports whether action is subject to the stricter
// confidence floor.
func IsDangerous(action string) bool { return dangerousActions[action] }

// IsExecutable reports whether eval clears the confidence threshold,
// has every required parameter, and carries no conflicting parameters.
// threshold <= 0 falls back to DefaultExecutableThreshold.
func IsExecutable(eval Evaluation, threshold float64) bool {
	if threshold <= 0 {
		threshold = DefaultExecutableThreshold
	}
	return eval.Overall >= threshold && eval.QualityFlags.HasAllRequired && !eval.QualityFlags.HasConflictingParams
}
