package confidence

import (
	"fmt"
	"strings"

	"github.com/emergent-company/dronemcp/internal/nlp"
	"github.com/emergent-company/dronemcp/internal/patterns"
)

// Evaluator scores parsed intents against the pattern library that
// produced them. Evaluate is pure: no network call, no cache mutation,
// same inputs always produce the same output.
type Evaluator struct {
	lib *patterns.Library
}

// NewEvaluator constructs an Evaluator bound to lib.
func NewEvaluator(lib *patterns.Library) *Evaluator {
	return &Evaluator{lib: lib}
}

// Evaluate scores intent against the original text (and, if available,
// its tokenization) and returns the full confidence evaluation.
func (e *Evaluator) Evaluate(intent nlp.ParsedIntent, text string, tokens []nlp.Token) Evaluation {
	action, known := e.lib.GetActionPattern(intent.Action)
	if !known {
		return Evaluation{
			Overall:     0,
			ActionScore: 0,
			Risks:       []string{"unknown action: no pattern matched this command"},
			Suggestions: []string{"try rephrasing the command using one of the supported action verbs"},
		}
	}

	actionScore := intent.Confidence

	folded := nlp.Fold(text)
	paramScore, completeness, flags, missingRequired, rejected := e.scoreParameters(action, intent, folded)
	flags.HasConflictingParams = HasConflictingParams(folded)
	flags.HasAmbiguousTerms = HasAmbiguousTerms(folded)
	flags.MorphologicalMatch = hasMorphemeEvidence(action.MorphemeEvidence, tokens)

	overall := 0.4*actionScore + 0.3*paramScore + 0.2*completeness + qualityBonus(flags)
	if overall > 1.0 {
		overall = 1.0
	}

	eval := Evaluation{
		Overall:        overall,
		ActionScore:    actionScore,
		ParameterScore: paramScore,
		Completeness:   completeness,
		QualityFlags:   flags,
	}
	eval.Suggestions = e.buildSuggestions(action, overall, missingRequired, rejected)
	eval.Risks = buildRisks(intent.Action, overall, flags, missingRequired)
	return eval
}

// scoreParameters computes the mean per-parameter score across every
// declared parameter of action, plus the completeness fraction and the
// has_all_required flag. It also returns the list of missing required
// parameter names and any parameter whose value was rejected by its
// validator, for suggestion/risk generation.
func (e *Evaluator) scoreParameters(action *patterns.ActionPattern, intent nlp.ParsedIntent, text string) (score, completeness float64, flags QualityFlags, missingRequired, rejected []string) {
	all := append(append([]string{}, action.RequiredParams...), action.OptionalParams...)
	if len(all) == 0 {
		flags.HasAllRequired = true
		return 1.0, 1.0, flags, nil, nil
	}

	var total float64
	for _, name := range all {
		pp, ok := e.lib.GetParameterPattern(name)
		if !ok {
			continue
		}
		patternFit, validatorFit, typeFit, wasRejected := e.probeParameter(pp, text, intent.Parameters[name])
		if wasRejected {
			rejected = append(rejected, name)
		}
		perParam := patternFit
		if mean := (validatorFit + typeFit) / 2; mean > perParam {
			perParam = mean
		}
		total += perParam
	}
	score = total / float64(len(all))

	reqFulfilled, reqTotal := 0, len(action.RequiredParams)
	for _, name := range action.RequiredParams {
		if _, ok := intent.Parameters[name]; ok {
			reqFulfilled++
		} else {
			missingRequired = append(missingRequired, name)
		}
	}
	reqFrac := 1.0
	if reqTotal > 0 {
		reqFrac = float64(reqFulfilled) / float64(reqTotal)
	}
	flags.HasAllRequired = len(missingRequired) == 0

	optFulfilled, optTotal := 0, len(action.OptionalParams)
	for _, name := range action.OptionalParams {
		if _, ok := intent.Parameters[name]; ok {
			optFulfilled++
		}
	}
	optFrac := 0.0
	if optTotal > 0 {
		optFrac = float64(optFulfilled) / float64(optTotal)
	}

	completeness = reqFrac + minF(0.2*optFrac, 0.2)
	if completeness > 1.0 {
		completeness = 1.0
	}
	return score, completeness, flags, missingRequired, rejected
}

// probeParameter independently re-examines text against pp, regardless
// of whether extraction ultimately kept the value, so that pattern-match
// fit reflects "did any regex match" rather than "did the final value
// survive validation".
func (e *Evaluator) probeParameter(pp *patterns.ParameterPattern, text string, finalValue any) (patternFit, validatorFit, typeFit float64, rejected bool) {
	validatorFit = 0.5
	typeFit = 0.5

	var raw string
	matched := false
	for _, re := range pp.Compiled() {
		if m := re.FindStringSubmatch(text); m != nil && len(m) >= 2 {
			matched = true
			raw = m[1]
			break
		}
	}
	if !matched {
		return 0.0, validatorFit, typeFit, false
	}
	patternFit = 0.8

	value, err := pp.Converter(raw)
	if err != nil {
		return patternFit, 0.2, 0.5, true
	}
	if pp.Validator != nil {
		if pp.Validator(value) {
			validatorFit = 0.9
		} else {
			validatorFit = 0.2
			rejected = true
		}
	}
	if typeAgrees(pp.Type, value) {
		typeFit = 0.9
	} else {
		typeFit = 0.5
	}
	_ = finalValue
	return patternFit, validatorFit, typeFit, rejected
}

func typeAgrees(declared patterns.ParamType, value any) bool {
	switch declared {
	case patterns.TypeNumber:
		_, ok := value.(float64)
		return ok
	case patterns.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case patterns.TypeString:
		_, ok := value.(string)
		return ok
	default:
		return false
	}
}

func qualityBonus(flags QualityFlags) float64 {
	var bonus float64
	const each = 0.15 / 4
	if flags.HasAllRequired {
		bonus += each
	}
	if !flags.HasConflictingParams {
		bonus += each
	}
	if !flags.HasAmbiguousTerms {
		bonus += each
	}
	if flags.MorphologicalMatch {
		bonus += each
	}
	return bonus
}

func hasMorphemeEvidence(keywords []string, tokens []nlp.Token) bool {
	if len(keywords) == 0 || len(tokens) == 0 {
		return false
	}
	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)
		for _, t := range tokens {
			if t.Surface == kw || t.Basic == kwLower {
				return true
			}
		}
	}
	return false
}

func (e *Evaluator) buildSuggestions(action *patterns.ActionPattern, overall float64, missingRequired, rejected []string) []string {
	var suggestions []string
	if overall < 0.5 {
		suggestions = append(suggestions, "low confidence match: try rephrasing the command more explicitly")
	}
	for _, name := range missingRequired {
		example := ""
		if pp, ok := e.lib.GetParameterPattern(name); ok && len(pp.Examples) > 0 {
			example = pp.Examples[0]
		} else if len(action.Examples) > 0 {
			example = action.Examples[0]
		}
		suggestions = append(suggestions, fmt.Sprintf("missing required parameter %q, e.g. %q", name, example))
	}
	for _, name := range rejected {
		suggestions = append(suggestions, fmt.Sprintf("value for %q was out of range or invalid", name))
	}
	return suggestions
}

func buildRisks(action string, overall float64, flags QualityFlags, missingRequired []string) []string {
	var risks []string
	if overall < DefaultExecutableThreshold {
		risks = append(risks, "low-confidence execution risk")
	}
	if flags.HasConflictingParams {
		risks = append(risks, "command contains conflicting parameters")
	}
	if len(missingRequired) > 0 {
		risks = append(risks, "missing required parameters")
	}
	if flags.HasAmbiguousTerms {
		risks = append(risks, "command contains ambiguous terms")
	}
	if IsDangerous(action) && overall < DangerousConfidenceThreshold {
		risks = append(risks, "dangerous action below the stricter confidence threshold")
	}
	return risks
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
