package nlp

import (
	"log/slog"
	"strings"

	"github.com/emergent-company/dronemcp/internal/patterns"
)

// Engine matches free-text commands against a pattern library and
// extracts a best-guess intent. Matching and extraction never suspend;
// Engine holds no mutable state after construction.
type Engine struct {
	lib    *patterns.Library
	tok    Tokenizer
	logger *slog.Logger
}

// NewEngine constructs an Engine. tok may be nil, in which case
// morphological evidence is simply never consulted.
func NewEngine(lib *patterns.Library, tok Tokenizer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{lib: lib, tok: tok, logger: logger}
}

// actionScore is the per-action scoring result used both to pick the
// winner and to rank suggestions.
type actionScore struct {
	action      *patterns.ActionPattern
	matchCount  int
	exactMatch  bool
	morphemeHit bool
	score       float64
}

// scoreActions evaluates every declared action against text and its
// tokens, in declaration order.
func (e *Engine) scoreActions(text string, tokens []Token) []actionScore {
	scores := make([]actionScore, 0, len(e.lib.GetActionPatterns()))
	for _, a := range e.lib.GetActionPatterns() {
		s := actionScore{action: a}
		for _, re := range a.Compiled() {
			if re.MatchString(text) {
				s.matchCount++
				if re.FindString(text) == text {
					s.exactMatch = true
				}
			}
		}
		if s.matchCount == 0 {
			scores = append(scores, s)
			continue
		}
		if len(tokens) > 0 && hasMorphemeEvidence(a.MorphemeEvidence, tokens) {
			s.morphemeHit = true
		}
		s.score = computeScore(a.BaseConfidence, s.matchCount, s.exactMatch, s.morphemeHit)
		scores = append(scores, s)
	}
	return scores
}

func computeScore(base float64, matchCount int, exact, morpheme bool) float64 {
	score := base
	if matchCount >= 2 {
		score *= 1.1
	}
	if exact {
		score *= 1.2
	}
	if morpheme {
		score *= 1.15
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func hasMorphemeEvidence(keywords []string, tokens []Token) bool {
	if len(keywords) == 0 {
		return false
	}
	for _, kw := range keywords {
		kwBasic := strings.ToLower(kw)
		for _, t := range tokens {
			if t.Surface == kw || t.Basic == kwBasic {
				return true
			}
		}
	}
	return false
}

// Parse returns the single highest-scoring intent for text. Ties break
// by declaration order (the first action reached with the max score
// wins, since later equal scores never overwrite it).
func (e *Engine) Parse(text string, context map[string]any) ParsedIntent {
	if strings.TrimSpace(text) == "" {
		return ParsedIntent{Action: "unknown", Parameters: map[string]any{}, Confidence: 0, OriginalCommand: text, Context: context}
	}

	folded := Fold(text)

	var tokens []Token
	if e.tok != nil {
		tokens = e.tok.Tokenize(text)
	}

	scores := e.scoreActions(folded, tokens)

	var best *actionScore
	for i := range scores {
		if scores[i].matchCount == 0 {
			continue
		}
		if best == nil || scores[i].score > best.score {
			best = &scores[i]
		}
	}

	if best == nil {
		return ParsedIntent{Action: "unknown", Parameters: map[string]any{}, Confidence: 0, OriginalCommand: text, Context: context}
	}

	params := e.extractParameters(best.action, folded)

	return ParsedIntent{
		Action:          best.action.Name,
		Parameters:      params,
		Confidence:      best.score,
		OriginalCommand: text,
		Context:         context,
	}
}

// extractParameters applies every required and optional parameter of
// action against text, taking the first matching regex's first capture
// group through the parameter's converter and validator. A converter
// error or validator rejection means the parameter is simply absent
// (not matched) — never a parse failure.
func (e *Engine) extractParameters(action *patterns.ActionPattern, text string) map[string]any {
	params := make(map[string]any)
	names := append(append([]string{}, action.RequiredParams...), action.OptionalParams...)
	for _, name := range names {
		pp, ok := e.lib.GetParameterPattern(name)
		if !ok {
			continue
		}
		for _, re := range pp.Compiled() {
			m := re.FindStringSubmatch(text)
			if m == nil || len(m) < 2 {
				continue
			}
			raw := m[1]
			value, err := pp.Converter(raw)
			if err != nil {
				e.logger.Warn("parameter converter failed", "parameter", name, "raw", raw, "error", err)
				continue
			}
			if pp.Validator != nil && !pp.Validator(value) {
				continue
			}
			params[name] = value
			break
		}
	}
	return params
}
