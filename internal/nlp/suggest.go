package nlp

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxSuggestions = 5

type candidate struct {
	action  string
	example string
}

// Suggest returns up to five near-miss candidates ranked by fuzzy
// similarity against the pattern library's declared examples. It never
// suspends and never mutates state.
func (e *Engine) Suggest(text string) []Suggestion {
	var cands []candidate
	var data []string
	for _, a := range e.lib.GetActionPatterns() {
		for _, ex := range a.Examples {
			cands = append(cands, candidate{action: a.Name, example: ex})
			data = append(data, ex)
		}
	}
	if len(data) == 0 {
		return nil
	}

	matches := fuzzy.Find(text, data)
	n := len(matches)
	if n > maxSuggestions {
		n = maxSuggestions
	}

	suggestions := make([]Suggestion, 0, n)
	for i := 0; i < n; i++ {
		m := matches[i]
		c := cands[m.Index]
		a, ok := e.lib.GetActionPattern(c.action)
		if !ok {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Action:     c.action,
			Example:    c.example,
			Confidence: a.BaseConfidence * 0.5,
			Diff:       diffText(text, c.example),
		})
	}
	return suggestions
}

// diffText renders a readable inline diff between what the caller typed
// and the nearest known-good example, deletions in [-...-] and
// insertions in {+...+}, matching the convention used by word-level
// diff tools rather than dumping a raw diffmatchpatch struct.
func diffText(from, to string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(from, to, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		case diffmatchpatch.DiffDelete:
			b.WriteString("[-")
			b.WriteString(d.Text)
			b.WriteString("-]")
		case diffmatchpatch.DiffInsert:
			b.WriteString("{+")
			b.WriteString(d.Text)
			b.WriteString("+}")
		}
	}
	return b.String()
}
