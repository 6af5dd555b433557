package confidence

import "strings"

// conflictPairs lists direction/intent keywords that contradict each
// other when both appear in the same command. Matching is a plain
// substring scan against the lowercased text, not the extracted
// parameter value, since a command can name two contradictory
// directions even though only one survives extraction.
var conflictPairs = [][2][]string{
	{{"up", "上昇", "上"}, {"down", "下降", "下"}},
	{{"left", "左"}, {"right", "右"}},
	{{"clockwise", "時計回り", "右回り"}, {"counterclockwise", "anticlockwise", "反時計回り", "左回り"}},
	{{"immediate", "immediately", "すぐ", "即座"}, {"safe", "safely", "安全"}},
}

// HasConflictingParams reports whether text mentions both sides of any
// declared conflict pair.
func HasConflictingParams(text string) bool {
	lower := strings.ToLower(text)
	for _, pair := range conflictPairs {
		if containsAny(lower, pair[0]) && containsAny(lower, pair[1]) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// ambiguousTerms is the handcrafted hedge-word list. Locale expansion
// is left to extenders (ja/en only for now).
var ambiguousTerms = []string{
	"少し", "ちょっと", "たくさん", "a bit", "a little", "fast", "slow",
}

// HasAmbiguousTerms reports whether text contains any hedge word from
// the ambiguous-term list.
func HasAmbiguousTerms(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range ambiguousTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
