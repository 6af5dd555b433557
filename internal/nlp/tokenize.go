package nlp

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultTokenizer segments text into Unicode grapheme-cluster-aware
// words and folds each into a normalized "basic" form: full-width forms
// narrowed, NFKC-normalized, and lowercased. It has no notion of
// dictionary-based morphology (no IPADIC or equivalent is wired in); it
// exists so the 1.15 morphological boost has a real, if coarse, signal
// to key off rather than requiring a heavyweight tokenizer dependency.
type DefaultTokenizer struct{}

// NewDefaultTokenizer constructs the default word-boundary tokenizer.
func NewDefaultTokenizer() *DefaultTokenizer { return &DefaultTokenizer{} }

func (t *DefaultTokenizer) Tokenize(text string) []Token {
	var tokens []Token
	state := -1
	remaining := text
	for len(remaining) > 0 {
		var cluster string
		cluster, remaining, _, state = uniseg.StepString(remaining, state)
		if strings.TrimSpace(cluster) == "" {
			continue
		}
		if isPunct(cluster) {
			continue
		}
		tokens = append(tokens, Token{
			Surface: cluster,
			Basic:   basicForm(cluster),
		})
	}
	return mergeRuns(tokens)
}

func isPunct(s string) bool {
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Fold narrows full-width forms (e.g. "２ｍ" -> "2m") and applies NFKC
// normalization, without lowercasing. Engine.Parse folds raw input text
// through this before any regex matching or parameter extraction runs,
// so full-width digits and punctuation match the same ASCII-oriented
// regexes that ordinary half-width input does. Casing is left alone
// because parameter regexes like drone_id's capture mixed-case IDs
// (e.g. "AA") verbatim.
func Fold(s string) string {
	return norm.NFKC.String(width.Narrow.String(s))
}

func basicForm(s string) string {
	return strings.ToLower(Fold(s))
}

// mergeRuns coalesces consecutive grapheme clusters of the same script
// class into single tokens, so "接続" tokenizes as one unit rather than
// two single-character clusters. Latin runs are left as uniseg already
// groups them by its word-boundary rules.
func mergeRuns(clusters []Token) []Token {
	if len(clusters) == 0 {
		return clusters
	}
	var merged []Token
	cur := clusters[0]
	for _, c := range clusters[1:] {
		if sameScript(cur.Surface, c.Surface) {
			cur = Token{Surface: cur.Surface + c.Surface, Basic: cur.Basic + c.Basic}
			continue
		}
		merged = append(merged, cur)
		cur = c
	}
	merged = append(merged, cur)
	return merged
}

func sameScript(a, b string) bool {
	return scriptClass(a) == scriptClass(b) && scriptClass(a) != scriptUnknown
}

type script int

const (
	scriptUnknown script = iota
	scriptLatin
	scriptHan
	scriptKana
)

func scriptClass(s string) script {
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Han, r):
			return scriptHan
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			return scriptKana
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return scriptLatin
		}
	}
	return scriptUnknown
}
