package nlp

import (
	"testing"

	"github.com/emergent-company/dronemcp/internal/patterns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	lib, errs := patterns.Load(patterns.BuiltinActions(), patterns.BuiltinParameters())
	require.Nil(t, errs)
	return NewEngine(lib, NewDefaultTokenizer(), nil)
}

func TestParseConnect(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("ドローンAAに接続して", nil)

	assert.Equal(t, "connect", intent.Action)
	assert.Equal(t, "AA", intent.Parameters["drone_id"])
	assert.GreaterOrEqual(t, intent.Confidence, 0.8)
}

func TestParseMoveForwardConvertsMetersToCentimeters(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("前に2m移動して", nil)

	assert.Equal(t, "move", intent.Action)
	assert.Equal(t, "forward", intent.Parameters["direction"])
	assert.Equal(t, 200.0, intent.Parameters["distance"])
}

func TestParseRotateClockwise(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("時計回りに90度回転", nil)

	assert.Equal(t, "rotate", intent.Action)
	assert.Equal(t, "clockwise", intent.Parameters["direction"])
	assert.Equal(t, 90.0, intent.Parameters["angle"])
}

func TestParseTakeoff(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("離陸して", nil)

	assert.Equal(t, "takeoff", intent.Action)
}

func TestParseAmbiguousMoveMissingDistance(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("ちょっと前に進んで", nil)

	assert.Equal(t, "move", intent.Action)
	assert.Equal(t, "forward", intent.Parameters["direction"])
	_, hasDistance := intent.Parameters["distance"]
	assert.False(t, hasDistance)
}

func TestParseFullWidthDistanceFoldsToAsciiBeforeMatching(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("前に２ｍ移動して", nil)

	assert.Equal(t, "move", intent.Action)
	assert.Equal(t, "forward", intent.Parameters["direction"])
	assert.Equal(t, 200.0, intent.Parameters["distance"])
}

func TestParseFullWidthDistancePreservesOriginalCommand(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("前に２ｍ移動して", nil)

	assert.Equal(t, "前に２ｍ移動して", intent.OriginalCommand)
}

func TestParseEmptyInputIsUnknown(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("", nil)

	assert.Equal(t, "unknown", intent.Action)
	assert.Equal(t, 0.0, intent.Confidence)
}

func TestParseIsDeterministic(t *testing.T) {
	e := newTestEngine(t)
	a := e.Parse("ドローンAAに接続して", nil)
	b := e.Parse("ドローンAAに接続して", nil)

	assert.Equal(t, a, b)
}

func TestParseUnrecognizedTextIsUnknown(t *testing.T) {
	e := newTestEngine(t)
	intent := e.Parse("今日の天気はどうですか", nil)

	assert.Equal(t, "unknown", intent.Action)
}

func TestSuggestReturnsAtMostFive(t *testing.T) {
	e := newTestEngine(t)
	suggestions := e.Suggest("móve forwrd")

	assert.LessOrEqual(t, len(suggestions), 5)
}
