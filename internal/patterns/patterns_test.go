package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultValidates(t *testing.T) {
	lib, errs := Load(BuiltinActions(), BuiltinParameters())
	require.Nil(t, errs)
	require.NotNil(t, lib)

	assert.NotEmpty(t, lib.GetActionPatterns())
	for _, a := range lib.GetActionPatterns() {
		assert.NotEmpty(t, a.Compiled(), "action %s has no compiled regex", a.Name)
		assert.GreaterOrEqual(t, a.BaseConfidence, 0.0)
		assert.LessOrEqual(t, a.BaseConfidence, 1.0)
	}
}

func TestLoadRejectsDuplicateActionNames(t *testing.T) {
	actions := []*ActionPattern{
		{Name: "takeoff", RegexSources: []string{"a"}, BaseConfidence: 0.5},
		{Name: "takeoff", RegexSources: []string{"b"}, BaseConfidence: 0.5},
	}
	_, errs := Load(actions, nil)
	require.NotEmpty(t, errs)
}

func TestLoadRejectsInvalidRegex(t *testing.T) {
	actions := []*ActionPattern{
		{Name: "bad", RegexSources: []string{"(unclosed"}, BaseConfidence: 0.5},
	}
	_, errs := Load(actions, nil)
	require.NotEmpty(t, errs)
}

func TestLoadRejectsBaseConfidenceOutOfRange(t *testing.T) {
	actions := []*ActionPattern{
		{Name: "over", RegexSources: []string{"x"}, BaseConfidence: 1.5},
	}
	_, errs := Load(actions, nil)
	require.NotEmpty(t, errs)
}

func TestGetActionPatternsPreservesDeclarationOrder(t *testing.T) {
	lib, errs := Load(BuiltinActions(), BuiltinParameters())
	require.Nil(t, errs)

	builtin := BuiltinActions()
	got := lib.GetActionPatterns()
	require.Len(t, got, len(builtin))
	for i, a := range builtin {
		assert.Equal(t, a.Name, got[i].Name)
	}
}

func TestDistanceBoundaries(t *testing.T) {
	v, err := ConvertDistanceCM("20cm")
	require.NoError(t, err)
	assert.True(t, ValidateDistanceCM(v))

	v, err = ConvertDistanceCM("0.19m")
	require.NoError(t, err)
	assert.InDelta(t, 19.0, v.(float64), 0.0001)
	assert.False(t, ValidateDistanceCM(19.0))
	assert.True(t, ValidateDistanceCM(20.0))
}

func TestDistanceUnitConversion(t *testing.T) {
	v, err := ConvertDistanceCM("2m")
	require.NoError(t, err)
	assert.Equal(t, 200.0, v)

	v, err = ConvertDistanceCM("10mm")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	v, err = ConvertDistanceCM("30cm")
	require.NoError(t, err)
	assert.Equal(t, 30.0, v)
}

func TestAngleBoundaries(t *testing.T) {
	assert.True(t, ValidateAngle(360.0))
	assert.False(t, ValidateAngle(361.0))
	assert.True(t, ValidateAngle(0.0))
}

func TestDirectionSynonyms(t *testing.T) {
	v, err := ConvertDirection("前")
	require.NoError(t, err)
	assert.Equal(t, "forward", v)

	v, err = ConvertDirection("clockwise")
	require.NoError(t, err)
	assert.Equal(t, "clockwise", v)

	_, err = ConvertDirection("sideways")
	assert.Error(t, err)
}

func TestQualitySynonyms(t *testing.T) {
	v, err := ConvertQuality("super")
	require.NoError(t, err)
	assert.Equal(t, "highest", v)

	v, err = ConvertQuality("基本")
	assert.Error(t, err)
	assert.Nil(t, v)

	v, err = ConvertQuality("最高")
	require.NoError(t, err)
	assert.Equal(t, "highest", v)
}
