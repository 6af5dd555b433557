package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchForChangesNoopWhenDisabled(t *testing.T) {
	err := WatchForChanges(t.Context(), "dronemcp.toml", false, nil)
	assert.NoError(t, err)
}

func TestWatchForChangesNoopWithEmptyPath(t *testing.T) {
	err := WatchForChanges(t.Context(), "", true, nil)
	assert.NoError(t, err)
}
