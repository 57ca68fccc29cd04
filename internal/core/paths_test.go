package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ResetPaths()
	t.Cleanup(ResetPaths)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".gonch"), DataDir())
	assert.Equal(t, filepath.Join(home, ".gonch", "gonch.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".gonch", "trust.json"), TrustFile())
	assert.Equal(t, filepath.Join(home, ".gonch", "history.db"), HistoryFile())

	info, err := os.Stat(DataDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
