package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, zerolog.DebugLevel, NewLogger(f, "debug").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(f, "").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewLogger(f, "loud").GetLevel())

	log := NewLogger(f, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	b, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "shown")
	assert.NotContains(t, string(b), "\x1b[", "files get no colour")
}
