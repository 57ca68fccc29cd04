package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := New()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultShell, cfg.Shell)
	assert.NotNil(t, cfg.Context)
	assert.Empty(t, cfg.Context)
	assert.Empty(t, cfg.Banner)
	assert.Empty(t, cfg.Prompt)
	assert.Empty(t, cfg.Output)
	assert.False(t, cfg.HideContext)
}

func TestConfig_Update(t *testing.T) {
	t.Run("sets string options", func(t *testing.T) {
		cfg := New()
		err := cfg.Update(map[string]any{
			"banner": "hello",
			"shell":  "line",
			"prompt": ">> ",
			"output": "=> {}",
		})
		require.NoError(t, err)
		assert.Equal(t, "hello", cfg.Banner)
		assert.Equal(t, "line", cfg.Shell)
		assert.Equal(t, ">> ", cfg.Prompt)
		assert.Equal(t, "=> {}", cfg.Output)
	})

	t.Run("sets hideContext", func(t *testing.T) {
		cfg := New()
		err := cfg.Update(map[string]any{"hideContext": true})
		require.NoError(t, err)
		assert.True(t, cfg.HideContext)
	})

	t.Run("normalizes context", func(t *testing.T) {
		cfg := New()
		err := cfg.Update(map[string]any{
			"context": map[string]any{"Answer": 42},
		})
		require.NoError(t, err)
		assert.Equal(t, 42, cfg.Context["Answer"])
	})

	t.Run("merge is shallow: untouched keys survive", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.Update(map[string]any{
			"banner": "first",
			"shell":  "line",
		}))
		require.NoError(t, cfg.Update(map[string]any{
			"banner": "second",
		}))
		assert.Equal(t, "second", cfg.Banner)
		assert.Equal(t, "line", cfg.Shell)
	})

	t.Run("rejects unknown options", func(t *testing.T) {
		cfg := New()
		err := cfg.Update(map[string]any{"bannerr": "typo"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown option")
	})

	t.Run("rejects wrong types", func(t *testing.T) {
		cfg := New()
		assert.Error(t, cfg.Update(map[string]any{"banner": 42}))
		assert.Error(t, cfg.Update(map[string]any{"hideContext": "yes"}))
		assert.Error(t, cfg.Update(map[string]any{"context": "not a map"}))
	})
}

func TestRegistry(t *testing.T) {
	t.Run("starts with only the default profile", func(t *testing.T) {
		r := NewRegistry()
		assert.Equal(t, []string{DefaultName}, r.Names())
		require.NotNil(t, r.Default())
	})

	t.Run("SetNamed registers a profile", func(t *testing.T) {
		r := NewRegistry()
		err := r.SetNamed("trivia", map[string]any{"banner": "trivia time"})
		require.NoError(t, err)

		cfg, ok := r.Get("trivia")
		require.True(t, ok)
		assert.Equal(t, "trivia time", cfg.Banner)
		assert.Equal(t, []string{DefaultName, "trivia"}, r.Names())
	})

	t.Run("SetNamed rejects empty names and bad options", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.SetNamed("", map[string]any{}))
		assert.Error(t, r.SetNamed("bad", map[string]any{"nope": 1}))
	})

	t.Run("Resolve falls back to default", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.SetNamed("trivia", map[string]any{"banner": "trivia time"}))

		assert.Same(t, r.Default(), r.Resolve(""))
		assert.Same(t, r.Default(), r.Resolve("no-such-profile"))

		cfg, _ := r.Get("trivia")
		assert.Same(t, cfg, r.Resolve("trivia"))
	})

	t.Run("Reset discards named profiles", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Default().Update(map[string]any{"banner": "custom"}))
		require.NoError(t, r.SetNamed("trivia", map[string]any{}))

		r.Reset()

		assert.Equal(t, []string{DefaultName}, r.Names())
		assert.Empty(t, r.Default().Banner)
	})
}

func TestSpeak(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		quote := Speak()
		assert.NotEmpty(t, quote)
		seen[quote] = true
	}
	assert.Greater(t, len(seen), 1, "should return different quotes across calls")
}
