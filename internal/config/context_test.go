package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Greet exists so the slice form of context has a function with a
// runtime name to derive.
func Greet() string { return "hello" }

type namedValue struct{ name string }

func (n namedValue) Name() string { return n.name }

type greeter struct{}

func (greeter) Wave() string { return "o/" }

func TestNormalizeContext(t *testing.T) {
	t.Run("nil yields an empty context", func(t *testing.T) {
		ctx, err := NormalizeContext(nil)
		require.NoError(t, err)
		assert.Empty(t, ctx)
	})

	t.Run("map form is copied", func(t *testing.T) {
		in := map[string]any{"Answer": 42}
		ctx, err := NormalizeContext(in)
		require.NoError(t, err)
		assert.Equal(t, 42, ctx["Answer"])

		ctx["Answer"] = 0
		assert.Equal(t, 42, in["Answer"])
	})

	t.Run("slice form names functions by their runtime name", func(t *testing.T) {
		ctx, err := NormalizeContext([]any{Greet})
		require.NoError(t, err)
		require.Contains(t, ctx, "Greet")
	})

	t.Run("slice form names method values", func(t *testing.T) {
		ctx, err := NormalizeContext([]any{greeter{}.Wave})
		require.NoError(t, err)
		require.Contains(t, ctx, "Wave")
	})

	t.Run("slice form honors the Named interface", func(t *testing.T) {
		ctx, err := NormalizeContext([]any{namedValue{name: "Thing"}})
		require.NoError(t, err)
		assert.Equal(t, namedValue{name: "Thing"}, ctx["Thing"])
	})

	t.Run("slice form rejects unnameable values", func(t *testing.T) {
		_, err := NormalizeContext([]any{42})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no name")
	})

	t.Run("rejects other forms", func(t *testing.T) {
		_, err := NormalizeContext("strings are not contexts")
		assert.Error(t, err)
	})
}

func TestValidateContextName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Answer", false},
		{"Speak", false},
		{"X1", false},
		{"answer", true},     // unexported
		{"my-thing", true},   // not an identifier
		{"for", true},        // keyword
		{"", true},
		{"With Space", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeContext(map[string]any{tt.name: 1})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
