package shell

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"line", "line"},
		{"go", "line"},
		{"builtin", "line"},
		{"tea", "tea"},
		{"fancy", "tea"},
		{"gore", "gore"},
		{"ext", "gore"},
		{"external", "gore"},
		{"auto", "auto"},
		{"no-such-backend", "auto"},
		{"", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sh := New(tt.name, Options{})
			assert.Equal(t, tt.want, sh.Name())
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "line")
	assert.Contains(t, names, "tea")
	assert.Contains(t, names, "gore")
	assert.Contains(t, names, "auto")
	assert.IsNonDecreasing(t, names)
}

func TestOptionsPrompt(t *testing.T) {
	assert.Equal(t, "gonch> ", Options{}.prompt())
	assert.Equal(t, ">>> ", Options{Prompt: ">>> "}.prompt())
}

func TestLine(t *testing.T) {
	run := func(t *testing.T, opts Options, input string) (string, string) {
		t.Helper()
		var out, errOut strings.Builder
		opts.Stdin = strings.NewReader(input)
		opts.Stdout = &out
		opts.Stderr = &errOut
		require.NoError(t, NewLine(opts).Start(context.Background()))
		return out.String(), errOut.String()
	}

	t.Run("is always available", func(t *testing.T) {
		assert.NoError(t, NewLine(Options{}).Available())
	})

	t.Run("prints the banner and evaluates input", func(t *testing.T) {
		out, _ := run(t, Options{Banner: "welcome aboard\n"}, "1 + 2\n")
		assert.Contains(t, out, "welcome aboard")
		assert.Contains(t, out, "gonch> ")
		assert.Contains(t, out, "3")
	})

	t.Run("injected context is usable", func(t *testing.T) {
		out, _ := run(t, Options{
			Context: map[string]any{"Answer": 42},
		}, "Answer\n")
		assert.Contains(t, out, "42")
	})

	t.Run("applies the output template", func(t *testing.T) {
		out, _ := run(t, Options{Output: "=> {}"}, "1 + 2\n")
		assert.Contains(t, out, "=> 3")
	})

	t.Run("uses the configured prompt", func(t *testing.T) {
		out, _ := run(t, Options{Prompt: "krill> "}, "")
		assert.Contains(t, out, "krill> ")
	})

	t.Run("evaluation errors go to stderr and the loop continues", func(t *testing.T) {
		out, errOut := run(t, Options{}, "thisIsNotDefined\n1 + 2\n")
		assert.NotEmpty(t, errOut)
		assert.Contains(t, out, "3")
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		out, errOut := run(t, Options{}, "\n\n")
		assert.Empty(t, errOut)
		assert.NotContains(t, out, "nil")
	})

	t.Run("cancelled context stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var out strings.Builder
		err := NewLine(Options{
			Stdin:  strings.NewReader("1 + 2\n"),
			Stdout: &out,
			Stderr: &out,
		}).Start(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGoreAvailability(t *testing.T) {
	t.Run("missing binary is not available", func(t *testing.T) {
		t.Setenv(ExternalREPLEnv, "definitely-not-a-real-repl-binary")
		err := NewGore(Options{}).Available()
		assert.ErrorIs(t, err, ErrShellNotAvailable)
	})

	t.Run("unparseable command line is not available", func(t *testing.T) {
		t.Setenv(ExternalREPLEnv, `gore "unterminated`)
		err := NewGore(Options{}).Available()
		assert.ErrorIs(t, err, ErrShellNotAvailable)
	})
}

func TestAutoFallsBackToLine(t *testing.T) {
	// Tests never run with a TTY and the external REPL is pointed at a
	// binary that does not exist, so auto must land on the line backend.
	t.Setenv(ExternalREPLEnv, "definitely-not-a-real-repl-binary")

	var out strings.Builder
	err := NewAuto(Options{
		Banner: "fallback banner\n",
		Stdin:  strings.NewReader("1 + 2\n"),
		Stdout: &out,
		Stderr: &out,
	}).Start(context.Background())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "fallback banner")
	assert.Contains(t, out.String(), "3")
}
