package shell

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"go.uber.org/zap"
	"mvdan.cc/sh/v3/shell"

	"github.com/gonch-sh/gonch/internal/styles"
)

// ExternalREPLEnv names the environment variable that overrides the
// external REPL command line. The default is the gore binary.
const ExternalREPLEnv = "GONCH_EXTERNAL_REPL"

const defaultExternalREPL = "gore"

// Gore launches a third-party interactive Go REPL binary as a child
// process. It is available only when the binary is installed. Context
// injection, prompts, and output templates cannot cross the process
// boundary, so configuring them produces a warning rather than an effect.
type Gore struct {
	opts Options
}

func NewGore(opts Options) Shell {
	return &Gore{opts: opts.normalize()}
}

func (g *Gore) Name() string { return "gore" }

// commandLine returns the external REPL invocation, split with shell-style
// word rules so quoted arguments survive.
func (g *Gore) commandLine() ([]string, error) {
	cmdline := os.Getenv(ExternalREPLEnv)
	if cmdline == "" {
		cmdline = defaultExternalREPL
	}

	fields, err := shell.Fields(cmdline, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ExternalREPLEnv, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s is empty", ExternalREPLEnv)
	}
	return fields, nil
}

func (g *Gore) Available() error {
	fields, err := g.commandLine()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrShellNotAvailable, err)
	}
	if _, err := exec.LookPath(fields[0]); err != nil {
		return fmt.Errorf("%w: %s not found in PATH", ErrShellNotAvailable, fields[0])
	}
	return nil
}

func (g *Gore) Start(ctx context.Context) error {
	if err := g.Available(); err != nil {
		return err
	}
	fields, err := g.commandLine()
	if err != nil {
		return err
	}

	if len(g.opts.Context) > 0 {
		fmt.Fprintln(g.opts.Stderr, styles.WARNING("context injection is not supported by the external REPL"))
	}
	if g.opts.Prompt != "" {
		fmt.Fprintln(g.opts.Stderr, styles.WARNING("custom prompts are not supported by the external REPL"))
	}
	if g.opts.Output != "" {
		fmt.Fprintln(g.opts.Stderr, styles.WARNING("output templates are not supported by the external REPL"))
	}

	fmt.Fprint(g.opts.Stdout, g.opts.Banner)

	g.opts.Logger.Info("launching external REPL", zap.Strings("command", fields))

	cmd := exec.CommandContext(ctx, fields[0], fields[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
