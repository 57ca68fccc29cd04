// Package shell provides the interchangeable interactive-shell backends
// gonch can launch, behind a common availability-check/start contract.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/gonch-sh/gonch/internal/history"
)

// ErrShellNotAvailable is returned by Available (and wrapped by Start) when
// a backend cannot run in the current environment.
var ErrShellNotAvailable = errors.New("shell backend not available")

// Shell is the contract every backend implements.
type Shell interface {
	// Name returns the canonical backend name.
	Name() string
	// Available reports whether the backend can run right now. A nil error
	// means it can; otherwise the error wraps ErrShellNotAvailable with
	// the reason.
	Available() error
	// Start runs the interactive session until the user exits.
	Start(ctx context.Context) error
}

// Options carries everything a backend needs to start a session.
type Options struct {
	// Context maps names to the values injected into the session namespace.
	Context map[string]any
	// Banner is the fully rendered banner printed on startup.
	Banner string
	// Prompt overrides the input prompt. Empty means the backend default.
	Prompt string
	// Output is a result template containing "{}" as the value placeholder.
	Output string
	// History records session inputs. May be nil.
	History *history.Manager
	// Logger is never nil after normalize.
	Logger *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// normalize fills in defaults so backends don't have to nil-check.
func (o Options) normalize() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	return o
}

func (o Options) prompt() string {
	if o.Prompt != "" {
		return o.Prompt
	}
	return "gonch> "
}

// Factory constructs a backend from options.
type Factory func(Options) Shell

// backends maps names and aliases to factories. Mirrors the fixed shell
// map of the CLI surface: explicit names select one backend, "auto" picks
// the first available one.
var backends = map[string]Factory{
	"line":     NewLine,
	"go":       NewLine,
	"builtin":  NewLine,
	"tea":      NewTea,
	"fancy":    NewTea,
	"gore":     NewGore,
	"ext":      NewGore,
	"external": NewGore,
	"auto":     NewAuto,
}

// New constructs the backend registered under name. An unknown name falls
// back to auto.
func New(name string, opts Options) Shell {
	opts = opts.normalize()
	if factory, ok := backends[name]; ok {
		return factory(opts)
	}
	opts.Logger.Debug("unknown shell backend, falling back to auto", zap.String("name", name))
	return NewAuto(opts)
}

// Names returns the registered backend names and aliases, sorted.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Auto tries the enhanced backends first and falls back to the built-in
// line shell, which is always available.
type Auto struct {
	opts Options
}

func NewAuto(opts Options) Shell {
	return &Auto{opts: opts.normalize()}
}

func (a *Auto) Name() string { return "auto" }

func (a *Auto) Available() error { return nil }

func (a *Auto) Start(ctx context.Context) error {
	for _, factory := range []Factory{NewTea, NewGore, NewLine} {
		sh := factory(a.opts)
		if err := sh.Available(); err != nil {
			a.opts.Logger.Debug("shell backend unavailable",
				zap.String("backend", sh.Name()),
				zap.Error(err))
			continue
		}
		a.opts.Logger.Info("starting shell backend", zap.String("backend", sh.Name()))
		return sh.Start(ctx)
	}
	// Unreachable: the line backend is always available.
	return ErrShellNotAvailable
}
