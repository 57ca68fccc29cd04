package shell

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"
)

// Session wraps a yaegi interpreter shared by the line and tea backends.
// The configured context is injected into the interpreter namespace, and
// each input line is evaluated in it.
type Session struct {
	interp *interp.Interpreter
	logger *zap.Logger
}

// NewSession creates an interpreter session writing to the given streams.
func NewSession(stdin io.Reader, stdout, stderr io.Writer, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	i := interp.New(interp.Options{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load interpreter stdlib: %w", err)
	}

	return &Session{
		interp: i,
		logger: logger,
	}, nil
}

// Inject makes the context values available as top-level names in the
// session. Names must be exported Go identifiers (enforced at config load).
func (s *Session) Inject(context map[string]any) error {
	if len(context) == 0 {
		return nil
	}

	symbols := make(map[string]reflect.Value, len(context))
	for name, value := range context {
		rv := reflect.ValueOf(value)
		if !rv.IsValid() {
			s.logger.Warn("skipping nil context value", zap.String("name", name))
			continue
		}
		symbols[name] = rv
	}

	if err := s.interp.Use(interp.Exports{"gonchctx/gonchctx": symbols}); err != nil {
		return fmt.Errorf("failed to register context: %w", err)
	}
	if _, err := s.interp.Eval(`import . "gonchctx"`); err != nil {
		return fmt.Errorf("failed to import context: %w", err)
	}
	return nil
}

// Eval evaluates one input line. The returned bool reports whether the
// evaluation produced a printable value.
func (s *Session) Eval(src string) (string, bool, error) {
	v, err := s.interp.Eval(src)
	if err != nil {
		return "", false, err
	}
	if !v.IsValid() {
		return "", false, nil
	}
	return fmt.Sprintf("%v", v), true, nil
}

// FormatResult applies the configured output template to a result value.
// The template's "{}" placeholder is replaced with the value; an empty
// template returns the value unchanged.
func FormatResult(template, value string) string {
	if template == "" {
		return value
	}
	return strings.ReplaceAll(template, "{}", value)
}
