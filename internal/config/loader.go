package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"
)

// Loader executes .gonchrc configuration scripts. A configuration script is
// a sequence of Go statements interpreted by yaegi with the gonch builtin
// package pre-imported, so a minimal script is just:
//
//	gonch.Config(map[string]interface{}{
//		"banner": "hello",
//	})
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration script.
type LoadResult struct {
	Registry *Registry
	Errors   []error
}

// LoadFromFile loads configuration from a .gonchrc file.
// Returns the registry and any non-fatal errors encountered.
// If the file doesn't exist, returns the default registry with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Registry: NewRegistry()}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return l.LoadFromString(string(content))
}

// LoadFromString loads configuration from a script string. Script errors
// are collected rather than returned: a broken rc file degrades to the
// defaults instead of preventing the shell from starting.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{
		Registry: NewRegistry(),
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load interpreter stdlib: %w", err)
	}
	if err := i.Use(l.builtins(result)); err != nil {
		return nil, fmt.Errorf("failed to register gonch builtins: %w", err)
	}
	if _, err := i.Eval(`import "gonch"`); err != nil {
		return nil, fmt.Errorf("failed to import gonch builtins: %w", err)
	}

	if _, err := i.Eval(stripShebang(source)); err != nil {
		l.logger.Warn("config script error", zap.Error(err))
		result.Errors = append(result.Errors, fmt.Errorf("config script error: %w", err))
	}

	return result, nil
}

// builtins returns the gonch package exposed to configuration scripts.
// The functions mutate the registry captured in result.
func (l *Loader) builtins(result *LoadResult) interp.Exports {
	configFn := func(opts map[string]any) {
		l.logger.Debug("updating default config", zap.Any("options", keysOf(opts)))
		if err := result.Registry.Default().Update(opts); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	namedConfigFn := func(name string, opts map[string]any) {
		l.logger.Debug("registering named config", zap.String("name", name))
		if err := result.Registry.SetNamed(name, opts); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	resetConfigFn := func() {
		result.Registry.Reset()
	}

	return interp.Exports{
		"gonch/gonch": {
			"Config":      reflect.ValueOf(configFn),
			"NamedConfig": reflect.ValueOf(namedConfigFn),
			"ResetConfig": reflect.ValueOf(resetConfigFn),
			"Speak":       reflect.ValueOf(Speak),
		},
	}
}

// stripShebang drops a leading #! line so rc files can be marked executable.
func stripShebang(source string) string {
	if strings.HasPrefix(source, "#!") {
		if idx := strings.Index(source, "\n"); idx >= 0 {
			return source[idx+1:]
		}
		return ""
	}
	return source
}

func keysOf(m map[string]any) []string {
	return sortedKeys(m)
}
