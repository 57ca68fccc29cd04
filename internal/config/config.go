// Package config implements the gonch configuration model. A configuration
// is assembled by a .gonchrc script calling gonch.Config and gonch.NamedConfig,
// and describes what gets injected into the shell session: the context
// variables, the banner, the prompt, and which shell backend to start.
package config

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// DefaultName is the registry key of the profile that gonch.Config updates.
const DefaultName = "default"

// DefaultShell is the shell backend used when a profile does not name one.
const DefaultShell = "auto"

// Config holds a single configuration profile.
type Config struct {
	// Context maps names to the values injected into the shell session's
	// namespace. Names must be exported Go identifiers.
	Context map[string]any

	// Banner is the text shown on startup. Empty means a random quote.
	Banner string

	// Shell names the backend to start ("line", "tea", "gore", "auto").
	Shell string

	// Prompt overrides the input prompt, for backends that support it.
	Prompt string

	// Output is a result template containing "{}" as the value placeholder,
	// for backends that support it.
	Output string

	// HideContext suppresses the context listing in the banner.
	HideContext bool
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		Context: map[string]any{},
		Shell:   DefaultShell,
	}
}

// Update applies a shallow merge of opts onto the config. Keys mirror the
// option names accepted by gonch.Config in a .gonchrc file; the context
// value is normalized on the way in. Later keys overwrite earlier ones.
func (c *Config) Update(opts map[string]any) error {
	for _, key := range sortedKeys(opts) {
		value := opts[key]
		switch key {
		case "context":
			ctx, err := NormalizeContext(value)
			if err != nil {
				return err
			}
			c.Context = ctx
		case "banner":
			s, err := stringOption(key, value)
			if err != nil {
				return err
			}
			c.Banner = s
		case "shell":
			s, err := stringOption(key, value)
			if err != nil {
				return err
			}
			c.Shell = s
		case "prompt":
			s, err := stringOption(key, value)
			if err != nil {
				return err
			}
			c.Prompt = s
		case "output":
			s, err := stringOption(key, value)
			if err != nil {
				return err
			}
			c.Output = s
		case "hideContext":
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("option %q must be a bool, got %T", key, value)
			}
			c.HideContext = b
		default:
			return fmt.Errorf("unknown option %q", key)
		}
	}
	return nil
}

func stringOption(key string, value any) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("option %q must be a string, got %T", key, value)
	}
	return s, nil
}

func sortedKeys(m map[string]any) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

// Registry holds the default profile plus any named profiles declared by
// the configuration script.
type Registry struct {
	configs map[string]*Config
}

// NewRegistry returns a registry containing only the default profile.
func NewRegistry() *Registry {
	return &Registry{
		configs: map[string]*Config{
			DefaultName: New(),
		},
	}
}

// Default returns the default profile.
func (r *Registry) Default() *Config {
	return r.configs[DefaultName]
}

// Get returns the named profile, or false if it does not exist.
func (r *Registry) Get(name string) (*Config, bool) {
	cfg, ok := r.configs[name]
	return cfg, ok
}

// Resolve returns the named profile, falling back to the default profile
// when name is empty or unknown.
func (r *Registry) Resolve(name string) *Config {
	if name == "" {
		return r.Default()
	}
	if cfg, ok := r.configs[name]; ok {
		return cfg
	}
	return r.Default()
}

// SetNamed creates or replaces a named profile from an option map.
func (r *Registry) SetNamed(name string, opts map[string]any) error {
	if name == "" {
		return fmt.Errorf("named config requires a non-empty name")
	}
	cfg := New()
	if err := cfg.Update(opts); err != nil {
		return fmt.Errorf("named config %q: %w", name, err)
	}
	r.configs[name] = cfg
	return nil
}

// Reset discards all profiles and restores a pristine default.
func (r *Registry) Reset() {
	r.configs = map[string]*Config{
		DefaultName: New(),
	}
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := lo.Keys(r.configs)
	sort.Strings(names)
	return names
}
