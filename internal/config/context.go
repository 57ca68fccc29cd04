package config

import (
	"fmt"
	"go/token"
	"reflect"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Named is implemented by context values that carry their own name.
// Values in a slice-form context either implement Named or are functions,
// in which case the name is derived from the function's runtime name.
type Named interface {
	Name() string
}

// NormalizeContext converts a context value from a configuration script
// into a name-keyed map. Accepted forms:
//
//   - nil: empty context
//   - map[string]any: used as-is (copied)
//   - []any: each element must implement Named or be a named function
//
// Context names must be exported Go identifiers so they can be referenced
// directly in the shell session.
func NormalizeContext(value any) (map[string]any, error) {
	switch v := value.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		for name := range v {
			if err := validateContextName(name); err != nil {
				return nil, err
			}
		}
		return lo.Assign(v), nil
	case []any:
		ctx := make(map[string]any, len(v))
		for _, item := range v {
			name, err := contextEntryName(item)
			if err != nil {
				return nil, err
			}
			if err := validateContextName(name); err != nil {
				return nil, err
			}
			ctx[name] = item
		}
		return ctx, nil
	default:
		return nil, fmt.Errorf("context must be a map[string]any or []any, got %T", value)
	}
}

// contextEntryName derives the injection name for a slice-form context entry.
func contextEntryName(item any) (string, error) {
	if named, ok := item.(Named); ok {
		return named.Name(), nil
	}

	rv := reflect.ValueOf(item)
	if rv.Kind() == reflect.Func {
		if name := funcName(rv); name != "" {
			return name, nil
		}
		return "", fmt.Errorf("cannot determine the name of %T; use the map form of context", item)
	}

	return "", fmt.Errorf("context entry %T has no name; implement Name() string or use the map form", item)
}

// funcName returns the bare name of a function value, stripping the package
// path and any method-value suffix. Returns "" when the runtime has no name
// for the function (closures created by the interpreter, for example).
func funcName(rv reflect.Value) string {
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if !token.IsIdentifier(name) {
		return ""
	}
	return name
}

func validateContextName(name string) error {
	if !token.IsIdentifier(name) {
		return fmt.Errorf("context name %q is not a valid Go identifier", name)
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !unicode.IsUpper(first) {
		return fmt.Errorf("context name %q must be exported (start with an upper-case letter)", name)
	}
	return nil
}
