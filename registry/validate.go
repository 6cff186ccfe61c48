package registry

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError reports one input field that failed its contract.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Validate checks raw arguments against the command's contract and returns
// typed arguments. Required fields must be present and type-valid before any
// statement text is constructed; defaults are applied for absent optional
// fields. Fields not declared in the contract are ignored.
func (c *Command) Validate(raw map[string]any) (Args, error) {
	args := Args{}
	for i := range c.Fields {
		f := &c.Fields[i]
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, &ValidationError{Field: f.Name, Reason: "required field is missing"}
			}
			if f.Default != nil {
				args[f.Name] = f.Default
			}
			continue
		}
		typed, err := coerce(f, v)
		if err != nil {
			return nil, err
		}
		args[f.Name] = typed
	}
	return args, nil
}

func coerce(f *Field, v any) (any, error) {
	switch f.Type {
	case String:
		s, ok := v.(string)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Reason: "expected a string"}
		}
		if len(f.Enum) > 0 && !slices.Contains(f.Enum, s) {
			return nil, &ValidationError{
				Field:  f.Name,
				Reason: fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, ", ")),
			}
		}
		return s, nil
	case Number:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
		return nil, &ValidationError{Field: f.Name, Reason: "expected a number"}
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Reason: "expected a boolean"}
		}
		return b, nil
	case Array:
		a, ok := v.([]any)
		if !ok {
			return nil, &ValidationError{Field: f.Name, Reason: "expected an array"}
		}
		return a, nil
	}
	return nil, &ValidationError{Field: f.Name, Reason: fmt.Sprintf("unsupported field type %q", f.Type)}
}
