// Package tools declares the school command catalog: every command's name,
// description, and input contract, bound to the generic operations in ops or
// to hand-written multi-statement handlers.
package tools

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/schooldesk/mcp-school/registry"
)

// All returns the complete command catalog.
func All() []registry.Command {
	var cmds []registry.Command
	cmds = append(cmds, Students()...)
	cmds = append(cmds, Enquiries()...)
	cmds = append(cmds, Staff()...)
	cmds = append(cmds, Academics()...)
	cmds = append(cmds, Fees()...)
	cmds = append(cmds, Inventory()...)
	cmds = append(cmds, Purchasing()...)
	cmds = append(cmds, Exams()...)
	cmds = append(cmds, HR()...)
	cmds = append(cmds, Settings()...)
	return cmds
}

func str(name, desc string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.String}
}

func reqStr(name, desc string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.String, Required: true}
}

func num(name, desc string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.Number}
}

func reqNum(name, desc string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.Number, Required: true}
}

func boolean(name, desc string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.Boolean}
}

func reqArr(name, desc string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.Array, Required: true}
}

func reqEnum(name, desc string, values ...string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.String, Required: true, Enum: values}
}

func enumDef(name, desc, def string, values ...string) registry.Field {
	return registry.Field{Name: name, Description: desc, Type: registry.String, Default: def, Enum: values}
}

// paged appends the standard limit/offset fields every list command carries.
func paged(fields ...registry.Field) []registry.Field {
	return append(fields,
		num("limit", "Maximum rows to return (default 50, max 200)"),
		num("offset", "Rows to skip (default 0)"),
	)
}

func fields(fs ...registry.Field) []registry.Field {
	return fs
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func placeholderList(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// newRef generates a short human-readable reference number such as
// PO-1A2B3C4D.
func newRef(prefix string) string {
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}

// itemMaps extracts an array-of-objects argument, validating that it is
// non-empty and that every element is an object.
func itemMaps(args registry.Args, field string) ([]map[string]any, error) {
	raw := args.Slice(field)
	if len(raw) == 0 {
		return nil, &registry.ValidationError{Field: field, Reason: "must contain at least one item"}
	}
	out := make([]map[string]any, 0, len(raw))
	for i, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, &registry.ValidationError{Field: field, Reason: fmt.Sprintf("item %d must be an object", i+1)}
		}
		out = append(out, m)
	}
	return out, nil
}

// itemNum reads a numeric key from one item object.
func itemNum(field string, i int, m map[string]any, key string) (float64, error) {
	switch n := m[key].(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	}
	return 0, &registry.ValidationError{Field: field, Reason: fmt.Sprintf("item %d is missing numeric %q", i+1, key)}
}

// itemStr reads a string key from one item object.
func itemStr(field string, i int, m map[string]any, key string) (string, error) {
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", &registry.ValidationError{Field: field, Reason: fmt.Sprintf("item %d is missing %q", i+1, key)}
	}
	return s, nil
}
