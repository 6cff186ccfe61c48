// Package registry holds the command catalog: each command declares its name,
// description, and typed input contract once, and that single declaration
// drives both argument validation and the advertised tool schema.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/schooldesk/mcp-school/proxy"
)

// FieldType is the declared type of one input field.
type FieldType string

const (
	String  FieldType = "string"
	Number  FieldType = "number"
	Boolean FieldType = "boolean"
	Array   FieldType = "array"
)

// Field describes one input field of a command contract.
type Field struct {
	Name        string
	Description string
	Type        FieldType
	Required    bool
	Default     any
	Enum        []string
}

// HandlerFunc is a command implementation. It receives validated, typed
// arguments and the executor to run statements against. It returns either a
// string summary or a structured value to be serialized for the caller.
type HandlerFunc func(ctx context.Context, exec proxy.Executor, args Args) (any, error)

// Command is one registered command: contract plus handler.
type Command struct {
	Name        string
	Description string
	Fields      []Field
	Handler     HandlerFunc
}

// ErrUnknownCommand is returned when a requested command name is not
// registered.
var ErrUnknownCommand = errors.New("unknown command")

// Registry maps command names to their contracts. Commands are registered at
// process start and never mutated afterwards.
type Registry struct {
	byName map[string]*Command
	names  []string
}

func New() *Registry {
	return &Registry{byName: map[string]*Command{}}
}

// Register adds commands, rejecting duplicate names.
func (r *Registry) Register(cmds ...Command) error {
	for i := range cmds {
		cmd := cmds[i]
		if cmd.Name == "" {
			return fmt.Errorf("command with empty name")
		}
		if cmd.Handler == nil {
			return fmt.Errorf("command %s has no handler", cmd.Name)
		}
		if _, exists := r.byName[cmd.Name]; exists {
			return fmt.Errorf("duplicate command name: %s", cmd.Name)
		}
		r.byName[cmd.Name] = &cmd
		r.names = append(r.names, cmd.Name)
	}
	return nil
}

// Lookup returns the command for a name, or ErrUnknownCommand.
func (r *Registry) Lookup(name string) (*Command, error) {
	cmd, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.names)
}
