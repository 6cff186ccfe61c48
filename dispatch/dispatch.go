// Package dispatch routes a command invocation through lookup, validation,
// and the bound handler, wrapping every outcome in a uniform Envelope. The
// dispatcher never lets an error or panic escape its boundary.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

// ErrorKind tags the failure taxonomy on an Envelope.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindUnknownCommand ErrorKind = "unknown_command"
	KindNotFound       ErrorKind = "not_found"
	KindRemote         ErrorKind = "remote"
	KindPartialFailure ErrorKind = "partial_failure"
	KindInternal       ErrorKind = "internal"
)

// Envelope is the uniform per-invocation result: a payload on success, a
// tagged human-readable message on failure.
type Envelope struct {
	Success bool      `json:"success"`
	Payload string    `json:"payload,omitempty"`
	Kind    ErrorKind `json:"kind,omitempty"`
	Message string    `json:"message,omitempty"`
}

type Dispatcher struct {
	registry *registry.Registry
	exec     proxy.Executor
}

func New(reg *registry.Registry, exec proxy.Executor) *Dispatcher {
	return &Dispatcher{registry: reg, exec: exec}
}

// Dispatch looks up the named command, validates raw arguments against its
// contract, and invokes the handler. Validation happens before any statement
// is constructed; handler errors and panics become failure envelopes.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, raw map[string]any) (env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			env = failure(KindInternal, fmt.Sprintf("command %s panicked: %v", name, r))
		}
	}()

	cmd, err := d.registry.Lookup(name)
	if err != nil {
		return failure(KindUnknownCommand, err.Error())
	}

	if raw == nil {
		raw = map[string]any{}
	}
	args, err := cmd.Validate(raw)
	if err != nil {
		return failure(KindValidation, err.Error())
	}

	result, err := cmd.Handler(ctx, d.exec, args)
	if err != nil {
		return classify(err)
	}

	payload, err := render(result)
	if err != nil {
		return failure(KindInternal, fmt.Sprintf("failed to encode result: %v", err))
	}
	return Envelope{Success: true, Payload: payload}
}

func render(result any) (string, error) {
	switch v := result.(type) {
	case nil:
		return "OK", nil
	case string:
		return v, nil
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func classify(err error) Envelope {
	var pf *ops.PartialFailure
	if errors.As(err, &pf) {
		return failure(KindPartialFailure, err.Error())
	}
	var ve *registry.ValidationError
	if errors.As(err, &ve) {
		return failure(KindValidation, err.Error())
	}
	if errors.Is(err, ops.ErrNotFound) {
		return failure(KindNotFound, err.Error())
	}
	var re *proxy.RemoteExecutionError
	if errors.As(err, &re) {
		return failure(KindRemote, err.Error())
	}
	return failure(KindInternal, err.Error())
}

func failure(kind ErrorKind, message string) Envelope {
	return Envelope{Kind: kind, Message: message}
}
