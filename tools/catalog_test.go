package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/proxy"
	"github.com/schooldesk/mcp-school/registry"
)

type call struct {
	stmt   string
	params []any
}

// fakeExec records every call and replays queued results, answering with a
// generic write result once the queue is empty. failAt (1-based) makes that
// call fail instead.
type fakeExec struct {
	calls   []call
	results []*proxy.Result
	failAt  int
}

func (f *fakeExec) Execute(_ context.Context, stmt string, params []any) (*proxy.Result, error) {
	f.calls = append(f.calls, call{stmt: stmt, params: params})
	if f.failAt > 0 && len(f.calls) == f.failAt {
		return nil, &proxy.RemoteExecutionError{Message: "boom"}
	}
	if len(f.results) > 0 {
		r := f.results[0]
		f.results = f.results[1:]
		return r, nil
	}
	return &proxy.Result{RowsAffected: 1, LastInsertID: 1}, nil
}

func buildRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register(All()...))
	return reg
}

// synthesize builds a raw argument map covering every field of a contract
// with a type-correct value.
func synthesize(cmd *registry.Command) map[string]any {
	raw := map[string]any{}
	for _, f := range cmd.Fields {
		switch f.Type {
		case registry.String:
			if len(f.Enum) > 0 {
				raw[f.Name] = f.Enum[0]
			} else {
				raw[f.Name] = "2026-02-01"
			}
		case registry.Number:
			raw[f.Name] = 1.0
		case registry.Boolean:
			raw[f.Name] = true
		case registry.Array:
			raw[f.Name] = []any{}
		}
	}
	return raw
}

func TestCatalogRegistersCleanly(t *testing.T) {
	reg := buildRegistry(t)
	assert.GreaterOrEqual(t, reg.Len(), 85, "catalog lost commands")
}

func TestEveryCommandValidatesWithAllFields(t *testing.T) {
	for _, cmd := range buildRegistry(t).Commands() {
		t.Run(cmd.Name, func(t *testing.T) {
			_, err := cmd.Validate(synthesize(cmd))
			assert.NoError(t, err)
		})
	}
}

func TestOmittingAnyRequiredFieldFailsNamingIt(t *testing.T) {
	for _, cmd := range buildRegistry(t).Commands() {
		for _, f := range cmd.Fields {
			if !f.Required {
				continue
			}
			t.Run(cmd.Name+"/"+f.Name, func(t *testing.T) {
				raw := synthesize(cmd)
				delete(raw, f.Name)

				_, err := cmd.Validate(raw)
				require.Error(t, err)

				var ve *registry.ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, f.Name, ve.Field)
			})
		}
	}
}

func TestEveryCommandHasDescription(t *testing.T) {
	for _, cmd := range buildRegistry(t).Commands() {
		assert.NotEmpty(t, cmd.Description, "command %s has no description", cmd.Name)
		for _, f := range cmd.Fields {
			assert.NotEmpty(t, f.Description, "field %s.%s has no description", cmd.Name, f.Name)
		}
	}
}

func TestListCommandsDeclarePagination(t *testing.T) {
	for _, cmd := range buildRegistry(t).Commands() {
		if len(cmd.Name) < 5 || cmd.Name[:5] != "list_" {
			continue
		}
		names := map[string]bool{}
		for _, f := range cmd.Fields {
			names[f.Name] = true
		}
		assert.True(t, names["limit"], "command %s is missing limit", cmd.Name)
		assert.True(t, names["offset"], "command %s is missing offset", cmd.Name)
	}
}

// invoke validates raw args against the named command and runs its handler.
func invoke(t *testing.T, reg *registry.Registry, exec proxy.Executor, name string, raw map[string]any) (any, error) {
	t.Helper()
	cmd, err := reg.Lookup(name)
	require.NoError(t, err)
	args, err := cmd.Validate(raw)
	require.NoError(t, err)
	return cmd.Handler(context.Background(), exec, args)
}
