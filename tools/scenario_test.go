package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/dispatch"
	"github.com/schooldesk/mcp-school/proxy"
)

// TestStudentLifecycle walks a record through the full dispatcher path:
// create, read, delete, and a read that must report the record gone.
func TestStudentLifecycle(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{results: []*proxy.Result{
		{RowsAffected: 1, LastInsertID: 42},
		{Rows: []map[string]any{{"id": float64(42), "name": "Jane", "mobile_no": "123"}}},
		{RowsAffected: 1},
		{Rows: []map[string]any{}},
	}}
	d := dispatch.New(reg, exec)
	ctx := context.Background()

	env := d.Dispatch(ctx, "add_student", map[string]any{
		"name":      "Jane",
		"mobile_no": "123",
		"date":      "2026-02-01",
	})
	require.True(t, env.Success, env.Message)
	assert.Contains(t, env.Payload, "42")

	env = d.Dispatch(ctx, "get_student", map[string]any{"id": 42.0})
	require.True(t, env.Success, env.Message)
	assert.Contains(t, env.Payload, "Jane")

	env = d.Dispatch(ctx, "delete_student", map[string]any{"id": 42.0})
	require.True(t, env.Success, env.Message)

	env = d.Dispatch(ctx, "get_student", map[string]any{"id": 42.0})
	require.False(t, env.Success)
	assert.Equal(t, dispatch.KindNotFound, env.Kind)
	assert.Contains(t, env.Message, "42")

	require.Len(t, exec.calls, 4)
	assert.Equal(t, "INSERT INTO students (name, mobile_no, date) VALUES (?, ?, ?)", exec.calls[0].stmt)
	assert.Equal(t, "SELECT * FROM students WHERE id = ? LIMIT 1", exec.calls[1].stmt)
	assert.Equal(t, "DELETE FROM students WHERE id = ?", exec.calls[2].stmt)
}
