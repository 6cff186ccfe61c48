package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
)

func TestApproveLeaveOnlyTouchesPendingRows(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{}

	_, err := invoke(t, reg, exec, "approve_leave", map[string]any{
		"id":      7.0,
		"remarks": "enjoy",
	})
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)

	c := exec.calls[0]
	assert.Equal(t,
		"UPDATE leave_requests SET status = ?, remarks = ? WHERE id = ? AND status = 'pending'",
		c.stmt)
	assert.Equal(t, []any{"approved", "enjoy", 7}, c.params)
}

func TestRejectLeaveAlreadyResolved(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{results: []*proxy.Result{{RowsAffected: 0}}}

	_, err := invoke(t, reg, exec, "reject_leave", map[string]any{"id": 7.0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ops.ErrNotFound))
}

func TestGeneratePayrollOneInsertPerStaff(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{}

	out, err := invoke(t, reg, exec, "generate_payroll", map[string]any{
		"month":     "2026-02",
		"staff_ids": []any{3.0, 5.0, 9.0},
	})
	require.NoError(t, err)
	require.Len(t, exec.calls, 3)

	for i, id := range []int{3, 5, 9} {
		assert.Equal(t, []any{"2026-02", id}, exec.calls[i].params)
	}
	assert.Contains(t, out.(string), "3 staff member(s)")
}

func TestGeneratePayrollRejectsEmptyAndNonNumericIds(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{}

	_, err := invoke(t, reg, exec, "generate_payroll", map[string]any{
		"month":     "2026-02",
		"staff_ids": []any{},
	})
	require.Error(t, err)

	_, err = invoke(t, reg, exec, "generate_payroll", map[string]any{
		"month":     "2026-02",
		"staff_ids": []any{3.0, "five"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 2")
	assert.Empty(t, exec.calls)
}
