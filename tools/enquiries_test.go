package tools

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/ops"
	"github.com/schooldesk/mcp-school/proxy"
)

func TestConvertEnquirySequencing(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{results: []*proxy.Result{
		{Rows: []map[string]any{{
			"id":        float64(5),
			"name":      "Jane",
			"mobile_no": "123",
			"email":     "jane@example.com",
			"branch_id": float64(2),
		}}},
		{RowsAffected: 1, LastInsertID: 77},
	}}

	out, err := invoke(t, reg, exec, "convert_enquiry", map[string]any{
		"id":             5.0,
		"admission_date": "2026-02-01",
		"class_id":       3.0,
	})
	require.NoError(t, err)
	require.Len(t, exec.calls, 3)

	assert.Equal(t, "SELECT * FROM enquiries WHERE id = ? LIMIT 1", exec.calls[0].stmt)

	insert := exec.calls[1]
	assert.True(t, strings.HasPrefix(insert.stmt, "INSERT INTO students "))
	assert.Equal(t, "Jane", insert.params[0])
	assert.Equal(t, "123", insert.params[1])
	assert.Equal(t, "2026-02-01", insert.params[2])

	assert.Equal(t, "UPDATE enquiries SET status = 'converted' WHERE id = ?", exec.calls[2].stmt)
	assert.Contains(t, out.(string), "77")
}

func TestConvertEnquiryNotFound(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{results: []*proxy.Result{{Rows: []map[string]any{}}}}

	_, err := invoke(t, reg, exec, "convert_enquiry", map[string]any{
		"id":             99.0,
		"admission_date": "2026-02-01",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ops.ErrNotFound))
	assert.Len(t, exec.calls, 1, "nothing must be written for a missing enquiry")
}

func TestConvertEnquiryPartialFailure(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{
		results: []*proxy.Result{
			{Rows: []map[string]any{{"name": "Jane", "mobile_no": "123"}}},
			{RowsAffected: 1, LastInsertID: 77},
		},
		failAt: 3,
	}

	_, err := invoke(t, reg, exec, "convert_enquiry", map[string]any{
		"id":             5.0,
		"admission_date": "2026-02-01",
	})
	require.Error(t, err)

	var pf *ops.PartialFailure
	require.True(t, errors.As(err, &pf))
	assert.Contains(t, pf.Completed, "student insert")
}
