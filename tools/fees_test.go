package tools

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schooldesk/mcp-school/ops"
)

func TestCollectFeePaymentGeneratesReceipt(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{}

	out, err := invoke(t, reg, exec, "collect_fee_payment", map[string]any{
		"allocation_id": 5.0,
		"amount":        1200.0,
		"payment_date":  "2026-02-01",
	})
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)

	c := exec.calls[0]
	assert.Equal(t,
		"INSERT INTO fee_payments (allocation_id, amount, payment_date, method, receipt_no) VALUES (?, ?, ?, ?, ?)",
		c.stmt)
	assert.Equal(t, "cash", c.params[3], "method default must apply")
	assert.True(t, strings.HasPrefix(c.params[4].(string), "RCPT-"))
	assert.Contains(t, out.(string), "1200.00")
}

func TestCollectBulkFeesSharesOneReceipt(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{}

	out, err := invoke(t, reg, exec, "collect_bulk_fees", map[string]any{
		"payment_date": "2026-02-01",
		"items": []any{
			map[string]any{"allocation_id": 1.0, "amount": 100.0},
			map[string]any{"allocation_id": 2.0, "amount": 250.0},
			map[string]any{"allocation_id": 3.0, "amount": 50.0},
		},
	})
	require.NoError(t, err)
	require.Len(t, exec.calls, 3)

	receipt := exec.calls[0].params[4].(string)
	assert.True(t, strings.HasPrefix(receipt, "RCPT-"))
	for i, c := range exec.calls {
		assert.Equal(t, receipt, c.params[4], "payment %d must share the receipt", i+1)
	}
	assert.Equal(t, 1, exec.calls[0].params[0])
	assert.Equal(t, 2, exec.calls[1].params[0])
	assert.Equal(t, 3, exec.calls[2].params[0])

	assert.Contains(t, out.(string), "3 payment(s)")
	assert.Contains(t, out.(string), "400.00")
}

func TestCollectBulkFeesPartialFailure(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{failAt: 2}

	_, err := invoke(t, reg, exec, "collect_bulk_fees", map[string]any{
		"payment_date": "2026-02-01",
		"items": []any{
			map[string]any{"allocation_id": 1.0, "amount": 100.0},
			map[string]any{"allocation_id": 2.0, "amount": 250.0},
		},
	})
	require.Error(t, err)

	var pf *ops.PartialFailure
	require.True(t, errors.As(err, &pf))
	assert.Equal(t, []string{"payment 1"}, pf.Completed)
}

func TestCollectBulkFeesRejectsBadItemsBeforeAnyInsert(t *testing.T) {
	reg := buildRegistry(t)
	exec := &fakeExec{}

	_, err := invoke(t, reg, exec, "collect_bulk_fees", map[string]any{
		"payment_date": "2026-02-01",
		"items": []any{
			map[string]any{"allocation_id": 1.0, "amount": 100.0},
			map[string]any{"allocation_id": 2.0},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount")
	assert.Empty(t, exec.calls)
}
