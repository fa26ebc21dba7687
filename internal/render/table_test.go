package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ColumnsFromFirstRecord(t *testing.T) {
	records := []map[string]any{
		{"vendor_name": "Starbucks Coffee", "date": "2026-01-15"},
		{"vendor_name": "ACME", "date": "2026-02-01", "extra": "dropped"},
	}

	out := Table(records)

	assert.Contains(t, out, "vendor_name")
	assert.Contains(t, out, "date")
	assert.NotContains(t, out, "extra")
	assert.NotContains(t, out, "dropped")
}

func TestTable_AmountFormatting(t *testing.T) {
	records := []map[string]any{
		{"vendor_name": "Starbucks Coffee", "total_amount": "45.50"},
	}

	out := Table(records)

	assert.Contains(t, out, "TOTAL_AMOUNT ($)")
	assert.Contains(t, out, "$45.50")
}

func TestTable_AmountFromFloat(t *testing.T) {
	out := Table([]map[string]any{{"amount": 12.5}})

	assert.Contains(t, out, "$12.50")
}

func TestTable_UnparsableAmountLeftVerbatim(t *testing.T) {
	out := Table([]map[string]any{{"amount": "n/a today"}})

	assert.Contains(t, out, "n/a today")
	assert.NotContains(t, out, "$n/a")
}

func TestTable_MissingAndNullValues(t *testing.T) {
	records := []map[string]any{
		{"vendor_name": "ACME", "tax_id": nil},
		{"tax_id": "123"},
	}

	out := Table(records)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two rows

	// Null in the first row, missing vendor_name in the second.
	assert.Contains(t, lines[2], "N/A")
	assert.Contains(t, lines[3], "N/A")
	assert.Contains(t, lines[3], "123")
}

func TestTable_Empty(t *testing.T) {
	assert.Empty(t, Table(nil))
}

func TestStateBadge(t *testing.T) {
	assert.Equal(t, "✅ CONFIRM", StateBadge("CONFIRM"))
	assert.Equal(t, "SOMETHING_ELSE", StateBadge("SOMETHING_ELSE"))
}
