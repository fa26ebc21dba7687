// Package render formats interpreted replies for Telegram: workflow state
// badges and monospace record tables.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

const placeholder = "N/A"

// amountColumns get currency formatting and right alignment.
var amountColumns = map[string]bool{
	"amount":       true,
	"total_amount": true,
}

// Table renders records as a monospace text table. Columns are taken from
// the first record only; keys that appear in later records but not in the
// first are not rendered. Callers should wrap the result in a code block.
func Table(records []map[string]any) string {
	if len(records) == 0 {
		return ""
	}

	columns := make([]string, 0, len(records[0]))
	for key := range records[0] {
		columns = append(columns, key)
	}
	// JSON object order is not recoverable from the decoded map, so the
	// column order is made deterministic instead.
	sort.Strings(columns)

	header := make([]string, len(columns))
	widths := make([]int, len(columns))
	for i, col := range columns {
		header[i] = headerLabel(col)
		widths[i] = len(header[i])
	}

	rows := make([][]string, len(records))
	for r, record := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = cellValue(col, record)
			if len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		rows[r] = row
	}

	var b strings.Builder
	writeRow(&b, header, columns, widths)
	writeSeparator(&b, widths)
	for _, row := range rows {
		writeRow(&b, row, columns, widths)
	}
	return b.String()
}

func headerLabel(col string) string {
	if amountColumns[col] {
		// Emphasized: currency columns stand out in the header row.
		return strings.ToUpper(col) + " ($)"
	}
	return col
}

// cellValue formats one cell. Missing and null values render as a
// placeholder; amount columns are formatted as currency when they parse.
func cellValue(col string, record map[string]any) string {
	v, ok := record[col]
	if !ok || v == nil {
		return placeholder
	}

	if amountColumns[col] {
		if d, ok := parseAmount(v); ok {
			return "$" + d.StringFixed(2)
		}
	}

	s := fmt.Sprintf("%v", v)
	if s == "" {
		return placeholder
	}
	return s
}

func parseAmount(v any) (decimal.Decimal, bool) {
	switch a := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimPrefix(a, "$"))
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(a), true
	default:
		return decimal.Zero, false
	}
}

func writeRow(b *strings.Builder, cells, columns []string, widths []int) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if amountColumns[columns[i]] {
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
		}
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
}
