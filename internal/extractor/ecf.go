package extractor

import (
	"fmt"
	"strings"

	"dirf-ecf-reconciliation/internal/domain"
)

// RaggedRowPolicy decides what happens to ECF rows whose field count differs
// from the first row.
type RaggedRowPolicy string

const (
	// RaggedExclude keeps mismatched rows out of the table and reports them
	// in BookkeepingTable.Mismatches.
	RaggedExclude RaggedRowPolicy = "exclude"
	// RaggedPad pads every row with "" up to the widest row in the file, so no
	// field is ever dropped.
	RaggedPad RaggedRowPolicy = "pad"
)

// ParseRaggedRowPolicy validates a policy name. Empty means RaggedExclude.
func ParseRaggedRowPolicy(s string) (RaggedRowPolicy, error) {
	switch p := RaggedRowPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return RaggedExclude, nil
	case RaggedExclude, RaggedPad:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported ragged row policy %q", s)
	}
}

const ecfDelimiter = "|"

// ParseECF splits every non-blank line on '|'. Column names are col_0..col_{k-1}
// where k is the width of the first row under RaggedExclude and the width of
// the widest row under RaggedPad.
func ParseECF(text string, policy RaggedRowPolicy) domain.BookkeepingTable {
	var rows []domain.BookkeepingRow
	for i, line := range splitLines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, domain.BookkeepingRow{
			Fields: strings.Split(line, ecfDelimiter),
			Line:   i + 1,
		})
	}

	var table domain.BookkeepingTable
	if len(rows) == 0 {
		return table
	}

	if policy == RaggedPad {
		width := 0
		for _, row := range rows {
			width = max(width, len(row.Fields))
		}
		for i := range rows {
			rows[i].Fields = padTo(rows[i].Fields, width)
		}
		table.Columns = columnNames(width)
		table.Rows = rows
		return table
	}

	width := len(rows[0].Fields)
	table.Columns = columnNames(width)
	for _, row := range rows {
		if len(row.Fields) != width {
			table.Mismatches = append(table.Mismatches, row)
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func columnNames(n int) []string {
	cols := make([]string, n)
	for i := range cols {
		cols[i] = fmt.Sprintf("col_%d", i)
	}
	return cols
}

func padTo(fields []string, width int) []string {
	if len(fields) == width {
		return fields
	}
	out := make([]string, width)
	copy(out, fields)
	return out
}
