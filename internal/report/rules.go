package report

import (
	"fmt"

	"ledatools/internal/table"
)

// Report column names, in their fixed output order (Import is inserted after
// FileColumn, Flag is appended last).
const (
	ColFile          = "File"
	ColColumn        = "FileColumn"
	ColInferredType  = "InferredType"
	ColTop5Distinct  = "Top5UniqueValues"
	ColDistinctCount = "UniqueValuesCount"
	ColValueCount    = "ValueCount"
	ColEmptyValues   = "EmptyValues%"
	ColMaxCharLength = "MaxCharacterLength"
	ColImport        = "Import"
	ColFlag          = "Flag"
)

// FilePrefix is the leading marker on generated report files. Input files
// whose name starts with it are assumed to be earlier reports and are
// excluded from profiling.
const FilePrefix = "_FieldReport"

// Import column markers the user picks from
const (
	ImportYes = "Yes"
	ImportNo  = "No"
)

// Wildcard targets every column of the output table in a format rule
const Wildcard = "*"

// RuleKind distinguishes the two format rule variants
type RuleKind int

const (
	// RuleCell compares each cell against an operand
	RuleCell RuleKind = iota
	// RuleFormula evaluates a boolean spreadsheet formula per row
	RuleFormula
)

// Style is the visual payload of a format rule
type Style struct {
	BgColor   string
	FontColor string
}

// FormatRule is a declarative formatting instruction applied by the writer.
// Rules are applied in list order; later rules win on overlapping ranges.
// FirstRow and LastRow are 1-based worksheet rows; the defaults produced here
// cover the data rows and exclude the header.
type FormatRule struct {
	Columns  []string
	Kind     RuleKind
	Criteria string
	Value    string
	Formula  string
	Style    Style
	FirstRow int
	LastRow  int
}

// Rules derives the conditional formatting for an assembled report table:
// green for rows marked for import, red for rows marked against it, and an
// alternating full-row stripe driven by the Flag column. The stripe rule is
// omitted when the table has no Flag column.
func Rules(t *table.Table) []FormatRule {
	firstRow := 2
	lastRow := t.RowCount() + 1
	if lastRow < firstRow {
		lastRow = firstRow
	}

	rules := []FormatRule{
		{
			Columns:  []string{ColImport},
			Kind:     RuleCell,
			Criteria: "==",
			Value:    ImportYes,
			Style:    Style{BgColor: "#7CDA8E", FontColor: "#006100"},
			FirstRow: firstRow,
			LastRow:  lastRow,
		},
		{
			Columns:  []string{ColImport},
			Kind:     RuleCell,
			Criteria: "==",
			Value:    ImportNo,
			Style:    Style{BgColor: "#DD8989", FontColor: "#9C0006"},
			FirstRow: firstRow,
			LastRow:  lastRow,
		},
	}

	if flagIdx := t.ColumnIndex(ColFlag); flagIdx >= 0 {
		rules = append(rules, FormatRule{
			Columns:  []string{Wildcard},
			Kind:     RuleFormula,
			Formula:  fmt.Sprintf("=$%s%d=1", columnLetter(flagIdx), firstRow),
			Style:    Style{BgColor: "#C8E3EC"},
			FirstRow: firstRow,
			LastRow:  lastRow,
		})
	}
	return rules
}

// columnLetter converts a zero-based column index to its worksheet letter
func columnLetter(idx int) string {
	letter := ""
	for idx >= 0 {
		letter = string(rune('A'+idx%26)) + letter
		idx = idx/26 - 1
	}
	return letter
}
