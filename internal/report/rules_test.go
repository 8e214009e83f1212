package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledatools/internal/table"
)

func tableWithColumns(rowCount int, names ...string) *table.Table {
	t := table.New()
	for _, name := range names {
		values := make([]table.Value, rowCount)
		for i := range values {
			values[i] = table.Null()
		}
		if err := t.AddColumn(&table.Column{Name: name, Values: values}); err != nil {
			panic(err)
		}
	}
	return t
}

func TestRulesForFullReport(t *testing.T) {
	tbl := tableWithColumns(4,
		ColFile, ColColumn, ColImport, ColInferredType, ColTop5Distinct,
		ColDistinctCount, ColValueCount, ColEmptyValues, ColMaxCharLength, ColFlag)

	rules := Rules(tbl)
	require.Len(t, rules, 3)

	yes := rules[0]
	assert.Equal(t, RuleCell, yes.Kind)
	assert.Equal(t, []string{ColImport}, yes.Columns)
	assert.Equal(t, "==", yes.Criteria)
	assert.Equal(t, ImportYes, yes.Value)
	assert.Equal(t, Style{BgColor: "#7CDA8E", FontColor: "#006100"}, yes.Style)
	assert.Equal(t, 2, yes.FirstRow)
	assert.Equal(t, 5, yes.LastRow) // 4 data rows below the header

	no := rules[1]
	assert.Equal(t, ImportNo, no.Value)
	assert.Equal(t, Style{BgColor: "#DD8989", FontColor: "#9C0006"}, no.Style)

	stripe := rules[2]
	assert.Equal(t, RuleFormula, stripe.Kind)
	assert.Equal(t, []string{Wildcard}, stripe.Columns)
	// Flag is the 10th column, letter J, anchored to the first data row.
	assert.Equal(t, "=$J2=1", stripe.Formula)
	assert.Equal(t, Style{BgColor: "#C8E3EC"}, stripe.Style)
}

func TestRulesOmitStripeWithoutFlagColumn(t *testing.T) {
	tbl := tableWithColumns(3, ColFile, ColColumn, ColImport)

	rules := Rules(tbl)
	require.Len(t, rules, 2)
	for _, r := range rules {
		assert.Equal(t, RuleCell, r.Kind)
	}
}

func TestRulesOnEmptyTable(t *testing.T) {
	tbl := tableWithColumns(0, ColImport, ColFlag)

	rules := Rules(tbl)
	require.Len(t, rules, 3)
	// Row ranges stay well-formed even with no data rows.
	for _, r := range rules {
		assert.GreaterOrEqual(t, r.LastRow, r.FirstRow)
	}
}

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		idx      int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{9, "J"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, columnLetter(tt.idx), "index %d", tt.idx)
	}
}
