package report

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledatools/internal/table"
)

// fakeLoader serves canned tables by base name and fails everything else
type fakeLoader struct {
	tables map[string]*table.Table
}

func (f *fakeLoader) Load(path string) (*table.Table, error) {
	if t, ok := f.tables[filepath.Base(path)]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unreadable: %s", path)
}

func singleColumnTable(colNames ...string) *table.Table {
	t := table.New()
	for _, name := range colNames {
		col := &table.Column{
			Name:    name,
			Storage: table.KindText,
			Values:  []table.Value{table.String("v1"), table.String("v2")},
		}
		if err := t.AddColumn(col); err != nil {
			panic(err)
		}
	}
	return t
}

var reportColumnOrder = []string{
	ColFile, ColColumn, ColImport, ColInferredType, ColTop5Distinct,
	ColDistinctCount, ColValueCount, ColEmptyValues, ColMaxCharLength, ColFlag,
}

func TestAssembleColumnOrder(t *testing.T) {
	loader := &fakeLoader{tables: map[string]*table.Table{
		"a.csv": singleColumnTable("id", "name"),
	}}
	asm := NewAssembler(loader, nil)

	tbl, failures := asm.Assemble([]string{"a.csv"})
	require.Empty(t, failures)

	assert.Equal(t, reportColumnOrder, tbl.Names())
	// Import sits at index 2, right after FileColumn.
	assert.Equal(t, 2, tbl.ColumnIndex(ColImport))
	assert.Equal(t, 2, tbl.RowCount())
}

func TestAssembleImportColumnIsEmpty(t *testing.T) {
	loader := &fakeLoader{tables: map[string]*table.Table{
		"a.csv": singleColumnTable("id"),
	}}
	tbl, _ := NewAssembler(loader, nil).Assemble([]string{"a.csv"})

	for _, v := range tbl.Column(ColImport).Values {
		assert.True(t, v.IsNull())
	}
}

func TestAssembleGroupFlagParity(t *testing.T) {
	// Three files contributing 2, 2 and 1 rows: flags alternate per file,
	// starting at 0.
	loader := &fakeLoader{tables: map[string]*table.Table{
		"f1.csv": singleColumnTable("a", "b"),
		"f2.csv": singleColumnTable("c", "d"),
		"f3.csv": singleColumnTable("e"),
	}}
	tbl, failures := NewAssembler(loader, nil).Assemble([]string{"f1.csv", "f2.csv", "f3.csv"})
	require.Empty(t, failures)
	require.Equal(t, 5, tbl.RowCount())

	var flags []float64
	for _, v := range tbl.Column(ColFlag).Values {
		f, ok := v.Float()
		require.True(t, ok)
		flags = append(flags, f)
	}
	assert.Equal(t, []float64{0, 0, 1, 1, 0}, flags)
}

func TestAssembleSkipsEarlierReports(t *testing.T) {
	loader := &fakeLoader{tables: map[string]*table.Table{
		"a.csv": singleColumnTable("id"),
	}}
	tbl, failures := NewAssembler(loader, nil).Assemble([]string{
		"_FieldReport.xlsx",
		"_fieldreport_2.xlsx",
		"a.csv",
	})

	// The report files are not even handed to the loader, so they cannot
	// show up as failures.
	assert.Empty(t, failures)
	require.Equal(t, 1, tbl.RowCount())
	assert.Equal(t, "a.csv", tbl.Column(ColFile).Values[0].String())
}

func TestAssembleSkipsUnreadableFilesAndContinues(t *testing.T) {
	loader := &fakeLoader{tables: map[string]*table.Table{
		"good.csv": singleColumnTable("id"),
	}}
	tbl, failures := NewAssembler(loader, nil).Assemble([]string{"bad.csv", "good.csv"})

	require.Len(t, failures, 1)
	assert.Equal(t, "bad.csv", failures[0].Path)
	assert.Equal(t, 1, tbl.RowCount())
}

func TestAssembleAllFilesFailYieldsEmptyTable(t *testing.T) {
	loader := &fakeLoader{tables: map[string]*table.Table{}}
	tbl, failures := NewAssembler(loader, nil).Assemble([]string{"x.csv", "y.csv"})

	require.NotNil(t, tbl)
	assert.Equal(t, reportColumnOrder, tbl.Names())
	assert.Equal(t, 0, tbl.RowCount())
	assert.Len(t, failures, 2)
}

func TestAssembleEmptyInput(t *testing.T) {
	tbl, failures := NewAssembler(&fakeLoader{}, nil).Assemble(nil)

	require.NotNil(t, tbl)
	assert.Equal(t, 0, tbl.RowCount())
	assert.Empty(t, failures)
}

func TestAssembleIsDeterministic(t *testing.T) {
	loader := &fakeLoader{tables: map[string]*table.Table{
		"f1.csv": singleColumnTable("a", "b"),
		"f2.csv": singleColumnTable("c"),
	}}
	asm := NewAssembler(loader, nil)
	paths := []string{"f1.csv", "f2.csv"}

	first, _ := asm.Assemble(paths)
	second, _ := asm.Assemble(paths)

	require.Equal(t, first.Names(), second.Names())
	require.Equal(t, first.RowCount(), second.RowCount())
	for i := range first.Columns {
		assert.True(t, reflect.DeepEqual(first.Columns[i].Values, second.Columns[i].Values),
			"column %s differs between runs", first.Columns[i].Name)
	}
}

func TestAssembleMetricsLandInRightColumns(t *testing.T) {
	src := table.New()
	require.NoError(t, src.AddColumn(&table.Column{
		Name:    "Active",
		Storage: table.KindText,
		Values:  []table.Value{table.String("true"), table.String("false"), table.Null()},
	}))
	loader := &fakeLoader{tables: map[string]*table.Table{"flags.csv": src}}

	tbl, _ := NewAssembler(loader, nil).Assemble([]string{filepath.Join("dir", "flags.csv")})
	require.Equal(t, 1, tbl.RowCount())

	assert.Equal(t, "flags.csv", tbl.Column(ColFile).Values[0].String())
	assert.Equal(t, "Active", tbl.Column(ColColumn).Values[0].String())
	assert.Equal(t, "Boolean", tbl.Column(ColInferredType).Values[0].String())
	assert.Equal(t, "true; false", tbl.Column(ColTop5Distinct).Values[0].String())

	distinct, _ := tbl.Column(ColDistinctCount).Values[0].Float()
	values, _ := tbl.Column(ColValueCount).Values[0].Float()
	empty, _ := tbl.Column(ColEmptyValues).Values[0].Float()
	maxLen, _ := tbl.Column(ColMaxCharLength).Values[0].Float()

	assert.Equal(t, 2.0, distinct)
	assert.Equal(t, 2.0, values)
	assert.Equal(t, 0.33, empty)
	assert.Equal(t, 5.0, maxLen)
}

func TestIsReportFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"_FieldReport.xlsx", true},
		{"_fieldreport_3.xlsx", true},
		{filepath.Join("some", "dir", "_FIELDREPORT.xlsx"), true},
		{"FieldReport.xlsx", false},
		{"data.csv", false},
		{"_Field.xlsx", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsReportFile(tt.path), tt.path)
	}
}
