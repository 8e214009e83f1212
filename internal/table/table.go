// Package table holds the in-memory, column-oriented data model shared by the
// loader, the profiler and the report writer. All columns within a table have
// the same row count.
package table

import (
	"fmt"
	"strings"
)

// Column is an ordered sequence of scalar values under a name
type Column struct {
	Name    string
	Storage Kind
	Values  []Value
}

// Len returns the number of values, nulls included
func (c *Column) Len() int {
	return len(c.Values)
}

// NonNull returns the non-null values in order
func (c *Column) NonNull() []Value {
	out := make([]Value, 0, len(c.Values))
	for _, v := range c.Values {
		if !v.IsNull() {
			out = append(out, v)
		}
	}
	return out
}

// Table is an ordered sequence of named columns sharing one row count
type Table struct {
	Columns []*Column
}

// New creates an empty table
func New() *Table {
	return &Table{}
}

// RowCount returns the shared row count of all columns
func (t *Table) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Columns)
}

// Names returns the column names in order
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the index of the named column, matching
// case-insensitively, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c.Name, name) {
			return i
		}
	}
	return -1
}

// Column returns the named column (case-insensitive), or nil when absent
func (t *Table) Column(name string) *Column {
	if i := t.ColumnIndex(name); i >= 0 {
		return t.Columns[i]
	}
	return nil
}

// AddColumn appends a column, enforcing the shared row count
func (t *Table) AddColumn(c *Column) error {
	return t.InsertColumn(len(t.Columns), c)
}

// InsertColumn inserts a column at the given position, enforcing the shared
// row count.
func (t *Table) InsertColumn(idx int, c *Column) error {
	if idx < 0 || idx > len(t.Columns) {
		return fmt.Errorf("column index %d out of range [0,%d]", idx, len(t.Columns))
	}
	if len(t.Columns) > 0 && len(c.Values) != t.RowCount() {
		return fmt.Errorf("column %s has %d rows, table has %d", c.Name, len(c.Values), t.RowCount())
	}
	t.Columns = append(t.Columns, nil)
	copy(t.Columns[idx+1:], t.Columns[idx:])
	t.Columns[idx] = c
	return nil
}

// AppendRow appends one value per column, in column order
func (t *Table) AppendRow(values []Value) error {
	if len(values) != len(t.Columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.Columns))
	}
	for i, c := range t.Columns {
		c.Values = append(c.Values, values[i])
	}
	return nil
}

// Row returns the values of one row in column order
func (t *Table) Row(idx int) []Value {
	row := make([]Value, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = c.Values[idx]
	}
	return row
}
