// Package profile implements per-column type inference and descriptive
// metrics for the field report.
package profile

import (
	"math"
	"sort"
	"strings"

	"ledatools/internal/table"
)

// DataType is the inferred semantic type of a column
type DataType string

const (
	TypeBoolean DataType = "Boolean"
	TypeNumeric DataType = "Numeric"
	TypeDate    DataType = "Date"
	TypeText    DataType = "Text"
)

// Top5Separator joins the most frequent distinct values in the report
const Top5Separator = "; "

// booleanVocabularies are the value sets whose members, after trimming and
// lower-casing, mark a column as Boolean regardless of its storage kind.
var booleanVocabularies = []map[string]struct{}{
	{"true": {}, "false": {}},
	{"1": {}, "0": {}},
	{"yes": {}, "no": {}},
}

// Metrics is the per-column bundle of the field report. Source file, column
// name and the user-facing flag columns are attached by the assembler.
type Metrics struct {
	InferredType  DataType
	Top5Distinct  string
	DistinctCount int
	ValueCount    int
	EmptyFraction float64
	MaxCharLength int
}

// InferType classifies a column's semantic type from its non-null values and
// its storage kind. Content is checked before storage: a column of literal
// "true"/"false" strings is Boolean even when stored as text. An empty value
// set never classifies as Boolean; it falls through to the storage checks.
func InferType(nonNull []table.Value, storage table.Kind) DataType {
	distinct := make(map[string]struct{})
	for _, v := range nonNull {
		distinct[strings.ToLower(strings.TrimSpace(v.String()))] = struct{}{}
	}

	if len(distinct) > 0 && matchesBooleanVocabulary(distinct) {
		return TypeBoolean
	}
	switch storage {
	case table.KindNumber:
		return TypeNumeric
	case table.KindTime:
		return TypeDate
	}
	return TypeText
}

func matchesBooleanVocabulary(distinct map[string]struct{}) bool {
	for _, vocab := range booleanVocabularies {
		subset := true
		for s := range distinct {
			if _, ok := vocab[s]; !ok {
				subset = false
				break
			}
		}
		if subset {
			return true
		}
	}
	return false
}

// Column computes the full metric bundle for one column. It never fails: a
// zero-row or all-null column degrades every metric to its zero value.
func Column(col *table.Column) Metrics {
	total := col.Len()
	nonNull := col.NonNull()
	nullCount := total - len(nonNull)

	m := Metrics{
		InferredType:  InferType(nonNull, col.Storage),
		Top5Distinct:  strings.Join(topDistinct(nonNull, 5), Top5Separator),
		ValueCount:    len(nonNull),
		DistinctCount: distinctCount(nonNull),
	}
	if total > 0 {
		m.EmptyFraction = math.Round(float64(nullCount)/float64(total)*100) / 100
	}
	for _, v := range nonNull {
		if n := len(v.String()); n > m.MaxCharLength {
			m.MaxCharLength = n
		}
	}
	return m
}

// topDistinct ranks the stringified non-null values by frequency, breaking
// ties by first appearance, and returns up to limit of them.
func topDistinct(nonNull []table.Value, limit int) []string {
	counts := make(map[string]int)
	var order []string
	for _, v := range nonNull {
		s := v.String()
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}

	// order is already first-seen sorted, so a stable sort by count keeps
	// the encounter order among equals.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > limit {
		order = order[:limit]
	}
	return order
}

func distinctCount(nonNull []table.Value) int {
	seen := make(map[string]struct{}, len(nonNull))
	for _, v := range nonNull {
		seen[v.String()] = struct{}{}
	}
	return len(seen)
}
