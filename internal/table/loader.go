package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	apperrors "ledatools/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// dateLayouts are the formats recognized when sniffing a column's storage
// kind. Excel's default short date renders as "1-2-06" through excelize.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
	"1-2-06",
	"01-02-06",
	time.RFC3339,
}

// LoadFile reads the first (or only) sheet of a tabular file into a table.
// CSV and Excel formats are supported, chosen by extension. Unrecoverable
// parse failures come back as a load error so the caller can skip the file
// and continue the batch.
func LoadFile(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xlsm", ".xls":
		return loadExcelSheet(path, "")
	default:
		return nil, apperrors.NewLoadError("load file", path, fmt.Errorf("unsupported extension %q", filepath.Ext(path)))
	}
}

// LoadSheets reads every sheet of a file into a table keyed by sheet name.
// A CSV file yields a single entry keyed by its base name.
func LoadSheets(path string) (map[string]*Table, error) {
	if strings.ToLower(filepath.Ext(path)) == ".csv" {
		t, err := loadCSV(path)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return map[string]*Table{name: t}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("open workbook", path, err)
	}
	defer f.Close()

	sheets := make(map[string]*Table)
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, apperrors.NewLoadError("read sheet", path, err)
		}
		if len(rows) == 0 {
			continue
		}
		sheets[sheet] = buildTable(rows)
	}
	if len(sheets) == 0 {
		return nil, apperrors.NewLoadError("read workbook", path, fmt.Errorf("no non-empty sheets"))
	}
	return sheets, nil
}

// loadCSV reads a CSV file, tolerating Windows-1252 encoded input and ragged
// rows the way desktop spreadsheet exports tend to look.
func loadCSV(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("open file", path, err)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, apperrors.NewLoadError("decode file", path, err)
		}
		data = decoded
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.NewLoadError("parse csv", path, err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewLoadError("parse csv", path, fmt.Errorf("empty file"))
	}
	return buildTable(records), nil
}

// loadExcelSheet reads one sheet of a workbook; an empty sheet name means the
// first sheet in the workbook.
func loadExcelSheet(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError("open workbook", path, err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, apperrors.NewLoadError("read workbook", path, fmt.Errorf("workbook has no sheets"))
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewLoadError("read sheet", path, err)
	}
	if len(rows) == 0 {
		// An empty sheet is a valid, empty table; it simply contributes
		// no columns to the batch.
		return New(), nil
	}
	return buildTable(rows), nil
}

// buildTable converts raw string records (header row first) into a table,
// padding ragged rows with nulls and sniffing each column's storage kind.
func buildTable(records [][]string) *Table {
	header := records[0]
	width := len(header)
	for _, row := range records[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	t := New()
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		col := &Column{Name: name, Storage: KindText, Values: make([]Value, 0, len(records)-1)}
		for _, row := range records[1:] {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if strings.TrimSpace(cell) == "" {
				col.Values = append(col.Values, Null())
			} else {
				col.Values = append(col.Values, String(cell))
			}
		}
		col.Storage = sniffStorage(col.Values)
		if col.Storage == KindNumber {
			promoteNumbers(col)
		}
		t.Columns = append(t.Columns, col)
	}
	return t
}

// sniffStorage classifies a freshly loaded column's storage kind: number when
// every non-null cell parses as a float, time when every non-null cell parses
// under a known date layout, text otherwise. All-null columns stay text.
func sniffStorage(values []Value) Kind {
	numeric, dated, seen := true, true, false
	for _, v := range values {
		if v.IsNull() {
			continue
		}
		seen = true
		s := strings.TrimSpace(v.String())
		if numeric {
			if _, err := strconv.ParseFloat(s, 64); err != nil {
				numeric = false
			}
		}
		if dated {
			if _, ok := parseDate(s); !ok {
				dated = false
			}
		}
		if !numeric && !dated {
			return KindText
		}
	}
	switch {
	case !seen:
		return KindText
	case numeric:
		return KindNumber
	case dated:
		return KindTime
	}
	return KindText
}

// promoteNumbers replaces string payloads with parsed floats once a column's
// storage kind is known to be numeric.
func promoteNumbers(col *Column) {
	for i, v := range col.Values {
		if v.IsNull() {
			continue
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64); err == nil {
			col.Values[i] = Number(f)
		}
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
