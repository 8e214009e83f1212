// Package exporter writes tables to spreadsheet files. The xlsx writer
// consumes the declarative style, validation and formatting instructions
// produced by the report package and translates them to excelize calls.
package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "ledatools/internal/errors"
	"ledatools/internal/report"
	"ledatools/internal/table"
)

// percentNumFmt is the built-in "0%" number format
const percentNumFmt = 9

// HeaderStyle describes the header row appearance
type HeaderStyle struct {
	FontName  string
	FontSize  float64
	Bold      bool
	Alignment string // left, center or right
	BgColor   string
	FontColor string
}

// Options configures a formatted write. The zero value produces a plain
// sheet with an unstyled header.
type Options struct {
	SheetName          string
	Header             HeaderStyle
	HeaderColumnColors map[string]report.Style
	FreezeHeader       bool
	AutoFilter         bool
	ColumnWidths       map[string]float64
	DefaultWidthMax    float64 // 0 means no cap
	AllBorders         bool
	ValidationColumns  map[string][]string
	HiddenColumns      []string
	FormatRules        []report.FormatRule
	PercentColumns     []string
}

// WriteFormatted writes the table to an xlsx file at path, applying the
// requested styling, dropdown validations and conditional format rules.
// Rules are applied in list order, so later rules win on overlaps.
func WriteFormatted(t *table.Table, path string, opts Options) (string, error) {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return "", apperrors.NewWriteError("create sheet", path, err)
		}
	}

	if err := writeHeader(f, sheet, t, opts); err != nil {
		return "", apperrors.NewWriteError("write header", path, err)
	}
	if err := writeData(f, sheet, t, opts); err != nil {
		return "", apperrors.NewWriteError("write rows", path, err)
	}
	if err := applyLayout(f, sheet, t, opts); err != nil {
		return "", apperrors.NewWriteError("apply layout", path, err)
	}
	if err := applyValidations(f, sheet, t, opts); err != nil {
		return "", apperrors.NewWriteError("apply validations", path, err)
	}
	if err := applyFormatRules(f, sheet, t, opts.FormatRules); err != nil {
		return "", apperrors.NewWriteError("apply format rules", path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", apperrors.NewWriteError("save workbook", path, err)
	}
	return path, nil
}

func writeHeader(f *excelize.File, sheet string, t *table.Table, opts Options) error {
	base, err := newHeaderStyle(f, opts.Header, opts.AllBorders)
	if err != nil {
		return err
	}

	overrides := make(map[string]report.Style, len(opts.HeaderColumnColors))
	for name, style := range opts.HeaderColumnColors {
		overrides[strings.ToLower(name)] = style
	}

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col.Name); err != nil {
			return err
		}

		styleID := base
		if override, ok := overrides[strings.ToLower(col.Name)]; ok {
			hs := opts.Header
			hs.BgColor = override.BgColor
			hs.FontColor = override.FontColor
			styleID, err = newHeaderStyle(f, hs, opts.AllBorders)
			if err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return err
		}
	}
	return nil
}

func newHeaderStyle(f *excelize.File, hs HeaderStyle, borders bool) (int, error) {
	font := &excelize.Font{Bold: hs.Bold}
	if hs.FontName != "" {
		font.Family = hs.FontName
	}
	if hs.FontSize > 0 {
		font.Size = hs.FontSize
	}
	if c := normalizeHex(hs.FontColor); c != "" {
		font.Color = c
	}

	style := &excelize.Style{Font: font}
	if c := normalizeHex(hs.BgColor); c != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c}}
	}
	switch hs.Alignment {
	case "left", "center", "right":
		style.Alignment = &excelize.Alignment{Horizontal: hs.Alignment}
	default:
		style.Alignment = &excelize.Alignment{Horizontal: "center"}
	}
	if borders {
		style.Border = allBorders()
	}
	return f.NewStyle(style)
}

func writeData(f *excelize.File, sheet string, t *table.Table, opts Options) error {
	for c, col := range t.Columns {
		for r, v := range col.Values {
			if v.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v.Raw()); err != nil {
				return err
			}
		}
	}

	if t.RowCount() == 0 || t.ColumnCount() == 0 {
		return nil
	}

	// Cell styles for the data range: borders everywhere when requested,
	// percent rendering on the marked columns.
	var borderStyle int
	if opts.AllBorders {
		id, err := f.NewStyle(&excelize.Style{Border: allBorders()})
		if err != nil {
			return err
		}
		borderStyle = id

		first, _ := excelize.CoordinatesToCellName(1, 2)
		last, _ := excelize.CoordinatesToCellName(t.ColumnCount(), t.RowCount()+1)
		if err := f.SetCellStyle(sheet, first, last, borderStyle); err != nil {
			return err
		}
	}

	if len(opts.PercentColumns) > 0 {
		style := &excelize.Style{NumFmt: percentNumFmt}
		if opts.AllBorders {
			style.Border = allBorders()
		}
		percentStyle, err := f.NewStyle(style)
		if err != nil {
			return err
		}
		for _, name := range opts.PercentColumns {
			idx := t.ColumnIndex(name)
			if idx < 0 {
				continue
			}
			first, _ := excelize.CoordinatesToCellName(idx+1, 2)
			last, _ := excelize.CoordinatesToCellName(idx+1, t.RowCount()+1)
			if err := f.SetCellStyle(sheet, first, last, percentStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyLayout sets column widths, the frozen header row, the autofilter and
// column visibility.
func applyLayout(f *excelize.File, sheet string, t *table.Table, opts Options) error {
	if t.ColumnCount() == 0 {
		return nil
	}

	// Padding keeps the autofilter dropdown arrow from covering the text.
	padding := 2.0
	if opts.AutoFilter {
		padding += 4
	}

	for i, col := range t.Columns {
		width, fixed := lookupWidth(opts.ColumnWidths, col.Name)
		if fixed {
			width += padding - 2
		} else {
			maxLen := len(col.Name)
			for _, v := range col.Values {
				if n := len(v.String()); n > maxLen {
					maxLen = n
				}
			}
			width = float64(maxLen) + padding
			if opts.DefaultWidthMax > 0 && width > opts.DefaultWidthMax {
				width = opts.DefaultWidthMax
			}
		}

		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, letter, letter, width); err != nil {
			return err
		}
	}

	if opts.FreezeHeader {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return err
		}
	}

	if opts.AutoFilter {
		lastCol, err := excelize.ColumnNumberToName(t.ColumnCount())
		if err != nil {
			return err
		}
		ref := fmt.Sprintf("A1:%s%d", lastCol, t.RowCount()+1)
		if err := f.AutoFilter(sheet, ref, nil); err != nil {
			return err
		}
	}

	for _, name := range opts.HiddenColumns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		letter, err := excelize.ColumnNumberToName(idx + 1)
		if err != nil {
			return err
		}
		if err := f.SetColVisible(sheet, letter, false); err != nil {
			return err
		}
	}
	return nil
}

// applyValidations attaches dropdown list validation to the data rows of the
// mapped columns. Column names missing from the table are ignored.
func applyValidations(f *excelize.File, sheet string, t *table.Table, opts Options) error {
	for name, allowed := range opts.ValidationColumns {
		idx := t.ColumnIndex(name)
		if idx < 0 || len(allowed) == 0 {
			continue
		}

		lastRow := t.RowCount() + 1
		if lastRow < 2 {
			lastRow = 2
		}
		first, _ := excelize.CoordinatesToCellName(idx+1, 2)
		last, _ := excelize.CoordinatesToCellName(idx+1, lastRow)

		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("%s:%s", first, last)
		if err := dv.SetDropList(allowed); err != nil {
			return err
		}
		if err := f.AddDataValidation(sheet, dv); err != nil {
			return err
		}
	}
	return nil
}

// applyFormatRules translates the declarative rules to excelize conditional
// formats, preserving list order.
func applyFormatRules(f *excelize.File, sheet string, t *table.Table, rules []report.FormatRule) error {
	if t.ColumnCount() == 0 {
		return nil
	}

	for _, rule := range rules {
		styleID, err := f.NewConditionalStyle(conditionalStyle(rule.Style))
		if err != nil {
			return err
		}

		var format excelize.ConditionalFormatOptions
		if rule.Kind == report.RuleFormula {
			format = excelize.ConditionalFormatOptions{
				Type:     "formula",
				Criteria: rule.Formula,
				Format:   &styleID,
			}
		} else {
			format = excelize.ConditionalFormatOptions{
				Type:     "cell",
				Criteria: rule.Criteria,
				Value:    strconv.Quote(rule.Value),
				Format:   &styleID,
			}
		}

		for _, ref := range ruleRanges(t, rule) {
			if err := f.SetConditionalFormat(sheet, ref, []excelize.ConditionalFormatOptions{format}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ruleRanges resolves a rule's target columns to worksheet ranges. The
// wildcard covers every column in one range; named columns are matched
// case-insensitively and silently dropped when absent.
func ruleRanges(t *table.Table, rule report.FormatRule) []string {
	if len(rule.Columns) == 1 && rule.Columns[0] == report.Wildcard {
		first, _ := excelize.CoordinatesToCellName(1, rule.FirstRow)
		last, _ := excelize.CoordinatesToCellName(t.ColumnCount(), rule.LastRow)
		return []string{fmt.Sprintf("%s:%s", first, last)}
	}

	var refs []string
	for _, name := range rule.Columns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		first, _ := excelize.CoordinatesToCellName(idx+1, rule.FirstRow)
		last, _ := excelize.CoordinatesToCellName(idx+1, rule.LastRow)
		refs = append(refs, fmt.Sprintf("%s:%s", first, last))
	}
	return refs
}

func conditionalStyle(s report.Style) *excelize.Style {
	style := &excelize.Style{}
	if c := normalizeHex(s.BgColor); c != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{c}}
	}
	if c := normalizeHex(s.FontColor); c != "" {
		style.Font = &excelize.Font{Color: c}
	}
	return style
}

func allBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// lookupWidth finds an explicit width by column name, case-insensitively
func lookupWidth(widths map[string]float64, name string) (float64, bool) {
	for k, w := range widths {
		if strings.EqualFold(k, name) {
			return w, true
		}
	}
	return 0, false
}

// normalizeHex validates a RRGGBB or #RRGGBB color and returns it in the
// #RRGGBB form, or "" when malformed.
func normalizeHex(color string) string {
	c := strings.TrimPrefix(strings.TrimSpace(color), "#")
	if len(c) != 6 {
		return ""
	}
	if _, err := strconv.ParseUint(c, 16, 32); err != nil {
		return ""
	}
	return "#" + strings.ToUpper(c)
}
