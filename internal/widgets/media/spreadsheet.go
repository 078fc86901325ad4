package media

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultSheet    = "Sheet1"
	maxCSVRows      = 100000
)

var delimiters = map[string]rune{
	"comma":     ',',
	"semicolon": ';',
	"tab":       '\t',
	"pipe":      '|',
}

// ReadCSV parses CSV text with the given delimiter. Rows may have
// differing field counts.
func ReadCSV(r io.Reader, delim rune) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, types.ParseError("Invalid CSV", err)
		}
		rows = append(rows, rec)
		if len(rows) > maxCSVRows {
			return nil, types.InputError("CSV has more than %d rows", maxCSVRows)
		}
	}
	return rows, nil
}

// cellValue stores numeric-looking cells as numbers.
func cellValue(s string) any {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	// Identifiers such as zip codes keep their leading zeros.
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return s
	}
	return f
}

// BuildWorkbook writes rows into a single-sheet workbook. With header, the
// first row is bold and frozen.
func BuildWorkbook(rows [][]string, sheet string, header bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if sheet != "" && sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			f.Close()
			return nil, types.InputError("invalid sheet name: %v", err)
		}
	} else {
		sheet = defaultSheet
	}

	for i, rec := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		values := make([]any, len(rec))
		for j, v := range rec {
			if header && i == 0 {
				values[j] = v
				continue
			}
			values[j] = cellValue(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if header && len(rows) > 0 && len(rows[0]) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			f.Close()
			return nil, err
		}
		last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// CSVToExcel returns the csv-to-excel widget. It reads the uploaded file
// when present, otherwise the csv text field.
func CSVToExcel() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		var src io.Reader
		filename := "data"
		if f, ok := in.File("file"); ok {
			src = bytes.NewReader(f.Data)
			if base := strings.TrimSuffix(filepath.Base(f.Name), filepath.Ext(f.Name)); base != "" && base != "." {
				filename = base
			}
		} else if text := in.Raw("csv"); strings.TrimSpace(text) != "" {
			src = strings.NewReader(text)
		} else {
			return types.Result{}, types.InputError("paste CSV text or choose a file")
		}
		delim, ok := delimiters[in.GetDefault("delimiter", "comma")]
		if !ok {
			return types.Result{}, types.InputError("unknown delimiter %q", in.Get("delimiter"))
		}

		rows, err := ReadCSV(src, delim)
		if err != nil {
			return types.Result{}, err
		}
		if len(rows) == 0 {
			return types.Result{}, types.InputError("CSV has no rows")
		}
		book, err := BuildWorkbook(rows, in.Get("sheet"), in.Bool("header"))
		if err != nil {
			return types.Result{}, err
		}
		defer book.Close()
		buf, err := book.WriteToBuffer()
		if err != nil {
			return types.Result{}, fmt.Errorf("write workbook: %w", err)
		}

		cols := 0
		for _, r := range rows {
			cols = max(cols, len(r))
		}
		res := types.Result{
			Output:      fmt.Sprintf("%d rows × %d columns", len(rows), cols),
			Data:        buf.Bytes(),
			ContentType: xlsxContentType,
			Filename:    filename + ".xlsx",
		}
		return res, nil
	})
}
