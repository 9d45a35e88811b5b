// Package parser reads the inspection workbook and converts raw cell values
// into the forms the report uses.
package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/LuanaSouza24/laudo-service/pkg/laudo/models"
	"github.com/xuri/excelize/v2"
)

// OpenWorkbook opens an xlsx file and loads the report sheets.
func OpenWorkbook(path string) (*models.Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadWorkbook(f, filepath.Base(path))
}

// ReadWorkbook loads the report sheets from xlsx content.
func ReadWorkbook(r io.Reader, bookName string) (*models.Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadWorkbook(f, bookName)
}

// LoadWorkbook reads every sheet in models.ReportSheets. Sheet names are
// matched case-insensitively; a missing sheet is an error.
func LoadWorkbook(f *excelize.File, bookName string) (*models.Workbook, error) {
	wb := &models.Workbook{BookName: bookName}
	sheetList := f.GetSheetList()

	for _, name := range models.ReportSheets {
		actual, ok := findSheet(sheetList, name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", models.ErrMissingSheet, name)
		}

		table, err := ReadTable(f, actual)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", actual, err)
		}
		table.Name = name
		wb.SetSheet(name, table)
	}

	return wb, nil
}

// ReadTable reads one sheet as a relation. The first non-empty row is the
// header; fully empty rows below it are skipped. Raw cell values are kept so
// booleans, dates and numbers are not rendered through number formats.
func ReadTable(f *excelize.File, sheetName string) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var header []string
	var data [][]string
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, cell := range row {
				header[i] = strings.TrimSpace(cell)
			}
			continue
		}
		data = append(data, row)
	}

	return models.NewTable(sheetName, header, data), nil
}

func findSheet(sheetList []string, name string) (string, bool) {
	want := models.FoldName(name)
	for _, s := range sheetList {
		if models.FoldName(s) == want {
			return s, true
		}
	}
	return "", false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
