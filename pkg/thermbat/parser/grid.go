package parser

import (
	"fmt"
	"io"

	"github.com/ukaji3/thermbat-go/pkg/thermbat/models"
	"github.com/xuri/excelize/v2"
)

// OpenGrid reads one sheet of an xlsx file into a grid.
// An empty sheet name selects the first sheet.
func OpenGrid(path string, sheet string) (*models.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gridFromFile(f, sheet)
}

// ReadGrid reads one sheet of an xlsx stream into a grid.
// An empty sheet name selects the first sheet.
func ReadGrid(r io.Reader, sheet string) (*models.Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gridFromFile(f, sheet)
}

// Sheet is one worksheet read into a grid.
type Sheet struct {
	Name string
	Grid *models.Grid
}

// OpenSheets reads every worksheet of an xlsx file in workbook order.
func OpenSheets(path string) ([]Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		g, err := ExtractCells(f, name)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		sheets = append(sheets, Sheet{Name: name, Grid: g})
	}
	return sheets, nil
}

func gridFromFile(f *excelize.File, sheet string) (*models.Grid, error) {
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	return ExtractCells(f, sheet)
}

// ExtractCells converts every row of a sheet into grid cells without header
// inference. Raw values are used so numbers are not affected by display
// formats; blank cells become Empty.
func ExtractCells(f *excelize.File, sheetName string) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	cells := make([][]models.Cell, len(rows))
	for rowIdx, row := range rows {
		cells[rowIdx] = make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			cells[rowIdx][colIdx] = models.ParseCell(cellValue)
		}
	}
	return models.NewGrid(cells), nil
}

// ColumnName returns the spreadsheet letter name of a 0-based column index.
func ColumnName(col int) string {
	name, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return fmt.Sprintf("C%d", col+1)
	}
	return name
}
