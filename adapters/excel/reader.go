package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading sample columns out of Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadColumn reads one named numeric column into a sample. Empty cells are
// skipped; any other non-numeric cell is an error.
func (r *DataReader) ReadColumn(column string) ([]float64, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s must have a header row and at least one data row", r.filePath)
	}

	columnIndex := -1
	for i, header := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(header), column) {
			columnIndex = i
			break
		}
	}
	if columnIndex == -1 {
		return nil, fmt.Errorf("column %q not found in %s (headers: %v)", column, r.filePath, rows[0])
	}

	sample := make([]float64, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if columnIndex >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[columnIndex])
		if cell == "" {
			continue
		}
		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d of column %q is not numeric: %q", rowNum+2, column, cell)
		}
		sample = append(sample, value)
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("column %q of %s has no numeric values", column, r.filePath)
	}
	return sample, nil
}

// Headers returns the header row of the file.
func (r *DataReader) Headers() ([]string, error) {
	rows, err := r.readRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", r.filePath)
	}
	return rows[0], nil
}

func (r *DataReader) readRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRows()
	case "xlsx":
		return r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}
