package document

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"lessonbook/internal/domain/dates"
	"lessonbook/internal/domain/journal"
)

const xlsxSheet = "Journal"

// XLSX renders the journal as a workbook: the title in A1, then one row per
// lesson with the date in column A and the outcome in column B.
func XLSX(j journal.Journal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}

	cells := []struct {
		cell  string
		value any
	}{
		{"A1", journalTitle(j)},
		{"A3", "Date"},
		{"B3", "Outcome"},
	}
	for _, c := range cells {
		if err := f.SetCellValue(xlsxSheet, c.cell, c.value); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "A1", bold); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSheet, "A3", "B3", bold); err != nil {
		return nil, err
	}

	for i, e := range j.Entries {
		row := i + 4
		if err := f.SetCellValue(xlsxSheet, fmt.Sprintf("A%d", row), dates.Display(e.Date)); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, fmt.Sprintf("B%d", row), e.Outcome); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(xlsxSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), wrap); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 90); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render journal xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
