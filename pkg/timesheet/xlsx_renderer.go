package timesheet

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Timesheet"

type XlsxRenderer struct{}

func NewXlsxRenderer() *XlsxRenderer {
	return &XlsxRenderer{}
}

func (r *XlsxRenderer) Format() string {
	return "xlsx"
}

func (r *XlsxRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (r *XlsxRenderer) Render(draft Draft) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warnf("failed to close workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	line := 1
	for _, header := range headerLines(draft.Header) {
		if err := r.setRow(f, line, []any{header[0], header[1]}); err != nil {
			return nil, err
		}
		if err := r.style(f, line, 1, bold); err != nil {
			return nil, err
		}
		line++
	}
	line++

	titles := make([]any, len(columnTitles))
	for i, title := range columnTitles {
		titles[i] = title
	}
	if err := r.setRow(f, line, titles); err != nil {
		return nil, err
	}
	if err := r.style(f, line, len(columnTitles), bold); err != nil {
		return nil, err
	}
	line++

	for _, row := range draft.Sheet.Rows() {
		values := cells(row)
		rowValues := make([]any, len(values))
		for i, v := range values {
			rowValues[i] = v
		}
		// Total Daily Hours is stored as a number cell
		rowValues[len(rowValues)-1] = row.Total()
		if err := r.setRow(f, line, rowValues); err != nil {
			return nil, err
		}
		line++
	}

	total := make([]any, len(columnTitles))
	total[0] = "Total"
	total[len(total)-1] = draft.Sheet.TotalHours()
	if err := r.setRow(f, line, total); err != nil {
		return nil, err
	}
	if err := r.style(f, line, len(columnTitles), bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *XlsxRenderer) setRow(f *excelize.File, line int, values []any) error {
	for col, value := range values {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+1, line)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(xlsxSheetName, cell, value); err != nil {
			return fmt.Errorf("failed to set cell %s: %w", cell, err)
		}
	}
	return nil
}

func (r *XlsxRenderer) style(f *excelize.File, line int, columns int, styleId int) error {
	first, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(columns, line)
	if err != nil {
		return err
	}
	return f.SetCellStyle(xlsxSheetName, first, last, styleId)
}
