package timesheet

import (
	"bytes"
	"encoding/csv"

	log "github.com/sirupsen/logrus"
)

type CsvRenderer struct{}

func NewCsvRenderer() *CsvRenderer {
	return &CsvRenderer{}
}

func (r *CsvRenderer) Format() string {
	return "csv"
}

func (r *CsvRenderer) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (r *CsvRenderer) Render(draft Draft) ([]byte, error) {
	rows := draft.Sheet.Rows()
	data := make([][]string, 0, len(rows)+7)
	for _, line := range headerLines(draft.Header) {
		data = append(data, []string{line[0], line[1]})
	}
	data = append(data, []string{}, columnTitles)
	for _, row := range rows {
		data = append(data, cells(row))
	}
	total := make([]string, len(columnTitles))
	total[0] = "Total"
	total[len(total)-1] = formatHours(draft.Sheet.TotalHours())
	data = append(data, total)

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return nil, err
	}
	return b.Bytes(), nil
}
