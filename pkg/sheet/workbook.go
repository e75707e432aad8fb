package sheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// FromWorkbook reads a spreadsheet and builds a payload from one of its
// sheets. The first row holds the column names; every following non-blank row
// becomes a Record. An empty sheetName selects the first sheet.
func FromWorkbook(r io.Reader, sheetName string) (payload Payload, err error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return Payload{}, fmt.Errorf("sheet: open workbook: %w", err)
	}
	defer func() {
		err = multierr.Append(err, book.Close())
	}()

	if sheetName == "" {
		names := book.GetSheetList()
		if len(names) == 0 {
			return Payload{}, fmt.Errorf("sheet: workbook has no sheets")
		}
		sheetName = names[0]
	}

	rows, err := book.GetRows(sheetName)
	if err != nil {
		return Payload{}, fmt.Errorf("sheet: read %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return Payload{}, fmt.Errorf("sheet: %q has no header row", sheetName)
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	data := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(header))
		for i, column := range header {
			if column == "" {
				continue
			}
			value := ""
			if i < len(row) {
				value = row[i]
			}
			record[column] = value
		}
		if record.Empty() {
			continue
		}
		data = append(data, record)
	}

	return Payload{
		Total:  len(data),
		Offset: 0,
		Limit:  len(data),
		Data:   data,
		Type:   TypeSheet,
	}, nil
}
