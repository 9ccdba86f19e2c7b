package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// SheetName is the worksheet holding the observation table.
const SheetName = "observations"

// WriteXLSX writes the observation table as a single-sheet workbook.
// Measurements are numeric cells; absent values are left blank.
func WriteXLSX(w io.Writer, rows []weather.DailyObservation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, o := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		rec := make([]interface{}, 0, len(Header))
		rec = append(rec, o.Date.Format(common.ISODateLayout))
		for _, v := range measures(o) {
			if v == nil {
				rec = append(rec, nil)
				continue
			}
			rec = append(rec, *v)
		}
		rec = append(rec, string(o.Stage), o.DaysSincePlanting)

		if err := f.SetSheetRow(SheetName, cell, &rec); err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}
