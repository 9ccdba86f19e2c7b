package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// utf8BOM lets spreadsheet applications detect the encoding.
const utf8BOM = "\ufeff"

// WriteCSV writes one row per observation, preceded by a BOM and Header.
// Absent values are written as empty cells.
func WriteCSV(w io.Writer, rows []weather.DailyObservation) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	rec := make([]string, len(Header))
	for _, o := range rows {
		rec = rec[:0]
		rec = append(rec, o.Date.Format(common.ISODateLayout))
		for _, v := range measures(o) {
			rec = append(rec, formatValue(v))
		}
		rec = append(rec, string(o.Stage), strconv.Itoa(o.DaysSincePlanting))

		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
