package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// Header lists the exported columns in table order.
var Header = []string{
	"date",
	"t2m",
	"t2m_max",
	"t2m_min",
	"precipitation",
	"humidity",
	"irradiance",
	"wind_speed",
	"growth_stage",
	"days_since_planting",
}

func measures(o weather.DailyObservation) []*float64 {
	return []*float64{o.TempMean, o.TempMax, o.TempMin, o.PrecipMM, o.HumidityPct, o.Irradiance, o.WindSpeed}
}

func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FileName returns the download name for an export taken on day, e.g.
// potato_farming_data_20250823.csv.
func FileName(day time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return "potato_farming_data_" + common.FormatCompactDate(day) + "." + ext
}
