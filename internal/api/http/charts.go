package httpapi

import (
	"github.com/i474232898/potato-farm-advisor/internal/advisor"
	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// chartPoint is one dated value; Value is null when the day has no reading.
type chartPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

type chartSeries struct {
	Name   string       `json:"name"`
	Kind   string       `json:"kind"` // line, dashed, bar, area
	Points []chartPoint `json:"points"`
}

type referenceLine struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type chartPanel struct {
	Title          string          `json:"title"`
	Unit           string          `json:"unit"`
	Series         []chartSeries   `json:"series"`
	ReferenceLines []referenceLine `json:"referenceLines,omitempty"`
}

func seriesOf(rows []weather.DailyObservation, name, kind string, m weather.Measure) chartSeries {
	pts := make([]chartPoint, len(rows))
	for i, r := range rows {
		pts[i] = chartPoint{Date: r.Date.Format(common.ISODateLayout), Value: m(r)}
	}
	return chartSeries{Name: name, Kind: kind, Points: pts}
}

// buildCharts lays out the four dashboard panels: temperature trend,
// precipitation, relative humidity and irradiance.
func buildCharts(rows []weather.DailyObservation) []chartPanel {
	tempMax := func(o weather.DailyObservation) *float64 { return o.TempMax }
	tempMin := func(o weather.DailyObservation) *float64 { return o.TempMin }

	return []chartPanel{
		{
			Title: "Temperature trend",
			Unit:  "°C",
			Series: []chartSeries{
				seriesOf(rows, "mean", "line", weather.MeasureTempMean),
				seriesOf(rows, "max", "dashed", tempMax),
				seriesOf(rows, "min", "dashed", tempMin),
			},
			ReferenceLines: []referenceLine{
				{Value: advisor.LowTempC, Label: "low temperature"},
				{Value: advisor.HighTempC, Label: "high temperature"},
			},
		},
		{
			Title:  "Precipitation",
			Unit:   "mm",
			Series: []chartSeries{seriesOf(rows, "precipitation", "bar", weather.MeasurePrecip)},
		},
		{
			Title:  "Relative humidity",
			Unit:   "%",
			Series: []chartSeries{seriesOf(rows, "humidity", "area", weather.MeasureHumidity)},
			ReferenceLines: []referenceLine{
				{Value: advisor.HighHumidityPc, Label: "disease risk"},
			},
		},
		{
			Title:  "Irradiance",
			Unit:   "MJ/m²/day",
			Series: []chartSeries{seriesOf(rows, "irradiance", "area", weather.MeasureIrradiance)},
		},
	}
}
