package weather

// Measure selects one measurement from a row.
type Measure func(DailyObservation) *float64

var (
	MeasureTempMean   Measure = func(o DailyObservation) *float64 { return o.TempMean }
	MeasurePrecip     Measure = func(o DailyObservation) *float64 { return o.PrecipMM }
	MeasureHumidity   Measure = func(o DailyObservation) *float64 { return o.HumidityPct }
	MeasureIrradiance Measure = func(o DailyObservation) *float64 { return o.Irradiance }
)

// Tail returns the last n rows of rows (all of them if there are fewer).
// The result shares the backing array with rows.
func Tail(rows []DailyObservation, n int) []DailyObservation {
	if n <= 0 {
		return nil
	}
	if len(rows) <= n {
		return rows
	}
	return rows[len(rows)-n:]
}

// Mean averages the present values of m over rows.
// ok is false when no row has a value.
func Mean(rows []DailyObservation, m Measure) (mean float64, ok bool) {
	var (
		sum float64
		n   int
	)
	for _, r := range rows {
		if v := m(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Sum adds the present values of m over rows. Absent values contribute nothing.
func Sum(rows []DailyObservation, m Measure) float64 {
	var sum float64
	for _, r := range rows {
		if v := m(r); v != nil {
			sum += *v
		}
	}
	return sum
}

// Summary is the whole-table overview shown alongside the recommendations.
// Pointer fields are nil when the table carries no value for them.
type Summary struct {
	Days          int      `json:"days"`
	AvgTempC      *float64 `json:"avgTemperatureC"`
	LastTempDelta *float64 `json:"lastTemperatureDeltaC"`
	TotalPrecipMM float64  `json:"totalPrecipitationMm"`
	AvgHumidity   *float64 `json:"avgHumidityPercent"`
	AvgIrradiance *float64 `json:"avgIrradianceMjM2Day"`
}

// Summarize computes the overview for the full table.
func Summarize(rows []DailyObservation) Summary {
	s := Summary{
		Days:          len(rows),
		TotalPrecipMM: Sum(rows, MeasurePrecip),
		AvgHumidity:   meanPtr(rows, MeasureHumidity),
		AvgIrradiance: meanPtr(rows, MeasureIrradiance),
	}

	s.AvgTempC = meanPtr(rows, MeasureTempMean)
	if s.AvgTempC != nil && len(rows) > 0 {
		if last := rows[len(rows)-1].TempMean; last != nil {
			d := *last - *s.AvgTempC
			s.LastTempDelta = &d
		}
	}

	return s
}

func meanPtr(rows []DailyObservation, m Measure) *float64 {
	v, ok := Mean(rows, m)
	if !ok {
		return nil
	}
	return &v
}
