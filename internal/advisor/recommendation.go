package advisor

import (
	"fmt"

	"github.com/i474232898/potato-farm-advisor/internal/crop"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// Severity tags a recommendation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
	SeverityInfo    Severity = "info"
)

// Recommendation is one advisory derived from recent weather or the growth stage.
type Recommendation struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// Thresholds evaluated over the trailing window.
const (
	WindowDays = 7

	LowTempC       = 10.0
	HighTempC      = 25.0
	LowRainMM      = 15.0
	HighRainMM     = 50.0
	HighHumidityPc = 85.0
)

// Recommend evaluates the trailing WindowDays rows of table (ascending by
// date) and the stage of its last row. Rules are emitted in a fixed order:
// temperature, precipitation, humidity (only when triggered), stage advice.
func Recommend(table []weather.DailyObservation) []Recommendation {
	if len(table) == 0 {
		return []Recommendation{{
			Severity: SeverityInfo,
			Title:    "Insufficient data",
			Message:  "Not enough weather data to generate recommendations.",
		}}
	}

	recent := weather.Tail(table, WindowDays)
	currentStage := table[len(table)-1].Stage

	recs := make([]Recommendation, 0, 4)
	recs = append(recs, temperatureRule(recent))
	recs = append(recs, precipitationRule(recent))
	if r, ok := humidityRule(recent); ok {
		recs = append(recs, r)
	}
	if r, ok := stageRule(currentStage); ok {
		recs = append(recs, r)
	}

	return recs
}

func temperatureRule(recent []weather.DailyObservation) Recommendation {
	avgTemp, ok := weather.Mean(recent, weather.MeasureTempMean)
	switch {
	case !ok:
		return Recommendation{
			Severity: SeverityInfo,
			Title:    "Temperature unavailable",
			Message:  "No temperature readings in the last 7 days.",
		}
	case avgTemp < LowTempC:
		return Recommendation{
			Severity: SeverityWarning,
			Title:    "Low temperature",
			Message:  fmt.Sprintf("Temperatures are too low (avg %.1f°C). Watch for frost damage and consider insulation measures.", avgTemp),
		}
	case avgTemp > HighTempC:
		return Recommendation{
			Severity: SeverityWarning,
			Title:    "High temperature",
			Message:  fmt.Sprintf("Temperatures are high (avg %.1f°C). Transpiration is intense, so increase irrigation.", avgTemp),
		}
	default:
		return Recommendation{
			Severity: SeveritySuccess,
			Title:    "Temperature favorable",
			Message:  fmt.Sprintf("Temperature is within the favorable range (avg %.1f°C).", avgTemp),
		}
	}
}

func precipitationRule(recent []weather.DailyObservation) Recommendation {
	totalRain := weather.Sum(recent, weather.MeasurePrecip)
	switch {
	case totalRain < LowRainMM:
		return Recommendation{
			Severity: SeverityWarning,
			Title:    "Water deficit",
			Message:  fmt.Sprintf("Precipitation is low (%.1fmm). Irrigation is needed.", totalRain),
		}
	case totalRain > HighRainMM:
		return Recommendation{
			Severity: SeverityWarning,
			Title:    "Excess moisture",
			Message:  fmt.Sprintf("Precipitation is high (%.1fmm). Watch for disease caused by excess moisture.", totalRain),
		}
	default:
		return Recommendation{
			Severity: SeveritySuccess,
			Title:    "Adequate precipitation",
			Message:  fmt.Sprintf("Precipitation is adequate (%.1fmm).", totalRain),
		}
	}
}

func humidityRule(recent []weather.DailyObservation) (Recommendation, bool) {
	avgHumidity, ok := weather.Mean(recent, weather.MeasureHumidity)
	if !ok || avgHumidity <= HighHumidityPc {
		return Recommendation{}, false
	}
	return Recommendation{
		Severity: SeverityDanger,
		Title:    "Disease risk",
		Message:  fmt.Sprintf("Humidity is high (%.1f%%). Late blight risk is elevated; consider a preventive fungicide application.", avgHumidity),
	}, true
}

func stageRule(stage crop.Stage) (Recommendation, bool) {
	advice, ok := crop.Advice(stage)
	if !ok {
		return Recommendation{}, false
	}
	return Recommendation{
		Severity: SeverityInfo,
		Title:    fmt.Sprintf("Stage advice (%s)", stage),
		Message:  advice,
	}, true
}
