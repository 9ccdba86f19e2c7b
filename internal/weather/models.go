package weather

import (
	"fmt"
	"time"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/crop"
)

// Parameter is a POWER daily parameter name.
type Parameter string

const (
	ParamTempMean   Parameter = "T2M"
	ParamTempMax    Parameter = "T2M_MAX"
	ParamTempMin    Parameter = "T2M_MIN"
	ParamPrecip     Parameter = "PRECTOTCORR"
	ParamHumidity   Parameter = "RH2M"
	ParamIrradiance Parameter = "ALLSKY_SFC_SW_DWN"
	ParamWindSpeed  Parameter = "WS2M"
)

// DailyParameters is the fixed set of parameters requested for every fetch.
var DailyParameters = []Parameter{
	ParamTempMean,
	ParamTempMax,
	ParamTempMin,
	ParamPrecip,
	ParamHumidity,
	ParamIrradiance,
	ParamWindSpeed,
}

// FillValue is what POWER reports for a day it has no value for.
const FillValue = -999.0

// Coordinate is the point the climate data is requested for.
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Key returns a canonical string key for this coordinate.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange returns the range starting at planting and spanning days days.
func NewDateRange(planting time.Time, days int) DateRange {
	start := common.Midnight(planting)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 0, days),
	}
}

// Validate checks that End is not before Start.
func (r DateRange) Validate() error {
	if r.End.Before(r.Start) {
		return fmt.Errorf("date range end %s is before start %s",
			r.End.Format(common.ISODateLayout), r.Start.Format(common.ISODateLayout))
	}
	return nil
}

// FetchRequest is everything a provider needs for one round trip.
type FetchRequest struct {
	Coordinate Coordinate
	Range      DateRange
	APIKey     string
}

// RawResponse mirrors the POWER daily point payload:
// properties.parameter.<PARAM>.<YYYYMMDD> = number|null.
type RawResponse struct {
	Properties *RawProperties `json:"properties"`
}

// RawProperties holds the per-parameter date series.
type RawProperties struct {
	Parameter map[Parameter]map[string]*float64 `json:"parameter"`
}

// DailyObservation is one calendar day of weather for the field.
// Measurement fields are nil when the source had no value for that day.
type DailyObservation struct {
	Date              time.Time  `json:"date"`
	TempMean          *float64   `json:"temperatureMeanC"`
	TempMax           *float64   `json:"temperatureMaxC"`
	TempMin           *float64   `json:"temperatureMinC"`
	PrecipMM          *float64   `json:"precipitationMm"`
	HumidityPct       *float64   `json:"humidityPercent"`
	Irradiance        *float64   `json:"irradianceMjM2Day"`
	WindSpeed         *float64   `json:"windSpeedMs"`
	DaysSincePlanting int        `json:"daysSincePlanting"`
	Stage             crop.Stage `json:"growthStage"`
}
