package weather

import (
	"fmt"
	"sort"
	"time"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/crop"
)

// BuildSeries joins the per-parameter series of raw into one row per date,
// ascending by date, annotated with days since planting and growth stage.
//
// The set of dates is taken from the T2M series. Values missing from any
// other series (or reported as FillValue) are left nil.
func BuildSeries(raw *RawResponse, planting time.Time) ([]DailyObservation, error) {
	if raw == nil || raw.Properties == nil || raw.Properties.Parameter == nil {
		return nil, fmt.Errorf("%w: missing properties.parameter", ErrMalformedResponse)
	}

	params := raw.Properties.Parameter
	tempMean, ok := params[ParamTempMean]
	if !ok || tempMean == nil {
		return nil, fmt.Errorf("%w: missing properties.parameter.%s", ErrMalformedResponse, ParamTempMean)
	}

	// YYYYMMDD is fixed width, so lexical order is date order.
	keys := make([]string, 0, len(tempMean))
	for k := range tempMean {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]DailyObservation, 0, len(keys))
	for _, k := range keys {
		date, err := common.ParseCompactDate(k)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date key %q", ErrMalformedResponse, k)
		}

		days := common.DaysSince(planting, date)
		rows = append(rows, DailyObservation{
			Date:              date,
			TempMean:          valueAt(params, ParamTempMean, k),
			TempMax:           valueAt(params, ParamTempMax, k),
			TempMin:           valueAt(params, ParamTempMin, k),
			PrecipMM:          valueAt(params, ParamPrecip, k),
			HumidityPct:       valueAt(params, ParamHumidity, k),
			Irradiance:        valueAt(params, ParamIrradiance, k),
			WindSpeed:         valueAt(params, ParamWindSpeed, k),
			DaysSincePlanting: days,
			Stage:             crop.StageFor(days),
		})
	}

	return rows, nil
}

func valueAt(params map[Parameter]map[string]*float64, p Parameter, key string) *float64 {
	series, ok := params[p]
	if !ok {
		return nil
	}
	v := series[key]
	if v == nil || *v == FillValue {
		return nil
	}
	out := *v
	return &out
}
