package weather

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/potato-farm-advisor/internal/crop"
)

var planting = time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)

const samplePayload = `{
  "type": "Feature",
  "properties": {
    "parameter": {
      "T2M":               {"20250417": 12.5, "20250415": 10.0, "20250416": 11.0},
      "T2M_MAX":           {"20250415": 15.0, "20250416": 16.0, "20250417": 17.5},
      "T2M_MIN":           {"20250415": 4.0,  "20250416": null, "20250417": 6.1},
      "PRECTOTCORR":       {"20250415": 0.0,  "20250416": 3.2,  "20250417": -999},
      "RH2M":              {"20250415": 70.1, "20250416": 80.3, "20250417": 90.0},
      "ALLSKY_SFC_SW_DWN": {"20250415": 15.2, "20250416": 12.8},
      "WS2M":              {"20250415": 2.1,  "20250416": 3.4,  "20250417": 1.0}
    }
  }
}`

func decode(t *testing.T, body string) *RawResponse {
	t.Helper()
	var raw RawResponse
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	return &raw
}

func TestBuildSeriesSortsAndAnnotates(t *testing.T) {
	rows, err := BuildSeries(decode(t, samplePayload), planting)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	for i, r := range rows {
		assert.Equal(t, planting.AddDate(0, 0, i), r.Date)
		assert.Equal(t, i, r.DaysSincePlanting)
		assert.Equal(t, crop.StageGermination, r.Stage)
	}

	require.NotNil(t, rows[0].TempMean)
	assert.Equal(t, 10.0, *rows[0].TempMean)
	assert.Equal(t, 12.5, *rows[2].TempMean)
	assert.Equal(t, 3.4, *rows[1].WindSpeed)
}

func TestBuildSeriesMissingValuesAreNil(t *testing.T) {
	rows, err := BuildSeries(decode(t, samplePayload), planting)
	require.NoError(t, err)

	assert.Nil(t, rows[1].TempMin, "explicit null")
	assert.Nil(t, rows[2].PrecipMM, "POWER fill value")
	assert.Nil(t, rows[2].Irradiance, "date absent from series")
	require.NotNil(t, rows[0].PrecipMM)
	assert.Equal(t, 0.0, *rows[0].PrecipMM)
}

func TestBuildSeriesMissingParameterSeries(t *testing.T) {
	raw := &RawResponse{Properties: &RawProperties{Parameter: map[Parameter]map[string]*float64{
		ParamTempMean: {"20250415": ptr(9)},
	}}}

	rows, err := BuildSeries(raw, planting)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].HumidityPct)
	assert.Nil(t, rows[0].WindSpeed)
}

func TestBuildSeriesNegativeOffsets(t *testing.T) {
	raw := &RawResponse{Properties: &RawProperties{Parameter: map[Parameter]map[string]*float64{
		ParamTempMean: {"20250410": ptr(9), "20250415": ptr(10)},
	}}}

	rows, err := BuildSeries(raw, planting)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, -5, rows[0].DaysSincePlanting)
	assert.Equal(t, crop.StagePostHarvest, rows[0].Stage)
	assert.Equal(t, crop.StageGermination, rows[1].Stage)
}

func TestBuildSeriesLongRangeStages(t *testing.T) {
	series := map[string]*float64{}
	for d := 0; d < 140; d++ {
		series[planting.AddDate(0, 0, d).Format("20060102")] = ptr(float64(d))
	}
	raw := &RawResponse{Properties: &RawProperties{Parameter: map[Parameter]map[string]*float64{
		ParamTempMean: series,
	}}}

	rows, err := BuildSeries(raw, planting)
	require.NoError(t, err)
	require.Len(t, rows, 140)
	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i-1].Date.Before(rows[i].Date))
	}
	assert.Equal(t, crop.StageVegetative, rows[21].Stage)
	assert.Equal(t, crop.StageTuberBulking, rows[80].Stage)
	assert.Equal(t, crop.StagePostHarvest, rows[130].Stage)
}

func TestBuildSeriesMalformed(t *testing.T) {
	cases := map[string]string{
		"no properties": `{"type":"Feature"}`,
		"no parameter":  `{"properties":{}}`,
		"no T2M":        `{"properties":{"parameter":{"RH2M":{"20250415":70}}}}`,
		"bad date key":  `{"properties":{"parameter":{"T2M":{"2025-04-15":10}}}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rows, err := BuildSeries(decode(t, body), planting)
			assert.Nil(t, rows)
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}

	_, err := BuildSeries(nil, planting)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestDailyObservationJSONNulls(t *testing.T) {
	rows, err := BuildSeries(decode(t, samplePayload), planting)
	require.NoError(t, err)

	b, err := json.Marshal(rows[1])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"temperatureMinC":null`))
	assert.True(t, strings.Contains(string(b), `"growthStage":"germination"`))
}
