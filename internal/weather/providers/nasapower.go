package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/potato-farm-advisor/internal/common"
	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

// DefaultPowerBaseURL is the NASA POWER daily point endpoint.
const DefaultPowerBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

// PowerCommunity selects the agroclimatology unit set.
const PowerCommunity = "AG"

// PowerProvider implements weather.Provider for NASA POWER.
type PowerProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewPowerProvider builds a POWER client. The HTTP client's Timeout bounds
// each round trip; an empty baseURL selects DefaultPowerBaseURL.
func NewPowerProvider(client *http.Client, baseURL string) *PowerProvider {
	if baseURL == "" {
		baseURL = DefaultPowerBaseURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "nasapower",
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &PowerProvider{
		name:    "nasapower",
		baseURL: baseURL,
		client:  client,
		circuit: cb,
	}
}

func (p *PowerProvider) Name() string {
	return p.name
}

// Fetch requests the daily parameters for req's coordinate and range.
// The daily point endpoint is keyless, so req.APIKey is not sent.
func (p *PowerProvider) Fetch(ctx context.Context, req weather.FetchRequest) (*weather.RawResponse, error) {
	if err := req.Range.Validate(); err != nil {
		return nil, err
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		names := make([]string, len(weather.DailyParameters))
		for i, prm := range weather.DailyParameters {
			names[i] = string(prm)
		}

		values := url.Values{}
		values.Set("parameters", strings.Join(names, ","))
		values.Set("community", PowerCommunity)
		values.Set("longitude", strconv.FormatFloat(req.Coordinate.Longitude, 'f', -1, 64))
		values.Set("latitude", strconv.FormatFloat(req.Coordinate.Latitude, 'f', -1, 64))
		values.Set("start", common.FormatCompactDate(req.Range.Start))
		values.Set("end", common.FormatCompactDate(req.Range.End))
		values.Set("format", "JSON")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", weather.ErrMalformedResponse, err)
	}

	return &payload, nil
}
