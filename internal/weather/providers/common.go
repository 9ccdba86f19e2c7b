package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/i474232898/potato-farm-advisor/internal/weather"
)

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
	errServerError  = errors.New("server error")
	errUnexpected   = errors.New("unexpected status code")
)

// doRequest executes exactly one HTTP round trip through the circuit breaker.
// There is no retry: every failure is returned wrapped in weather.ErrTransport.
// Only transport errors and 5xx responses count toward tripping the breaker;
// 4xx responses are the caller's problem and never block later fetches.
// On success the caller owns resp.Body.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrTransport, errNoHTTPClient)
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", weather.ErrTransport, err)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}

		if resp.StatusCode >= 500 {
			discard(resp)
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v: %v", weather.ErrTransport, errCircuitOpen, err)
		}
		return nil, fmt.Errorf("%w: %v", weather.ErrTransport, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected result type from circuit breaker", weather.ErrTransport)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		discard(resp)
		return nil, fmt.Errorf("%w: %v: %d", weather.ErrTransport, errUnexpected, resp.StatusCode)
	}
	return resp, nil
}

// discard drains and closes the body so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
	resp.Body.Close()
}
