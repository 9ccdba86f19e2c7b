package weather

import "context"

// Provider abstracts a point-climate data source (e.g. NASA POWER).
//
// Fetch performs a single best-effort round trip. Failures are returned
// wrapped in ErrTransport or ErrMalformedResponse.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req FetchRequest) (*RawResponse, error)
}
