package weather

import "errors"

var (
	// ErrTransport covers network errors, timeouts and non-2xx responses from the climate API.
	ErrTransport = errors.New("climate api transport failure")

	// ErrMalformedResponse is returned when the payload lacks the expected parameter structure.
	ErrMalformedResponse = errors.New("malformed climate api response")

	// ErrNoData is returned when a well-formed response carries no daily rows.
	ErrNoData = errors.New("no daily observations in response")
)
