package directions

import (
	"errors"
	"fmt"
)

// Status values used when the failure did not come from the provider's own
// status field.
const (
	StatusTransport    = "TRANSPORT_ERROR"
	StatusHTTP         = "HTTP_ERROR"
	StatusMalformed    = "MALFORMED_RESPONSE"
	StatusNoLegs       = "NO_LEGS"
	StatusInvalidStops = "INVALID_STOPS"
)

var ErrMissingAPIKey = errors.New("directions api key is empty")

// ProviderError is returned for every failed FetchRoute call. Status is the
// provider status (e.g. ZERO_RESULTS) or one of the Status* constants.
type ProviderError struct {
	Status  string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("directions: %s", e.Status)
	}
	return fmt.Sprintf("directions: %s: %s", e.Status, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}
