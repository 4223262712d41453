package dispatch

import "fmt"

// NetworkError wraps a transport failure: the request never reached
// the backend or the reply never came back.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a reply with a non-success status code. Body holds the
// raw response body so it can be surfaced to the user.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Body)
}

// PayloadError is a 2xx reply whose body could not be decoded into a
// valid envelope. These are logged and never shown to the user.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string { return fmt.Sprintf("malformed payload: %v", e.Err) }
func (e *PayloadError) Unwrap() error { return e.Err }
