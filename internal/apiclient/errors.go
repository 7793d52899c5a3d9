package apiclient

import (
	"encoding/json"
	"fmt"
)

// NetworkError is a transport failure: no response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPError is a non-2xx response. Body holds the raw response body.
type HTTPError struct {
	Method string
	Path   string
	Status int
	Body   []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.Status)
}

// Detail decodes the "detail" field of a {"detail": ...} error body. The
// second result is false when the body is not JSON or has no detail.
func (e *HTTPError) Detail() (any, bool) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(e.Body, &body); err != nil {
		return nil, false
	}

	raw, ok := body["detail"]
	if !ok {
		return nil, false
	}

	var detail any
	if err := json.Unmarshal(raw, &detail); err != nil || detail == nil {
		return nil, false
	}

	return detail, true
}
