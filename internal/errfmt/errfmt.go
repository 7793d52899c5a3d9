// Package errfmt turns any failure into a single display string.
package errfmt

import "errors"

const Fallback = "An unexpected error occurred"

// detailer is implemented by errors that carry a decoded response body
// detail, such as *apiclient.HTTPError.
type detailer interface {
	Detail() (any, bool)
}

// Format picks, in order: a string response detail, the fallback for a
// non-string detail, the error message, the fallback.
func Format(err error) string {
	if err == nil {
		return Fallback
	}

	var d detailer
	if errors.As(err, &d) {
		if detail, ok := d.Detail(); ok {
			s, isString := detail.(string)
			if !isString {
				return Fallback
			}
			if s != "" {
				return s
			}
		}
	}

	if msg := err.Error(); msg != "" {
		return msg
	}

	return Fallback
}
