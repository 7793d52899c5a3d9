package http

import (
	"net/url"
	"strconv"
	"strings"
)

// GetInt returns def when key is absent. ok is false when the value is
// present but not an integer.
func GetInt(q url.Values, key string, def int) (n int, ok bool) {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def, true
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def, false
	}

	return n, true
}
