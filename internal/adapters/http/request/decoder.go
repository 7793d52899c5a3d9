// Package request
package request

import (
	"encoding/json"
	"errors"
	"net/http"
)

const maxBodyBytes = 1 << 20

var ErrInvalidBody = errors.New("invalid request body")

type RequestDecoder interface {
	Decode(w http.ResponseWriter, r *http.Request, req any) error
}

type JSONDecoder struct{}

func NewJSONDecoder() RequestDecoder {
	return &JSONDecoder{}
}

func (d *JSONDecoder) Decode(w http.ResponseWriter, r *http.Request, req any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))

	if err := dec.Decode(req); err != nil {
		return ErrInvalidBody
	}

	return nil
}
