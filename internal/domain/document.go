package domain

import (
	"encoding/json"
	"errors"
	"io"
)

// DecodeJSON reads exactly one JSON value into generic maps and slices.
// Numbers stay json.Number so re-encoding does not alter them.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level JSON value")
	}
	return doc, nil
}
