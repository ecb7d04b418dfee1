// Package payload checks the shape of list responses before they are
// trusted.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var ErrMalformed = errors.New("malformed response payload")

// Shape names where the list lives in a response body.
type Shape int

const (
	// Array expects the body itself to be a JSON array.
	Array Shape = iota
	// Envelope expects an object whose "data" field is an array.
	Envelope
	// Either accepts both forms, preferring a root array.
	Either
)

// DecodeList validates body against shape and decodes the list into out,
// which must point to a slice.
func DecodeList(body []byte, shape Shape, out interface{}) error {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: empty or invalid JSON", ErrMalformed)
	}
	root := gjson.ParseBytes(body)

	var list gjson.Result
	switch {
	case shape != Envelope && root.IsArray():
		list = root
	case shape != Array && root.IsObject():
		list = root.Get("data")
		if !list.IsArray() {
			return fmt.Errorf("%w: data is not an array", ErrMalformed)
		}
	default:
		return fmt.Errorf("%w: unexpected %s body", ErrMalformed, root.Type)
	}

	if err := json.Unmarshal([]byte(list.Raw), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// Field returns the string at path, or "" when absent.
func Field(body []byte, path string) string {
	return gjson.GetBytes(body, path).String()
}
