// Package json decodes raw JSON request bodies into the loose values the
// schema engine consumes. Numbers are preserved as json.Number so integer
// fields never lose precision through an intermediate float64.
package json

import (
	"bytes"
	"io"

	j "github.com/goccy/go-json"

	restshape "github.com/restshape/restshape"
)

// DecodeBytes decodes a JSON document into a loose value (map[string]any,
// []any, or scalar). A decode failure is reported as Issues with
// CodeParseError, matching the engine's error contract.
func DecodeBytes(b []byte) (any, error) {
	return DecodeReader(bytes.NewReader(b))
}

// DecodeReader is DecodeBytes over an io.Reader.
func DecodeReader(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeParseError, Message: "Invalid JSON request body", Cause: err}}
	}
	// Trailing garbage after the document is a malformed body too.
	if err := dec.Decode(new(any)); err != io.EOF {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeParseError, Message: "Invalid JSON request body"}}
	}
	return v, nil
}
