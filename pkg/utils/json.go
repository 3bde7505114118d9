package utils

import (
	"bytes"
	"encoding/json"
)

// MarshalJSON encodes v like json.Marshal but leaves <, > and & unescaped,
// so HTML content reads the same on the wire as in the editor
func MarshalJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
