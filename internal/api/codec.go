package api

import (
	"bytes"
	"encoding/json"
)

// The codec is lenient: unknown fields are ignored and missing fields keep
// their zero value. Required fields are validated by the caller.

func encodeJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func decodeJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// isEmptyBody treats whitespace and a bare JSON null as no body at all.
func isEmptyBody(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
