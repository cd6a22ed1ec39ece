package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxRequestBodyBytes caps request bodies; the largest legitimate payload is
// a project description, well under this limit.
const maxRequestBodyBytes = 1 << 20 // 1 MiB

// DecodeJSON decodes the request body into the given struct.
// The body size is capped and unknown fields are rejected.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
