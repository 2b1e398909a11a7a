package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// maxBodyBytes caps admin request bodies; MDX pages are the largest payload
const maxBodyBytes = 2 << 20

// ParseJSON decodes JSON from the request body into dest. The body is capped
// at maxBodyBytes and trailing data after the first value is rejected.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if decoder.More() {
		return fmt.Errorf("invalid JSON: unexpected data after the request object")
	}

	return nil
}

// PathSegments splits the named trailing wildcard ({name...}) into its
// slash-separated parts. Empty parts from doubled or trailing slashes are
// kept so callers can reject them.
func PathSegments(r *http.Request, name string) []string {
	raw := r.PathValue(name)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}
