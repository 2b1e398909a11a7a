package httputil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// OptionalString is a PATCH field (RFC 7396) that distinguishes an absent
// key from an explicit null:
//   - Present=false: key absent, leave the stored value alone
//   - Present=true, Value=nil: key is null, clear the stored value
//   - Present=true, Value!=nil: key carries a string
type OptionalString struct {
	Present bool
	Value   *string
}

// SetString returns a present OptionalString holding v (nil means null).
func SetString(v *string) OptionalString {
	return OptionalString{Present: true, Value: v}
}

// Trimmed returns the value with surrounding space removed. Null and blank
// strings both come back as nil, so "" clears a description the same way
// null does.
func (o OptionalString) Trimmed() *string {
	if o.Value == nil {
		return nil
	}
	s := strings.TrimSpace(*o.Value)
	if s == "" {
		return nil
	}
	return &s
}

// UnmarshalJSON records that the key was present. JSON only calls it for
// keys that appear in the object.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}
