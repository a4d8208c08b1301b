package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexID is a numeric identifier that unmarshals from either a JSON number or
// a quoted numeric string. Integration hub payloads are inconsistent about
// which one they send.
type FlexID uint

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	value, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric id %q: %w", string(data), err)
	}
	*f = FlexID(value)
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint(f))
}

// Constants
const (
	DATETIME_LAYOUT = "2006-01-02 15:04:05"
)
