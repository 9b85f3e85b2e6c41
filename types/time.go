package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Time represents a time.Time object that can be unmarshalled from the unix
// timestamps returned by the exchange. These arrive as numbers or strings, in
// seconds with an optional fractional part ("1444266681.22") or as whole
// millisecond, microsecond or nanosecond values.
// MarshalJSON serializes the time to JSON using RFC 3339 format.
type Time time.Time

// UnmarshalJSON deserializes json, and timestamp information.
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)

	switch s {
	case "null", "0", `""`, `"0"`:
		*t = Time(time.Time{})
		return nil
	}

	if s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return fmt.Errorf("%w for `%v`", strconv.ErrSyntax, string(data))
	}

	standard, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return err
	}

	if hasFrac && len(whole) <= 10 {
		// Seconds with a fractional part, precision beyond nanoseconds is dropped
		if len(frac) > 9 {
			frac = frac[:9]
		}
		var nanos int64
		if frac != "" {
			nanos, err = strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
			if err != nil {
				return err
			}
		}
		*t = Time(time.Unix(standard, nanos))
		return nil
	}

	switch {
	case len(whole) <= 10:
		*t = Time(time.Unix(standard, 0))
	case len(whole) <= 13:
		*t = Time(time.UnixMilli(standard))
	case len(whole) <= 16:
		*t = Time(time.UnixMicro(standard))
	case len(whole) <= 19:
		*t = Time(time.Unix(0, standard))
	default:
		return fmt.Errorf("cannot unmarshal %s into Time", string(data))
	}
	return nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Time represents a time instance.
func (t Time) Time() time.Time { return time.Time(t) }

// String returns a string representation of the time.
func (t Time) String() string {
	return t.Time().String()
}

// MarshalJSON serializes the time to json.
func (t Time) MarshalJSON() ([]byte, error) {
	return t.Time().MarshalJSON()
}
