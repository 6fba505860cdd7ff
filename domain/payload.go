package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Payloads arrive as flat key/value maps where query parameters are always
// strings and JSON bodies may carry native types. The types below accept both.

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = time.RFC3339Nano
)

// Flag is a bool that also accepts "true", "1" and "yes".
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*f = Flag(v)
	case float64:
		*f = v != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes":
			*f = true
		default:
			*f = false
		}
	case nil:
		*f = false
	default:
		return fmt.Errorf("cannot read %s as a flag", string(b))
	}
	return nil
}

// Number is an int that also accepts numeric strings.
type Number int

func (n *Number) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*n = Number(int(v))
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			*n = 0
			return nil
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("cannot read %q as a number", v)
		}
		*n = Number(i)
	case nil:
		*n = 0
	default:
		return fmt.Errorf("cannot read %s as a number", string(b))
	}
	return nil
}

// StringSet accepts either a single string or an array of strings.
type StringSet []string

func (s *StringSet) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*s = list
		return nil
	}
	var one *string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one == nil || *one == "" {
		*s = nil
		return nil
	}
	*s = StringSet{*one}
	return nil
}

func (s StringSet) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Lower returns a copy with every value lowercased.
func (s StringSet) Lower() StringSet {
	if s == nil {
		return nil
	}
	out := make(StringSet, len(s))
	for i, v := range s {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}

// Date is a calendar day. The zero value means "not set" and encodes as null.
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate reads YYYY-MM-DD or an RFC3339 timestamp. Blank input yields the zero Date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

func (d Date) Set() bool { return !d.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Quarter is the zero-based calendar quarter, floor(month0/3).
func (d Date) Quarter() int {
	return (int(d.Month()) - 1) / 3
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
