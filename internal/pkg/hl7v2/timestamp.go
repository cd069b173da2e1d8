package hl7v2

import (
	"strconv"
	"strings"
	"time"
)

// Precision of a parsed HL7 DTM value.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
)

// Timestamp is an HL7 DTM/TS value with the precision it was sent at.
type Timestamp struct {
	Time      time.Time
	Precision Precision
}

var layouts = map[int]struct {
	layout    string
	precision Precision
}{
	4:  {"2006", PrecisionYear},
	6:  {"200601", PrecisionMonth},
	8:  {"20060102", PrecisionDay},
	10: {"2006010215", PrecisionHour},
	12: {"200601021504", PrecisionMinute},
	14: {"20060102150405", PrecisionSecond},
}

// ParseTimestamp parses YYYY[MM[DD[HH[MM[SS[.S+]]]]]][+/-ZZZZ]. Values without
// an offset are read as UTC. It reports false instead of failing.
func ParseTimestamp(value string) (Timestamp, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, false
	}

	loc := time.UTC
	if idx := strings.IndexAny(value, "+-"); idx > 0 {
		offset := value[idx:]
		value = value[:idx]
		parsed, ok := parseOffset(offset)
		if !ok {
			return Timestamp{}, false
		}
		loc = parsed
	}

	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		value = value[:idx]
	}

	spec, ok := layouts[len(value)]
	if !ok {
		return Timestamp{}, false
	}
	t, err := time.ParseInLocation(spec.layout, value, loc)
	if err != nil {
		return Timestamp{}, false
	}
	return Timestamp{Time: t, Precision: spec.precision}, true
}

func parseOffset(offset string) (*time.Location, bool) {
	if len(offset) != 5 {
		return nil, false
	}
	hours, err := strconv.Atoi(offset[1:3])
	if err != nil {
		return nil, false
	}
	minutes, err := strconv.Atoi(offset[3:5])
	if err != nil {
		return nil, false
	}
	seconds := hours*3600 + minutes*60
	if offset[0] == '-' {
		seconds = -seconds
	}
	return time.FixedZone(offset, seconds), true
}

// DateTime renders the value as a FHIR dateTime at its original precision.
// Hour and minute precision are rendered down to seconds since a FHIR
// dateTime that carries a time must include them.
func (t Timestamp) DateTime() string {
	switch t.Precision {
	case PrecisionYear:
		return t.Time.Format("2006")
	case PrecisionMonth:
		return t.Time.Format("2006-01")
	case PrecisionDay:
		return t.Time.Format("2006-01-02")
	default:
		return t.Time.Format(time.RFC3339)
	}
}

// Date renders the value as a FHIR date.
func (t Timestamp) Date() string {
	switch t.Precision {
	case PrecisionYear:
		return t.Time.Format("2006")
	case PrecisionMonth:
		return t.Time.Format("2006-01")
	default:
		return t.Time.Format("2006-01-02")
	}
}

// DateTime parses value and renders it as a FHIR dateTime, reporting false
// when value is absent or malformed.
func DateTime(value string) (string, bool) {
	ts, ok := ParseTimestamp(value)
	if !ok {
		return "", false
	}
	return ts.DateTime(), true
}

// Date parses value and renders it as a FHIR date.
func Date(value string) (string, bool) {
	ts, ok := ParseTimestamp(value)
	if !ok {
		return "", false
	}
	return ts.Date(), true
}
