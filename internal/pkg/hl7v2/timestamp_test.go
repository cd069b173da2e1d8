package hl7v2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		dateTime  string
		date      string
		precision Precision
	}{
		{"year", "2010", "2010", "2010", PrecisionYear},
		{"month", "201003", "2010-03", "2010-03", PrecisionMonth},
		{"day", "20100331", "2010-03-31", "2010-03-31", PrecisionDay},
		{"hour rendered with seconds", "2010033117", "2010-03-31T17:00:00Z", "2010-03-31", PrecisionHour},
		{"minute defaults to UTC", "201003311715", "2010-03-31T17:15:00Z", "2010-03-31", PrecisionMinute},
		{"second", "20100331173057", "2010-03-31T17:30:57Z", "2010-03-31", PrecisionSecond},
		{"fraction dropped", "20100331173057.1234", "2010-03-31T17:30:57Z", "2010-03-31", PrecisionSecond},
		{"explicit offset", "20190514102527+0200", "2019-05-14T10:25:27+02:00", "2019-05-14", PrecisionSecond},
		{"negative offset", "201905141025-0500", "2019-05-14T10:25:00-05:00", "2019-05-14", PrecisionMinute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := ParseTimestamp(tt.value)
			assert.True(t, ok)
			assert.Equal(t, tt.precision, ts.Precision)
			assert.Equal(t, tt.dateTime, ts.DateTime())
			assert.Equal(t, tt.date, ts.Date())
		})
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, value := range []string{"", "abc", "20101", "2010133", "20101340", "201003311715+02"} {
		_, ok := ParseTimestamp(value)
		assert.False(t, ok, value)

		_, ok = DateTime(value)
		assert.False(t, ok, value)
	}
}
