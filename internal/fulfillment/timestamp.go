package fulfillment

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var clockLayouts = []string{"15:04:05.999999999", "15:04"}

var erpDateTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	dateLayout,
}

// PostingTimestamp combines an ERP posting_date and posting_time into a single
// instant in loc. Both parts must be present and well formed.
func PostingTimestamp(date, clock string, loc *time.Location) (*time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return nil, false
	}
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return nil, false
	}

	for _, layout := range clockLayouts {
		tod, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		ts := time.Date(day.Year(), day.Month(), day.Day(),
			tod.Hour(), tod.Minute(), tod.Second(), tod.Nanosecond(), loc)
		return &ts, true
	}
	return nil, false
}

// ParseERPDateTime parses creation/modified values. Returns nil when value is
// empty or unparseable.
func ParseERPDateTime(value string, loc *time.Location) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range erpDateTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &t
		}
	}
	return nil
}
