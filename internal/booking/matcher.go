package booking

import (
	"strings"
	"time"
)

// opensOnLayouts covers the timestamp shapes the remote catalog emits for
// bookingOpensOn: zoned RFC3339, naive date-time, bare date.
var opensOnLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FindTarget scans the catalog for the instance to book: its name must equal
// name case-insensitively and the date portion of its booking-open timestamp
// must be exactly today. The first qualifying instance in catalog order
// wins; duplicates opening the same day are intentionally not disambiguated.
// Instances with an unparseable timestamp never qualify.
func FindTarget(catalog []Class, name string, today time.Time) (Class, bool) {
	want := today.Format("2006-01-02")
	for _, c := range catalog {
		if !strings.EqualFold(c.Name, name) {
			continue
		}
		opens, err := parseOpensOn(c.BookingOpensOn)
		if err != nil {
			continue
		}
		if opens.Format("2006-01-02") == want {
			return c, true
		}
	}
	return Class{}, false
}

func parseOpensOn(s string) (time.Time, error) {
	var err error
	for _, layout := range opensOnLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
