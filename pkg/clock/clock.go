// Package clock parses the wall-clock strings the booking API exchanges
// ("10:00 AM", "12:00 PM") into comparable minutes-since-midnight, so overlap
// checks are arithmetic instead of string comparison.
package clock

import (
	"fmt"
	"time"
)

const (
	kitchenLayout = "3:04 PM"
	paddedLayout  = "03:04 PM"
	dateLayout    = "2006-01-02"
)

// Minutes converts a clock string to minutes since midnight. Both "9:00 AM"
// and "09:00 AM" are accepted.
func Minutes(s string) (int, error) {
	t, err := time.Parse(kitchenLayout, s)
	if err != nil {
		t, err = time.Parse(paddedLayout, s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: must look like \"10:00 AM\"", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsValid reports whether s parses as a clock string.
func IsValid(s string) bool {
	_, err := Minutes(s)
	return err == nil
}

// IsValidDate reports whether s is a calendar date like "2025-11-05".
func IsValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// Overlaps applies the strict half-open interval test: two intervals overlap
// when each starts before the other ends.
func Overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && end1 > start2
}
