package utils

import (
	// Go Internal Packages
	"strings"
	"time"

	// External Packages
	"github.com/google/uuid"
)

// ShortID returns the first n characters of a fresh random UUID, upper-cased.
// n is capped at 8 so the result never contains a dash.
func ShortID(n int) string {
	if n > 8 {
		n = 8
	}
	return strings.ToUpper(uuid.NewString()[:n])
}

// EpochMillis returns t as milliseconds since the Unix epoch.
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
