package utils

import (
	"time"
)

// TimeNowIn returns the current time in the named IANA zone, falling back to UTC
// when the zone is empty or unknown.
func TimeNowIn(zone string) time.Time {
	if zone == "" {
		return time.Now().UTC()
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Now().In(loc)
}
