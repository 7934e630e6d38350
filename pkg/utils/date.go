package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

var taipei = loadTaipei()

func loadTaipei() *time.Location {
	loc, err := time.LoadLocation("Asia/Taipei")
	if err != nil {
		// Taiwan has no DST; a fixed zone is equivalent when tzdata is missing.
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// TimeNowTaipei returns the current time in the Taiwan exchange time zone.
func TimeNowTaipei() time.Time {
	return time.Now().In(taipei)
}

// DaysAgo formats the calendar date n days before now as YYYY-MM-DD.
func DaysAgo(now time.Time, n int) string {
	return now.In(taipei).AddDate(0, 0, -n).Format(DateLayout)
}

// TaipeiLocation is the Taiwan exchange time zone.
func TaipeiLocation() *time.Location {
	return taipei
}

// PrettyDate formats t in Taipei time for messages.
func PrettyDate(t time.Time) string {
	return t.In(taipei).Format("2006-01-02 15:04")
}
