package render

import (
	"fmt"
	"time"
)

// TimeAgo formats a unix timestamp relative to now, e.g. "3 hours ago".
func TimeAgo(unix int64) string {
	return Since(time.Unix(unix, 0), time.Now())
}

// Since formats the distance from t to now.
func Since(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return ago(int(d/time.Second), "second")
	case d < time.Hour:
		return ago(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return ago(int(d/time.Hour), "hour")
	case d < 30*24*time.Hour:
		return ago(int(d/(24*time.Hour)), "day")
	case d < 365*24*time.Hour:
		return ago(int(d/(30*24*time.Hour)), "month")
	}
	return ago(int(d/(365*24*time.Hour)), "year")
}

func ago(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
