package state

import (
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultUpdateInterval applies to buttons without a running timer.
	DefaultUpdateInterval = 250 * time.Millisecond

	formatCacheSize = 512
)

// UpdateInterval picks how long to wait before updating a button again from
// its current timer value in seconds. Short countdowns update every second,
// long ones progressively less often.
func UpdateInterval(timer int) time.Duration {
	switch {
	case timer <= 0:
		return DefaultUpdateInterval
	case timer <= 15:
		return time.Second
	case timer <= 3599:
		return 5 * time.Second
	default:
		return 300 * time.Second
	}
}

// FormatTime renders a countdown compactly: seconds below 100, whole minutes
// below 99 minutes, whole hours after that. Non-positive values render empty.
func FormatTime(seconds int) string {
	switch {
	case seconds <= 0:
		return ""
	case seconds < 100:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 5940:
		return fmt.Sprintf("%dm", int(math.Round(float64(seconds)/60)))
	default:
		return fmt.Sprintf("%dh", int(math.Round(float64(seconds)/3600)))
	}
}

// TimeFormatter memoizes FormatTime in a bounded cache.
type TimeFormatter struct {
	cache *lru.Cache[int, string]
}

// NewTimeFormatter creates a TimeFormatter holding up to size strings.
func NewTimeFormatter(size int) *TimeFormatter {
	if size <= 0 {
		size = formatCacheSize
	}
	cache, err := lru.New[int, string](size)
	if err != nil {
		// size is positive, so New cannot fail.
		panic(err)
	}
	return &TimeFormatter{cache: cache}
}

// Format returns FormatTime(seconds).
func (f *TimeFormatter) Format(seconds int) string {
	if s, ok := f.cache.Get(seconds); ok {
		return s
	}
	s := FormatTime(seconds)
	f.cache.Add(seconds, s)
	return s
}

// Len returns the number of cached strings.
func (f *TimeFormatter) Len() int {
	return f.cache.Len()
}
