package dashboard

import (
	"time"

	"github.com/alexisbeaulieu97/barbar/internal/variantcache"
)

// tickMsg drives the bar runtime.
type tickMsg time.Time

// PregenerateStartedMsg indicates a batch render has started.
type PregenerateStartedMsg struct {
	StartTime time.Time
}

// PregenerateCompleteMsg carries the outcome of a batch render.
type PregenerateCompleteMsg struct {
	Result   variantcache.PregenerateResult
	Duration time.Duration
}

// CacheClearedMsg reports the outcome of clearing the variant cache.
type CacheClearedMsg struct {
	Err error
}

// ClearErrorMsg requests error banner dismissal.
type ClearErrorMsg struct{}
