// Package state decides which state a button is in and how soon it needs to
// be looked at again.
package state

import (
	"sync"
	"time"

	"github.com/alexisbeaulieu97/barbar/internal/config"
)

// CacheTTL is how long a resolved state is reused before conditions are
// evaluated again.
const CacheTTL = 100 * time.Millisecond

// Evaluator evaluates condition expressions. Failures must come back as false.
type Evaluator interface {
	Condition(expr string, vars map[string]any) bool
}

// Determine returns the first state, in priority order, whose condition is
// truthy. A button without any condition is inactive_unready and the
// evaluator is never consulted.
func Determine(def config.ButtonDefinition, ev Evaluator, vars map[string]any) config.StateName {
	if !def.HasConditions() {
		return config.StateInactiveUnready
	}

	for _, name := range config.StatePriority {
		spec, ok := def.State(name)
		if !ok || !spec.HasCondition() {
			continue
		}
		if ev.Condition(spec.Condition, vars) {
			return name
		}
	}

	return config.StateInactiveUnready
}

type memo struct {
	state config.StateName
	at    time.Time
}

// Resolver memoizes Determine per button for CacheTTL.
type Resolver struct {
	ev  Evaluator
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	memos map[string]memo
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithTTL replaces CacheTTL.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.ttl = ttl
	}
}

// NewResolver creates a Resolver backed by ev.
func NewResolver(ev Evaluator, opts ...Option) *Resolver {
	r := &Resolver{
		ev:    ev,
		ttl:   CacheTTL,
		now:   time.Now,
		memos: make(map[string]memo),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the button's state, reusing the last result while it is
// younger than the TTL.
func (r *Resolver) Resolve(def config.ButtonDefinition, vars map[string]any) config.StateName {
	return r.resolve(def, vars, r.now(), false)
}

// ResolveAt is Resolve with the current time supplied by a caller that runs
// on its own clock, such as a tick loop.
func (r *Resolver) ResolveAt(def config.ButtonDefinition, vars map[string]any, now time.Time) config.StateName {
	return r.resolve(def, vars, now, false)
}

// Refresh re-evaluates the button's state regardless of the TTL.
func (r *Resolver) Refresh(def config.ButtonDefinition, vars map[string]any) config.StateName {
	return r.resolve(def, vars, r.now(), true)
}

func (r *Resolver) resolve(def config.ButtonDefinition, vars map[string]any, now time.Time, force bool) config.StateName {
	r.mu.Lock()
	last, ok := r.memos[def.Key]
	r.mu.Unlock()

	if ok && !force && now.Sub(last.at) < r.ttl {
		return last.state
	}

	state := Determine(def, r.ev, vars)

	r.mu.Lock()
	r.memos[def.Key] = memo{state: state, at: now}
	r.mu.Unlock()

	return state
}

// Forget drops the memo for key.
func (r *Resolver) Forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.memos, key)
}
