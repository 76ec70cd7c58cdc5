// Package bar drives a row of buttons from a periodic tick: it resolves each
// button's state, swaps its icon when the state changes and keeps its timer
// label current.
package bar

import (
	"time"

	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/logger"
	"github.com/alexisbeaulieu97/barbar/internal/pixel"
	"github.com/alexisbeaulieu97/barbar/internal/state"
)

// TickInterval is how often the bar expects Tick to be called.
const TickInterval = 100 * time.Millisecond

// IconSource renders button icons.
type IconSource interface {
	GetIconSized(sheetID string, iconIndex int, variantRaw string, width, height int) (*pixel.Buffer, error)
}

// Evaluator evaluates state conditions and timers.
type Evaluator interface {
	state.Evaluator
	Timer(expr string, vars map[string]any) int
}

// Button is the displayed state of one button.
type Button struct {
	Def       config.ButtonDefinition
	State     config.StateName
	Icon      *pixel.Buffer
	IconErr   error
	Tooltip   string
	Timer     int
	TimerText string

	resolved   bool
	nextUpdate time.Time
}

// Options configures a Bar.
type Options struct {
	// IconSize is the displayed icon edge length; <= 0 selects config.DefaultIconSize.
	IconSize int
	// ShowTimers enables timer evaluation.
	ShowTimers bool
	// Vars supplies the expression variables for each update; nil means none.
	Vars func() map[string]any
}

// Bar holds the runtime state of a set of buttons. It is not safe for
// concurrent use; the tick loop owns it.
type Bar struct {
	buttons  []*Button
	index    map[string]*Button
	icons    IconSource
	eval     Evaluator
	resolver *state.Resolver
	times    *state.TimeFormatter
	opts     Options
	log      *logger.Logger
}

// New creates a Bar for defs. Buttons are updated on the first Tick.
func New(defs []config.ButtonDefinition, icons IconSource, eval Evaluator, resolver *state.Resolver, opts Options, log *logger.Logger) *Bar {
	if opts.IconSize <= 0 {
		opts.IconSize = config.DefaultIconSize
	}
	if resolver == nil {
		resolver = state.NewResolver(eval)
	}

	b := &Bar{
		index:    make(map[string]*Button, len(defs)),
		icons:    icons,
		eval:     eval,
		resolver: resolver,
		times:    state.NewTimeFormatter(0),
		opts:     opts,
		log:      log.Component("bar"),
	}
	for _, def := range defs {
		btn := &Button{Def: def, Tooltip: def.Name}
		b.buttons = append(b.buttons, btn)
		b.index[def.Key] = btn
	}
	return b
}

// Buttons returns a snapshot of every button in configuration order.
func (b *Bar) Buttons() []Button {
	out := make([]Button, 0, len(b.buttons))
	for _, btn := range b.buttons {
		out = append(out, *btn)
	}
	return out
}

// Button returns a snapshot of the button with key.
func (b *Bar) Button(key string) (Button, bool) {
	btn, ok := b.index[key]
	if !ok {
		return Button{}, false
	}
	return *btn, true
}

// ShowTimers reports whether timers are evaluated.
func (b *Bar) ShowTimers() bool {
	return b.opts.ShowTimers
}

// SetShowTimers toggles timer evaluation and schedules every button for an
// immediate update.
func (b *Bar) SetShowTimers(show bool) {
	b.opts.ShowTimers = show
	b.Invalidate()
}

// Invalidate makes every button due on the next Tick.
func (b *Bar) Invalidate() {
	for _, btn := range b.buttons {
		btn.nextUpdate = time.Time{}
	}
}

// Tick updates every button whose next update time has passed and reports
// whether anything visible changed.
func (b *Bar) Tick(now time.Time) bool {
	vars := b.vars()
	redraw := false

	for _, btn := range b.buttons {
		if now.Before(btn.nextUpdate) {
			continue
		}
		if b.update(btn, vars, now) {
			redraw = true
		}
		btn.nextUpdate = now.Add(state.UpdateInterval(btn.Timer))
	}

	return redraw
}

// Press returns the command bound to the button's freshly determined state.
// ok is false when the button is unknown or the state has no command.
func (b *Bar) Press(key string) (cmd string, ok bool) {
	btn, found := b.index[key]
	if !found {
		return "", false
	}

	current := b.resolver.Refresh(btn.Def, b.vars())
	cmd = btn.Def.Command(current)
	if cmd == "" {
		return "", false
	}

	b.log.WithFields(map[string]any{"button": key, "state": string(current)}).Debug("button pressed")
	return cmd, true
}

func (b *Bar) update(btn *Button, vars map[string]any, now time.Time) bool {
	changed := false

	current := b.resolver.ResolveAt(btn.Def, vars, now)
	if !btn.resolved || current != btn.State {
		btn.State = current
		btn.resolved = true
		btn.Tooltip = btn.Def.Tooltip(current)
		btn.Icon, btn.IconErr = b.renderIcon(btn.Def, current)
		changed = true
	}

	timer := b.timer(btn.Def, current, vars)
	if timer != btn.Timer {
		btn.Timer = timer
		btn.TimerText = ""
		if timer > 0 {
			btn.TimerText = b.times.Format(timer)
		}
		changed = true
	}

	return changed
}

func (b *Bar) renderIcon(def config.ButtonDefinition, name config.StateName) (*pixel.Buffer, error) {
	if def.Image == "" || b.icons == nil {
		return nil, nil
	}

	spec, _ := def.State(name)
	icon, err := b.icons.GetIconSized(def.Image, spec.IconIndex(), spec.Variant, b.opts.IconSize, b.opts.IconSize)
	if err != nil {
		b.log.WithFields(map[string]any{
			"button": def.Key,
			"state":  string(name),
		}).Error(err, "failed to render button icon")
		return nil, err
	}
	return icon, nil
}

func (b *Bar) timer(def config.ButtonDefinition, name config.StateName, vars map[string]any) int {
	if !b.opts.ShowTimers {
		return 0
	}
	spec, ok := def.State(name)
	if !ok || !spec.HasTimer() {
		return 0
	}
	return b.eval.Timer(spec.Timer, vars)
}

func (b *Bar) vars() map[string]any {
	if b.opts.Vars == nil {
		return nil
	}
	return b.opts.Vars()
}
