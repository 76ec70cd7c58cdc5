package bar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/pixel"
	"github.com/alexisbeaulieu97/barbar/internal/state"
)

type iconCall struct {
	sheet   string
	icon    int
	variant string
	size    int
}

type fakeIcons struct {
	calls []iconCall
}

func (f *fakeIcons) GetIconSized(sheetID string, iconIndex int, variantRaw string, width, height int) (*pixel.Buffer, error) {
	f.calls = append(f.calls, iconCall{sheet: sheetID, icon: iconIndex, variant: variantRaw, size: width})
	if sheetID == "missing" {
		return nil, errors.New("sheet not found")
	}
	return pixel.New(width, height, 4), nil
}

type fakeEval struct {
	conditions map[string]bool
	timers     map[string]int
	timerCalls int
}

func (f *fakeEval) Condition(expr string, _ map[string]any) bool {
	return f.conditions[expr]
}

func (f *fakeEval) Timer(expr string, _ map[string]any) int {
	f.timerCalls++
	return f.timers[expr]
}

var start = time.Unix(1_700_000_000, 0)

func zealButton() config.ButtonDefinition {
	return config.ButtonDefinition{
		Key:   "zeal",
		Name:  "Zealotry",
		Image: "spells",
		States: map[config.StateName]config.StateSpec{
			config.StateActiveReady: {
				Variant:   "c_00ff00",
				Icon:      3,
				Condition: "ready",
				Command:   "/cast zealotry",
				Tooltip:   "Zealotry is ready",
			},
			config.StateInactiveUnready: {
				Variant: "gs",
				Icon:    3,
				Timer:   "cooldown",
			},
		},
	}
}

func newBar(t *testing.T, defs []config.ButtonDefinition, eval *fakeEval, showTimers bool) (*Bar, *fakeIcons) {
	t.Helper()
	icons := &fakeIcons{}
	b := New(defs, icons, eval, state.NewResolver(eval), Options{IconSize: 48, ShowTimers: showTimers}, nil)
	return b, icons
}

func TestTickRendersOnFirstUpdateOnly(t *testing.T) {
	t.Parallel()

	eval := &fakeEval{conditions: map[string]bool{"ready": true}}
	b, icons := newBar(t, []config.ButtonDefinition{zealButton()}, eval, false)

	require.True(t, b.Tick(start))
	require.Equal(t, []iconCall{{sheet: "spells", icon: 3, variant: "c_00ff00", size: 48}}, icons.calls)

	btn, ok := b.Button("zeal")
	require.True(t, ok)
	assert.Equal(t, config.StateActiveReady, btn.State)
	assert.Equal(t, "Zealotry is ready", btn.Tooltip)
	assert.Equal(t, 48, btn.Icon.Width)

	// Not due yet.
	assert.False(t, b.Tick(start.Add(50*time.Millisecond)))
	// Due, but nothing changed.
	assert.False(t, b.Tick(start.Add(300*time.Millisecond)))
	assert.Len(t, icons.calls, 1)
}

func TestTickSwapsIconOnStateChange(t *testing.T) {
	t.Parallel()

	eval := &fakeEval{conditions: map[string]bool{"ready": true}}
	b, icons := newBar(t, []config.ButtonDefinition{zealButton()}, eval, false)

	b.Tick(start)
	eval.conditions["ready"] = false

	assert.True(t, b.Tick(start.Add(300*time.Millisecond)))
	require.Len(t, icons.calls, 2)
	assert.Equal(t, "gs", icons.calls[1].variant)

	btn, _ := b.Button("zeal")
	assert.Equal(t, config.StateInactiveUnready, btn.State)
	assert.Equal(t, "Zealotry", btn.Tooltip)
}

func TestTickTimersSlowDownUpdates(t *testing.T) {
	t.Parallel()

	eval := &fakeEval{timers: map[string]int{"cooldown": 42}}
	b, _ := newBar(t, []config.ButtonDefinition{zealButton()}, eval, true)

	require.True(t, b.Tick(start))
	btn, _ := b.Button("zeal")
	assert.Equal(t, 42, btn.Timer)
	assert.Equal(t, "42s", btn.TimerText)
	assert.Equal(t, 1, eval.timerCalls)

	eval.timers["cooldown"] = 41
	assert.False(t, b.Tick(start.Add(time.Second)))
	assert.Equal(t, 1, eval.timerCalls)

	assert.True(t, b.Tick(start.Add(5*time.Second)))
	btn, _ = b.Button("zeal")
	assert.Equal(t, "41s", btn.TimerText)

	eval.timers["cooldown"] = 0
	assert.True(t, b.Tick(start.Add(10*time.Second)))
	btn, _ = b.Button("zeal")
	assert.Zero(t, btn.Timer)
	assert.Empty(t, btn.TimerText)
}

func TestTimersHiddenSkipEvaluation(t *testing.T) {
	t.Parallel()

	eval := &fakeEval{timers: map[string]int{"cooldown": 120}}
	b, _ := newBar(t, []config.ButtonDefinition{zealButton()}, eval, false)

	b.Tick(start)
	btn, _ := b.Button("zeal")
	assert.Zero(t, btn.Timer)
	assert.Zero(t, eval.timerCalls)

	b.SetShowTimers(true)
	assert.True(t, b.ShowTimers())
	assert.True(t, b.Tick(start.Add(10*time.Millisecond)))
	btn, _ = b.Button("zeal")
	assert.Equal(t, "2m", btn.TimerText)
}

func TestIconFailureIsRecorded(t *testing.T) {
	t.Parallel()

	def := zealButton()
	def.Image = "missing"
	noImage := config.ButtonDefinition{Key: "blank", Name: "Blank"}

	eval := &fakeEval{}
	b, icons := newBar(t, []config.ButtonDefinition{def, noImage}, eval, false)

	require.True(t, b.Tick(start))
	buttons := b.Buttons()
	require.Len(t, buttons, 2)

	assert.Nil(t, buttons[0].Icon)
	assert.EqualError(t, buttons[0].IconErr, "sheet not found")
	assert.Nil(t, buttons[1].Icon)
	assert.NoError(t, buttons[1].IconErr)
	assert.Len(t, icons.calls, 1)
}

func TestPress(t *testing.T) {
	t.Parallel()

	eval := &fakeEval{conditions: map[string]bool{"ready": true}}
	b, _ := newBar(t, []config.ButtonDefinition{zealButton()}, eval, false)

	cmd, ok := b.Press("zeal")
	require.True(t, ok)
	assert.Equal(t, "/cast zealotry", cmd)

	eval.conditions["ready"] = false
	_, ok = b.Press("zeal")
	assert.False(t, ok)

	_, ok = b.Press("nope")
	assert.False(t, ok)
}
