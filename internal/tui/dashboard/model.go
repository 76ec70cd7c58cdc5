package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/barbar/internal/bar"
	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/variantcache"
)

// CacheService is the part of the icon service the dashboard drives.
type CacheService interface {
	PregenerateAll(defs []config.ButtonDefinition) variantcache.PregenerateResult
	ClearCache() error
}

// Model is the watch dashboard: a live view of the bar runtime.
type Model struct {
	bar      *bar.Bar
	defs     []config.ButtonDefinition
	service  CacheService
	settings *config.SettingsStore
	onPress  func(cmd string)

	// UI state
	cursor  int
	spinner spinner.Model
	width   int
	height  int

	// Operation state
	pregenerating bool
	status        string
	showError     bool
	errorMsg      string
	lastTick      time.Time
	quitting      bool
}

// Options configures a Model.
type Options struct {
	// Settings persists the timer toggle; nil disables persistence.
	Settings *config.SettingsStore
	// OnPress receives the command of a pressed button.
	OnPress func(cmd string)
}

// NewModel creates a dashboard over a bar runtime.
func NewModel(b *bar.Bar, defs []config.ButtonDefinition, svc CacheService, opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		bar:      b,
		defs:     defs,
		service:  svc,
		settings: opts.Settings,
		onPress:  opts.OnPress,
		spinner:  s,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.spinner.Tick)
}

// Cursor returns the selected button index.
func (m Model) Cursor() int {
	return m.cursor
}

// Status returns the last status line.
func (m Model) Status() string {
	return m.status
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) selectedKey() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.defs) {
		return "", false
	}
	return m.defs[m.cursor].Key, true
}
