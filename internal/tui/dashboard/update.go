package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/barbar/internal/config"
)

const errorDisplayTime = 5 * time.Second

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		m.lastTick = time.Time(msg)
		m.bar.Tick(m.lastTick)
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PregenerateCompleteMsg:
		m.pregenerating = false
		m.status = fmt.Sprintf("Pregenerated %d icons in %s", msg.Result.Generated, msg.Duration.Round(time.Millisecond))
		if n := len(msg.Result.Errors); n > 0 {
			m.showError = true
			m.errorMsg = fmt.Sprintf("%d variants failed: %s", n, msg.Result.Errors[0])
			return m, clearErrorAfter(errorDisplayTime)
		}
		return m, nil

	case CacheClearedMsg:
		if msg.Err != nil {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Clearing cache failed: %s", msg.Err)
			return m, clearErrorAfter(errorDisplayTime)
		}
		m.bar.Invalidate()
		m.status = "Cache cleared"
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.defs)-1 {
			m.cursor++
		}
		return m, nil

	case "enter", " ":
		key, ok := m.selectedKey()
		if !ok {
			return m, nil
		}
		cmd, ok := m.bar.Press(key)
		if !ok {
			m.status = fmt.Sprintf("%s: nothing to send", key)
			return m, nil
		}
		m.status = fmt.Sprintf("> %s", cmd)
		if m.onPress != nil {
			m.onPress(cmd)
		}
		return m, nil

	case "t":
		show := !m.bar.ShowTimers()
		m.bar.SetShowTimers(show)
		if m.settings != nil {
			m.settings.Update(func(s *config.Settings) { s.ShowTimers = show })
		}
		if show {
			m.status = "Timers shown"
		} else {
			m.status = "Timers hidden"
		}
		return m, nil

	case "p":
		if m.pregenerating || m.service == nil {
			return m, nil
		}
		m.pregenerating = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, pregenerateCmd(m.service, m.defs))

	case "c":
		if m.pregenerating || m.service == nil {
			return m, nil
		}
		return m, clearCacheCmd(m.service)
	}

	return m, nil
}
