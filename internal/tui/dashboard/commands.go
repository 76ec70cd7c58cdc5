package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/barbar/internal/bar"
	"github.com/alexisbeaulieu97/barbar/internal/config"
)

func tickCmd() tea.Cmd {
	return tea.Tick(bar.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// pregenerateCmd renders every configured variant off the UI loop.
func pregenerateCmd(svc CacheService, defs []config.ButtonDefinition) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result := svc.PregenerateAll(defs)
		return PregenerateCompleteMsg{Result: result, Duration: time.Since(start)}
	}
}

func clearCacheCmd(svc CacheService) tea.Cmd {
	return func() tea.Msg {
		return CacheClearedMsg{Err: svc.ClearCache()}
	}
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
