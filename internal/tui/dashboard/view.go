package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/barbar/internal/bar"
	"github.com/alexisbeaulieu97/barbar/internal/config"
	"github.com/alexisbeaulieu97/barbar/internal/pixel"
)

// View renders the current model state
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(errorBannerStyle.Render(m.errorMsg))
		content.WriteString("\n")
	}

	content.WriteString(m.renderButtonList())
	content.WriteString("\n")
	content.WriteString(m.renderFooter())

	return content.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("BarBar")

	var summary string
	switch {
	case m.pregenerating:
		summary = fmt.Sprintf("%s Pregenerating variants...", m.spinner.View())
	case m.status != "":
		summary = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, summary)
}

func (m Model) renderButtonList() string {
	buttons := m.bar.Buttons()
	if len(buttons) == 0 {
		return itemStyle.Render("No buttons configured.")
	}

	rows := make([]string, 0, len(buttons))
	for i, btn := range buttons {
		rows = append(rows, m.renderButton(btn, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderButton(btn bar.Button, selected bool) string {
	parts := []string{
		swatch(btn.Icon),
		fmt.Sprintf("%-16s", btn.Def.Key),
		stateBadge(btn.State),
	}
	if btn.TimerText != "" {
		parts = append(parts, timerStyle.Render(btn.TimerText))
	}
	if btn.Tooltip != "" {
		parts = append(parts, btn.Tooltip)
	}
	if btn.IconErr != nil {
		parts = append(parts, errorBannerStyle.Render(btn.IconErr.Error()))
	}

	line := strings.Join(parts, "  ")
	if selected {
		return selectedItemStyle.Render(line)
	}
	return itemStyle.Render(line)
}

func (m Model) renderFooter() string {
	timers := "show"
	if m.bar.ShowTimers() {
		timers = "hide"
	}
	help := fmt.Sprintf("↑/↓ select • enter press • t %s timers • p pregenerate • c clear cache • q quit", timers)
	return footerStyle.Render(help)
}

func stateBadge(state config.StateName) string {
	label := fmt.Sprintf("%-16s", state)
	switch state {
	case config.StateActiveReady:
		return activeReadyStyle.Render(label)
	case config.StateActiveUnready:
		return activeUnreadyStyle.Render(label)
	case config.StateInactiveReady:
		return inactiveReadyStyle.Render(label)
	default:
		return inactiveUnreadyStyle.Render(label)
	}
}

// swatch previews an icon as a two-cell block of its average opaque color.
func swatch(icon *pixel.Buffer) string {
	if icon == nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(averageColor(icon))).Render("  ")
}

func averageColor(icon *pixel.Buffer) string {
	var r, g, b, n int
	for y := 0; y < icon.Height; y++ {
		for x := 0; x < icon.Width; x++ {
			c := icon.At(x, y)
			if c.A == 0 {
				continue
			}
			r += int(c.R)
			g += int(c.G)
			b += int(c.B)
			n++
		}
	}
	if n == 0 {
		return "#000000"
	}
	return fmt.Sprintf("#%02x%02x%02x", r/n, g/n, b/n)
}
