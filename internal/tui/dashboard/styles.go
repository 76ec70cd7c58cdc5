package dashboard

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("99")  // Purple
	successColor = lipgloss.Color("42")  // Green
	warningColor = lipgloss.Color("226") // Yellow
	errorColor   = lipgloss.Color("196") // Red
	mutedColor   = lipgloss.Color("245") // Gray
	accentColor  = lipgloss.Color("212") // Pink

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			PaddingRight(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				PaddingRight(2).
				Foreground(accentColor).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(primaryColor)

	// State badge styles
	activeReadyStyle = lipgloss.NewStyle().
				Foreground(successColor).
				Bold(true)

	activeUnreadyStyle = lipgloss.NewStyle().
				Foreground(warningColor).
				Bold(true)

	inactiveReadyStyle = lipgloss.NewStyle().
				Foreground(accentColor)

	inactiveUnreadyStyle = lipgloss.NewStyle().
				Foreground(mutedColor)

	timerStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(mutedColor).
			PaddingTop(1).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Background(lipgloss.Color("52")). // Dark red background
				Bold(true).
				Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().Foreground(primaryColor)
)
