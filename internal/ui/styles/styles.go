// Package styles holds the dashboard palette and the lipgloss styles shared by every tab.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Primary   = lipgloss.Color("205") // Pink
	Secondary = lipgloss.Color("63")  // Purple
	Subtle    = lipgloss.Color("240")
	Border    = lipgloss.Color("238")

	// ChartLine draws the sales trend, ChartBar the revenue histogram.
	ChartLine = lipgloss.Color("39")  // Blue
	ChartBar  = lipgloss.Color("117") // Sky blue

	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")
)

// Page layout.
var (
	// DocStyle wraps every tab body.
	DocStyle = lipgloss.NewStyle().Margin(1, 2).Padding(0, 1)

	// TitleStyle is the tab heading, e.g. "Operations KPI Dashboard".
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)

	// CardStyle frames one dashboard section.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Subtle).
			Padding(1, 2).
			MarginBottom(1)

	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)

	InfoTextStyle = lipgloss.NewStyle().Foreground(Info)
)

// KPI callouts.
var (
	MetricCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 2).
			MarginRight(1)

	MetricLabelStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	MetricValueStyle = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
)

// Tables.
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(Subtle)

	TableSelectedStyle = lipgloss.NewStyle().
				Background(BgAccent).
				Foreground(TextPrimary).
				Bold(true)
)

// Date inputs and buttons on the filter form.
var (
	inputBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	FocusedStyle       = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	BlurredStyle       = lipgloss.NewStyle().Foreground(TextMuted)
	FocusedBorderStyle = inputBox.BorderForeground(Primary)
	BlurredBorderStyle = inputBox.BorderForeground(Subtle)

	button              = lipgloss.NewStyle().Padding(0, 2).MarginRight(1)
	ButtonActiveStyle   = button.Background(Primary).Foreground(lipgloss.Color("229")).Bold(true)
	ButtonInactiveStyle = button.Background(BgLight).Foreground(TextSecondary)
)

// Help and notifications.
var (
	HelpStyle          = lipgloss.NewStyle().Foreground(TextMuted)
	HelpKeyStyle       = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpDescStyle      = lipgloss.NewStyle().Foreground(TextSecondary)
	HelpSeparatorStyle = lipgloss.NewStyle().Foreground(Subtle)

	// HelpPanelStyle is the "?" overlay.
	HelpPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 3).
			Background(BgDark)

	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// CenterBoth places content in the middle of a width x height box.
func CenterBoth(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
