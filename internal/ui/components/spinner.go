package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// LoadingSpinner is the placeholder a tab shows until the first snapshot arrives.
type LoadingSpinner struct {
	spinner spinner.Model
	label   string
	detail  string
}

// NewSpinner creates a loading spinner with the given label.
func NewSpinner(label string) LoadingSpinner {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Primary)),
	)
	return LoadingSpinner{spinner: s, label: label}
}

// WithDetail returns a copy that prints detail in muted text under the label.
func (l LoadingSpinner) WithDetail(detail string) LoadingSpinner {
	l.detail = detail
	return l
}

// Init starts the spinner animation.
func (l LoadingSpinner) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on its own tick messages.
func (l LoadingSpinner) Update(msg tea.Msg) (LoadingSpinner, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the current frame only.
func (l LoadingSpinner) View() string {
	return l.spinner.View()
}

// ViewWithLabel renders the frame, the label and, when set, the detail line.
func (l LoadingSpinner) ViewWithLabel() string {
	line := l.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(l.label)
	if l.detail == "" {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Center, line, styles.HelpStyle.Render(l.detail))
}

// SetLabel updates the label.
func (l *LoadingSpinner) SetLabel(label string) {
	l.label = label
}

// Label returns the current label.
func (l LoadingSpinner) Label() string {
	return l.label
}

// RenderSpinnerCentered renders the spinner in the middle of a width x height area.
func RenderSpinnerCentered(s LoadingSpinner, width, height int) string {
	return styles.CenterBoth(s.ViewWithLabel(), width, height)
}
