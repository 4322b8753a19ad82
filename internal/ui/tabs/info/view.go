package info

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	m.viewport.SetContent(m.renderContent())

	return styles.DocStyle.
		Width(m.width).
		Height(m.height).
		Render(m.viewport.View())
}

func (m *Model) renderContent() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTitle(),
		m.renderConfigCard(),
		m.renderDataCard(),
		m.renderAboutCard(),
	)
}

// renderTitle renders the info tab title.
func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, generated data and version")

	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "")
}

func (m *Model) cardWidth() int {
	return min(max(m.width-6, 50), 90)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

// renderConfigCard renders the settings currently in effect.
func (m *Model) renderConfigCard() string {
	rows := []string{styles.CardTitleStyle.Render("Configuration"), ""}

	cfg := m.config()
	if cfg == nil {
		rows = append(rows, styles.HelpStyle.Render("Configuration not loaded"))
	} else {
		rows = append(rows,
			m.renderConfigRow("Env File", orNone(cfg.EnvFile)),
			m.renderConfigRow("Watching", orNone(m.watchedFile())),
			m.renderConfigRow("Seed", strconv.FormatUint(cfg.Seed, 10)),
			m.renderConfigRow("Records", strconv.Itoa(cfg.Records)),
			m.renderConfigRow("Date Range", cfg.Range().String()),
			m.renderConfigRow("Team", strings.Join(cfg.Team, ", ")),
			m.renderConfigRow("Histogram Bins", strconv.Itoa(cfg.HistogramBins)),
			m.renderConfigRow("Export Dir", cfg.ExportDir),
			m.renderConfigRow("Log File", orNone(cfg.LogPath)),
			m.renderConfigRow("Log Level", cfg.LogLevel),
		)
		rows = append(rows, "", styles.HelpStyle.Render("Edits to the env file are applied while running"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderDataCard renders the generation and export status.
func (m *Model) renderDataCard() string {
	rows := []string{styles.CardTitleStyle.Render("Data"), ""}

	if snap := m.state.GetSnapshot(); snap != nil {
		rows = append(rows,
			m.renderConfigRow("Seed", strconv.FormatUint(snap.Seed, 10)),
			m.renderConfigRow("Records", humanize.Comma(int64(len(snap.Records)))),
			m.renderConfigRow("Generated", humanize.Time(snap.GeneratedAt)),
			m.renderConfigRow("Updated", humanize.Time(m.state.GetLastUpdated())),
		)
	} else {
		rows = append(rows, m.renderConfigRow("Generated", "not yet"))
	}

	if exp := m.state.GetLastExport(); exp != nil {
		rows = append(rows,
			m.renderConfigRow("Last Export", humanize.Time(exp.Started)),
			m.renderConfigRow("Exported", exp.Summary()),
			m.renderConfigRow("Files", exp.Names()),
		)
	} else {
		rows = append(rows, m.renderConfigRow("Last Export", "never"))
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}

// renderConfigRow renders a configuration key-value row.
func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().
		Width(18).
		Foreground(styles.TextMuted)

	valueStyle := lipgloss.NewStyle().
		Foreground(styles.TextPrimary)

	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

// renderAboutCard renders the version information card.
func (m *Model) renderAboutCard() string {
	rows := []string{
		styles.CardTitleStyle.Render("About Operations KPI Dashboard"),
		"",
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
	}

	return styles.CardStyle.Width(m.cardWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...),
	)
}
