// Package app implements the main Bubble Tea application with tab-based navigation.
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/logger"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/services"
	"github.com/j-veylop/opskpi-dashboard-tui/internal/ui/styles"
)

// TabID represents the identifier for a tab in the application.
type TabID int

const (
	// TabOverview is the ID for the KPI overview tab.
	TabOverview TabID = iota
	// TabData is the ID for the raw data tab.
	TabData
	// TabFilter is the ID for the date filter tab.
	TabFilter
	// TabOperations is the ID for the team operations tab.
	TabOperations
	// TabInfo is the ID for the info tab.
	TabInfo
)

// String returns the string representation of the TabID.
func (t TabID) String() string {
	switch t {
	case TabOverview:
		return "Overview"
	case TabData:
		return "Data"
	case TabFilter:
		return "Filter"
	case TabOperations:
		return "Operations"
	case TabInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// Tab defines the interface that all tabs must implement.
type Tab interface {
	// Init initializes the tab and returns any initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated tab and any commands.
	Update(msg tea.Msg) (Tab, tea.Cmd)

	// View renders the tab content.
	View() string

	// SetSize sets the available size for the tab.
	SetSize(width, height int)

	// ShortHelp returns key bindings for the short help view.
	ShortHelp() []key.Binding

	// FullHelp returns key bindings for the full help view.
	FullHelp() [][]key.Binding
}

// InputTab is implemented by tabs that own a focused text input. While
// Editing reports true, printable keys go to the tab instead of the global keymap.
type InputTab interface {
	Editing() bool
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Tab1       key.Binding
	Tab2       key.Binding
	Tab3       key.Binding
	Tab4       key.Binding
	Tab5       key.Binding
	NextTab    key.Binding
	PrevTab    key.Binding
	Refresh    key.Binding
	Regenerate key.Binding
	Export     key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
	Up         key.Binding
	Down       key.Binding
	Escape     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{}
	km = setTabKeys(km)
	km = setActionKeys(km)
	km = setNavigationKeys(km)
	return km
}

func setTabKeys(k KeyMap) KeyMap {
	k.Tab1 = key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "overview"))
	k.Tab2 = key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "data"))
	k.Tab3 = key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "filter"))
	k.Tab4 = key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "operations"))
	k.Tab5 = key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "info"))
	k.NextTab = key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab/→", "next tab"))
	k.PrevTab = key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab/←", "prev tab"))
	return k
}

func setActionKeys(k KeyMap) KeyMap {
	k.Refresh = key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "reload snapshot"))
	k.Regenerate = key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "regenerate with next seed"))
	k.Export = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export charts and workbook"))
	k.Help = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help"))
	k.Quit = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q/ctrl+c", "quit"))
	k.ForceQuit = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	return k
}

func setNavigationKeys(k KeyMap) KeyMap {
	k.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up"))
	k.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down"))
	k.Escape = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	k.PageUp = key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up"))
	k.PageDown = key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down"))
	return k
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Refresh, k.Regenerate, k.Export, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5},
		{k.NextTab, k.PrevTab},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Refresh, k.Regenerate, k.Export, k.Help, k.Quit},
	}
}

// Styles holds the chrome drawn around the active tab.
type Styles struct {
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	Content   lipgloss.Style
	Toast     lipgloss.Style
	Title     lipgloss.Style
	Subtle    lipgloss.Style
	Highlight lipgloss.Style

	// Toasts maps each notification type to its text style and prefix.
	Toasts map[NotificationType]ToastKind
}

// ToastKind is the look of one notification type.
type ToastKind struct {
	Style  lipgloss.Style
	Prefix string
}

// DefaultStyles returns the default application styles.
func DefaultStyles() Styles {
	toast := func(c lipgloss.Color, prefix string) ToastKind {
		return ToastKind{Style: lipgloss.NewStyle().Foreground(c).Padding(0, 1), Prefix: prefix}
	}

	errKind := toast(styles.Error, "[ERR]")
	errKind.Style = errKind.Style.Bold(true)

	return Styles{
		TabBar: lipgloss.NewStyle().Padding(0, 1).BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).BorderForeground(styles.Border),
		ActiveTab:   lipgloss.NewStyle().Bold(true).Foreground(styles.Primary).Padding(0, 2),
		InactiveTab: lipgloss.NewStyle().Foreground(styles.TextMuted).Padding(0, 2),

		Content:   lipgloss.NewStyle().Padding(1, 2),
		Toast:     styles.ToastStyle,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(styles.Primary),
		Subtle:    lipgloss.NewStyle().Foreground(styles.TextMuted),
		Highlight: lipgloss.NewStyle().Foreground(styles.Primary),

		Toasts: map[NotificationType]ToastKind{
			NotificationSuccess: toast(styles.Success, "[OK]"),
			NotificationError:   errKind,
			NotificationWarning: toast(styles.Warning, "[WARN]"),
			NotificationInfo:    toast(styles.Info, "[INFO]"),
			// The loading prefix is the live spinner frame.
			NotificationLoading: toast(styles.Info, ""),
		},
	}
}

// Model is the main application model.
type Model struct {
	// Tab management
	activeTab TabID
	tabs      []Tab
	tabNames  []string

	// Shared state
	state    *State
	services *services.Manager
	keymap   KeyMap
	styles   Styles

	// UI components
	spinner spinner.Model

	// Window dimensions
	width  int
	height int

	// UI state
	showHelp bool
	ready    bool

	// Service subscription
	eventChannel chan services.ServiceEvent
}

// NewModel initializes a new application model.
func NewModel(mgr *services.Manager) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Secondary)

	tabNames := []string{
		TabOverview.String(),
		TabData.String(),
		TabFilter.String(),
		TabOperations.String(),
		TabInfo.String(),
	}

	return &Model{
		activeTab: TabOverview,
		tabNames:  tabNames,
		tabs:      make([]Tab, len(tabNames)), // Placeholder - tabs will be set externally
		state:     NewState(),
		services:  mgr,
		keymap:    DefaultKeyMap(),
		styles:    DefaultStyles(),
		spinner:   s,
	}
}

// SetTabs sets the tabs for the model.
func (m *Model) SetTabs(tabs []Tab) {
	m.tabs = tabs
	if m.width > 0 && m.height > 0 {
		m.updateTabSizes()
	}
}

// GetState returns the application state.
func (m *Model) GetState() *State {
	return m.state
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	m.state.SetLoadingNotification("Generating data...")

	cmds := []tea.Cmd{
		m.spinner.Tick,
		defaultTickCmd(),
	}

	if m.services != nil {
		cmds = append(cmds, subscribeToServicesCmd(m.services))
		cmds = append(cmds, loadSnapshotCmd(m.services))
	}

	for _, tab := range m.tabs {
		if tab != nil {
			cmds = append(cmds, tab.Init())
		}
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := m.handleKeyMsg(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if handled {
			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)

	case spinner.TickMsg:
		cmds = append(cmds, m.handleSpinnerTick(msg))

	default:
		if appCmds := m.handleAppMsg(msg); len(appCmds) > 0 {
			cmds = append(cmds, appCmds...)
		}
	}

	if cmd := m.updateActiveTab(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAppMsg(msg tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case TickMsg:
		cmds = append(cmds, m.handleTick())
	case SubscriptionEventMsg:
		cmds = append(cmds, m.handleSubscriptionEvent(msg)...)
	case ServiceEventMsg:
		cmds = append(cmds, m.handleServiceEventMsg(msg)...)
	case SnapshotLoadedMsg:
		m.handleSnapshotLoaded(msg)
	case RegenerateMsg:
		cmds = append(cmds, m.handleRegenerate(msg.Seed)...)
	case RegenerateResultMsg:
		cmds = append(cmds, m.handleRegenerateResult(msg)...)
	case FilterRequestMsg:
		cmds = append(cmds, m.handleFilterRequest(msg)...)
	case FilterAppliedMsg:
		cmds = append(cmds, m.handleFilterApplied(msg)...)
	case ExportRequestMsg:
		cmds = append(cmds, m.handleExport(msg.Dir)...)
	case ExportResultMsg:
		cmds = append(cmds, m.handleExportResult(msg)...)
	case AddNotificationMsg:
		cmds = append(cmds, m.handleAddNotification(msg)...)
	case RemoveNotificationMsg:
		m.state.RemoveNotification(msg.ID)
	case ErrorMsg:
		cmds = append(cmds, m.handleError(msg))
	case RefreshMsg:
		cmds = append(cmds, m.handleRefresh()...)
	}
	return cmds
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	m.updateTabSizes()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return cmd
}

func (m *Model) handleTick() tea.Cmd {
	m.state.ClearExpiredNotifications()
	return defaultTickCmd()
}

func (m *Model) handleSubscriptionEvent(msg SubscriptionEventMsg) []tea.Cmd {
	m.eventChannel = msg.Channel
	return []tea.Cmd{waitForServiceEventCmd(m.eventChannel)}
}

func (m *Model) handleServiceEventMsg(msg ServiceEventMsg) []tea.Cmd {
	var cmds []tea.Cmd
	if cmd := m.handleServiceEvent(msg.Event); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.eventChannel != nil {
		cmds = append(cmds, waitForServiceEventCmd(m.eventChannel))
	}
	return cmds
}

func (m *Model) handleSnapshotLoaded(msg SnapshotLoadedMsg) {
	m.state.SetLoading(ResourceInitial, false)
	m.state.SetLoading(ResourceDataset, false)
	m.state.SetSnapshot(msg.Snapshot, msg.Filter)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}
}

func (m *Model) handleRegenerate(seed uint64) []tea.Cmd {
	if m.services == nil {
		return nil
	}
	m.state.SetLoading(ResourceDataset, true)
	m.state.SetLoadingNotification(fmt.Sprintf("Regenerating with seed %d...", seed))
	return []tea.Cmd{regenerateCmd(m.services, seed)}
}

func (m *Model) handleRegenerateResult(msg RegenerateResultMsg) []tea.Cmd {
	m.state.SetLoading(ResourceDataset, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}

	if msg.Error != nil {
		logger.Error("regenerate failed", "seed", msg.Seed, "error", msg.Error)
		return []tea.Cmd{notifyCmd(NotificationError, fmt.Sprintf("Failed to regenerate data: %v", msg.Error))}
	}

	m.state.SetSnapshot(msg.Snapshot, msg.Filter)
	return []tea.Cmd{notifyCmd(NotificationSuccess, fmt.Sprintf("Generated %d records with seed %d",
		len(msg.Snapshot.Records), msg.Seed))}
}

func (m *Model) handleFilterRequest(msg FilterRequestMsg) []tea.Cmd {
	if m.services == nil {
		return nil
	}
	m.state.SetLoading(ResourceFilter, true)
	return []tea.Cmd{applyFilterCmd(m.services, msg.Range)}
}

func (m *Model) handleFilterApplied(msg FilterAppliedMsg) []tea.Cmd {
	m.state.SetLoading(ResourceFilter, false)
	if msg.Error != nil {
		return []tea.Cmd{notifyCmd(NotificationError, fmt.Sprintf("Invalid date range: %v", msg.Error))}
	}

	m.state.SetFilter(msg.Result)
	return []tea.Cmd{notifyCmd(NotificationInfo, fmt.Sprintf("%d records in %s", len(msg.Result.Records), msg.Result.Range))}
}

func (m *Model) handleExport(dir string) []tea.Cmd {
	if m.services == nil {
		return nil
	}
	if m.state.IsExporting() {
		return []tea.Cmd{notifyCmd(NotificationWarning, "Export already in progress")}
	}
	m.state.SetLoading(ResourceExport, true)
	m.state.SetLoadingNotification("Exporting charts and workbook...")
	return []tea.Cmd{exportCmd(m.services, dir)}
}

func (m *Model) handleExportResult(msg ExportResultMsg) []tea.Cmd {
	m.state.SetLoading(ResourceExport, false)
	if !m.state.AnyLoading() {
		m.state.ClearLoadingNotification()
	}

	if msg.Error != nil {
		return []tea.Cmd{notifyCmd(NotificationError, fmt.Sprintf("Export failed: %v", msg.Error))}
	}

	m.state.SetLastExport(msg.Result)
	return []tea.Cmd{notifyCmd(NotificationSuccess, "Exported "+msg.Result.Summary())}
}

func (m *Model) handleAddNotification(msg AddNotificationMsg) []tea.Cmd {
	var cmds []tea.Cmd
	id := m.state.AddNotification(msg.Type, msg.Message, msg.Duration)
	if msg.Duration > 0 {
		cmds = append(cmds, clearNotificationCmd(id, msg.Duration))
	}
	return cmds
}

func (m *Model) handleError(msg ErrorMsg) tea.Cmd {
	if msg.Context != "" {
		return notifyCmd(NotificationError, fmt.Sprintf("%s: %v", msg.Context, msg.Error))
	}
	return notifyCmd(NotificationError, msg.Error.Error())
}

func (m *Model) handleRefresh() []tea.Cmd {
	if m.services == nil {
		return nil
	}
	m.state.SetLoading(ResourceDataset, true)
	return []tea.Cmd{loadSnapshotCmd(m.services)}
}

// nextSeed returns the seed one past the current snapshot's.
func (m *Model) nextSeed() uint64 {
	if snap := m.state.GetSnapshot(); snap != nil {
		return snap.Seed + 1
	}
	if m.services != nil {
		return m.services.Config().Seed + 1
	}
	return 1
}

func (m *Model) updateActiveTab(msg tea.Msg) tea.Cmd {
	if tab := m.currentTab(); tab != nil {
		var cmd tea.Cmd
		m.tabs[m.activeTab], cmd = tab.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) currentTab() Tab {
	if int(m.activeTab) < len(m.tabs) {
		return m.tabs[m.activeTab]
	}
	return nil
}

func (m *Model) updateTabSizes() {
	contentHeight := m.height - 5
	contentHeight = max(0, contentHeight)

	for _, tab := range m.tabs {
		if tab != nil {
			tab.SetSize(m.width, contentHeight)
		}
	}
}

func (m *Model) switchTab(id TabID) {
	if int(id) < 0 || int(id) >= len(m.tabs) {
		return
	}
	m.activeTab = id
	m.updateTabSizes()
}

// editing reports whether the active tab is capturing typed input.
func (m *Model) editing() bool {
	if it, ok := m.currentTab().(InputTab); ok {
		return it.Editing()
	}
	return false
}

// handleKeyMsg handles global keys. It reports whether the key was consumed,
// in which case the active tab never sees it.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.editing() {
		if key.Matches(msg, m.keymap.ForceQuit) {
			return tea.Quit, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return nil, true

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return nil, true
		}
		return nil, false
	}

	if m.showHelp {
		return nil, true
	}

	n := len(m.tabs)
	switch {
	case n == 0:
		return nil, false

	case key.Matches(msg, m.keymap.Tab1):
		m.switchTab(TabOverview)
	case key.Matches(msg, m.keymap.Tab2):
		m.switchTab(TabData)
	case key.Matches(msg, m.keymap.Tab3):
		m.switchTab(TabFilter)
	case key.Matches(msg, m.keymap.Tab4):
		m.switchTab(TabOperations)
	case key.Matches(msg, m.keymap.Tab5):
		m.switchTab(TabInfo)

	case key.Matches(msg, m.keymap.NextTab):
		m.switchTab(TabID((int(m.activeTab) + 1) % n))

	case key.Matches(msg, m.keymap.PrevTab):
		m.switchTab(TabID((int(m.activeTab) - 1 + n) % n))

	case key.Matches(msg, m.keymap.Refresh):
		return send(RefreshMsg{}), true

	case key.Matches(msg, m.keymap.Regenerate):
		return send(RegenerateMsg{Seed: m.nextSeed()}), true

	case key.Matches(msg, m.keymap.Export):
		return send(ExportRequestMsg{}), true

	default:
		return nil, false
	}

	return nil, true
}

func (m *Model) handleServiceEvent(event services.ServiceEvent) tea.Cmd {
	switch e := event.(type) {
	case services.DatasetLoadedEvent:
		m.state.SetSnapshot(e.Snapshot, e.Filter)
		if e.Reason == services.ReasonSettings {
			return notifyCmd(NotificationInfo, fmt.Sprintf("Settings changed, regenerated with seed %d", e.Snapshot.Seed))
		}

	case services.FilterAppliedEvent:
		m.state.SetFilter(e.Result)

	case services.ExportCompletedEvent:
		m.state.SetLastExport(e.Result)

	case services.ErrorEvent:
		return notifyCmd(NotificationError, fmt.Sprintf("[%s] %v", e.Service, e.Error))
	}

	return nil
}

// View renders the application UI.
func (m *Model) View() string {
	var b strings.Builder

	if m.width > 0 {
		b.WriteString(m.renderNavbar())
		b.WriteString("\n")
	}

	if !m.ready {
		b.WriteString(m.styles.Content.Render(fmt.Sprintf("%s Loading...", m.spinner.View())))
		return b.String()
	}

	if tab := m.currentTab(); tab != nil {
		b.WriteString(tab.View())
	} else {
		b.WriteString(m.renderPlaceholder())
	}

	mainView := b.String()

	if m.showHelp {
		mainView = m.overlayCentered(mainView, m.renderHelp())
	}

	if notifications := m.renderNotifications(); len(notifications) > 0 {
		return m.overlayToasts(mainView, notifications)
	}

	return mainView
}

// padLines extends lines to the window height so overlays never fall off a short view.
func (m *Model) padLines(lines []string) []string {
	for len(lines) < m.height {
		lines = append(lines, "")
	}
	return lines
}

func (m *Model) overlayCentered(mainView string, overlay string) string {
	mainLines := m.padLines(strings.Split(mainView, "\n"))
	overlayLines := strings.Split(overlay, "\n")

	overlayHeight := len(overlayLines)
	overlayWidth := lipgloss.Width(overlay)

	y := max((m.height-overlayHeight)/2, 0)
	x := max((m.width-overlayWidth)/2, 0)

	for i, overlayLine := range overlayLines {
		mainY := y + i
		if mainY >= len(mainLines) {
			break
		}

		mainLine := mainLines[mainY]

		// Keep the cells left and right of the overlay
		left := ansi.Truncate(mainLine, x, "")
		right := ansi.TruncateLeft(mainLine, x+overlayWidth, "")

		if lipgloss.Width(left) < x {
			left += strings.Repeat(" ", x-lipgloss.Width(left))
		}

		mainLines[mainY] = left + overlayLine + right
	}

	return strings.Join(mainLines, "\n")
}

func (m *Model) renderNavbar() string {
	var tabs []string

	for i, name := range m.tabNames {
		if TabID(i) == m.activeTab {
			tabs = append(tabs, m.styles.ActiveTab.Render(fmt.Sprintf("[%d] %s", i+1, name)))
		} else {
			tabs = append(tabs, m.styles.InactiveTab.Render(fmt.Sprintf(" %d  %s", i+1, name)))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	return m.styles.TabBar.Width(m.width).Render(tabBar)
}

func (m *Model) renderNotifications() []string {
	notifications := m.state.GetNotifications()
	if len(notifications) == 0 {
		return nil
	}

	var toasts []string
	for _, n := range notifications {
		kind := m.styles.Toasts[n.Type]
		prefix := kind.Prefix
		if n.Type == NotificationLoading {
			prefix = m.spinner.View()
		}
		content := kind.Style.Render(fmt.Sprintf("%s %s", prefix, n.Message))
		toasts = append(toasts, m.styles.Toast.Render(content))
	}

	return toasts
}

func (m *Model) overlayToasts(mainView string, toasts []string) string {
	if len(toasts) == 0 {
		return mainView
	}

	toastStack := lipgloss.JoinVertical(lipgloss.Right, toasts...)
	toastLines := strings.Split(toastStack, "\n")
	mainLines := m.padLines(strings.Split(mainView, "\n"))

	toastWidth := lipgloss.Width(toastStack)
	startX := max(m.width-toastWidth-2, 0)

	startY := 2

	for i, toastLine := range toastLines {
		lineIdx := startY + i
		if lineIdx >= len(mainLines) {
			break
		}

		mainLine := mainLines[lineIdx]
		mainLineWidth := lipgloss.Width(mainLine)

		if mainLineWidth < startX {
			padding := strings.Repeat(" ", startX-mainLineWidth)
			mainLines[lineIdx] = mainLine + padding + toastLine
		} else {
			truncated := ansi.Truncate(mainLine, startX, "")
			mainLines[lineIdx] = truncated + toastLine
		}
	}

	return strings.Join(mainLines, "\n")
}

// helpSection is one titled group of bindings in the help overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

func (m *Model) helpSections() []helpSection {
	k := m.keymap
	switchTabs := key.NewBinding(key.WithHelp(fmt.Sprintf("1-%d", len(m.tabNames)), "switch tabs"))

	sections := []helpSection{
		{"Navigation", []key.Binding{switchTabs, k.NextTab, k.PrevTab}},
		{"Data", []key.Binding{k.Refresh, k.Regenerate, k.Export}},
		{"General", []key.Binding{k.Help, k.Quit}},
	}
	if tab := m.currentTab(); tab != nil {
		if tabHelp := tab.ShortHelp(); len(tabHelp) > 0 {
			sections = append(sections, helpSection{m.tabNames[m.activeTab] + " Tab", tabHelp})
		}
	}
	return sections
}

func (m *Model) renderHelp() string {
	lines := []string{m.styles.Title.Render("Keyboard Shortcuts"), ""}

	for _, section := range m.helpSections() {
		lines = append(lines, m.styles.Highlight.Render(section.title))
		for _, b := range section.bindings {
			h := b.Help()
			lines = append(lines, fmt.Sprintf("  %-12s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}

	lines = append(lines, m.styles.Subtle.Render("Press ? or Esc to close"))

	return styles.HelpPanelStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderPlaceholder() string {
	content := fmt.Sprintf(
		"Tab %d: %s\n\n%s",
		m.activeTab+1,
		m.tabNames[m.activeTab],
		m.styles.Subtle.Render("No view registered for this tab."),
	)
	return m.styles.Content.Render(content)
}
