package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"schedctl/internal/feed"
	"schedctl/internal/prefs"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case SetupView:
		return m.renderAuthForm("Create Administrator")
	case LoginView:
		return m.renderAuthForm("Log In")
	case DashboardView:
		return m.renderDashboard()
	default:
		return styles.help.Render("contacting backend...")
	}
}

func (m *Model) renderAuthForm(title string) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.username.View())
	b.WriteString("\n")
	b.WriteString(m.password.View())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.warn.Render(m.notice))
		b.WriteString("\n")
	}

	helpKeys := []key.Binding{m.keys.tab, m.keys.enter, m.keys.quit}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderDashboard() string {
	sections := []string{
		styles.title.Render("Sync Dashboard"),
		m.renderScheduler(),
		m.renderTimeline(),
		m.renderLogs(),
	}
	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, m.help.ShortHelpView([]key.Binding{
		m.keys.logs, m.keys.timeline, m.keys.sync, m.keys.start, m.keys.stop, m.keys.logout, m.keys.quit,
	}))
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderScheduler() string {
	if m.overview == nil {
		return styles.help.Render("scheduler: loading...")
	}

	var b strings.Builder
	status := styles.err.Render(m.overview.Status)
	if m.overview.Running() {
		status = styles.ok.Render(m.overview.Status)
	}
	fmt.Fprintf(&b, "Scheduler: %s", status)
	if len(m.overview.Intervals) > 0 {
		fmt.Fprintf(&b, "  runs at %s", strings.Join(m.overview.Intervals, ", "))
	}

	for _, run := range m.overview.Runs {
		fmt.Fprintf(&b, "\n  %s %s", run.Time, styles.Run(run.Status).Render(string(run.Status)))
		if run.Detail != nil && *run.Detail != "" {
			fmt.Fprintf(&b, " %s", styles.help.Render(*run.Detail))
		}
	}
	return b.String()
}

func (m *Model) renderTimeline() string {
	if !prefs.Bool(m.store, prefs.KeyTimelineExpanded, false) {
		return styles.help.Render("timeline: collapsed (t to expand)")
	}
	if len(m.timeline) == 0 {
		return styles.help.Render("timeline: no data")
	}

	var bar, legend strings.Builder
	for _, day := range m.timeline {
		bar.WriteString(styles.Day(day.Status).Render("█"))
	}
	first, last := m.timeline[0], m.timeline[len(m.timeline)-1]
	fmt.Fprintf(&legend, "%s .. %s", first.Date, last.Date)
	if last.Message != "" {
		fmt.Fprintf(&legend, "  %s", styles.help.Render(last.Message))
	}
	return fmt.Sprintf("Sync health\n%s\n%s", bar.String(), legend.String())
}

func (m *Model) renderLogs() string {
	if !prefs.Bool(m.store, prefs.KeyLogsExpanded, false) {
		return styles.help.Render(fmt.Sprintf("logs: %d buffered (l to expand)", len(m.entries)))
	}
	if len(m.entries) == 0 {
		return styles.help.Render("logs: waiting for entries...")
	}

	autoscroll := "off"
	if prefs.Bool(m.store, prefs.KeyLogsAutoScroll, true) {
		autoscroll = "on"
	}
	header := fmt.Sprintf("Logs  %s", styles.help.Render("autoscroll "+autoscroll+" (a)"))
	return header + "\n" + m.logsView.View()
}

func (m *Model) renderLogLines() string {
	var b strings.Builder
	for i, entry := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s %s",
			styles.help.Render(m.formatter.Timestamp(entry.TS)),
			styles.Level(entry.Level).Render(string(entry.Level)),
			feed.CleanMessage(entry.Msg))
	}
	return b.String()
}
