package ui

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"schedctl/internal/api"
	"schedctl/internal/bootstrap"
	"schedctl/internal/feed"
	"schedctl/internal/models"
	"schedctl/internal/prefs"
	"schedctl/internal/shared"
	"schedctl/internal/snapshot"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GateView ViewState = iota
	SetupView
	LoginView
	DashboardView
)

// Model represents the dashboard application state.
type Model struct {
	ctx     context.Context
	client  *api.Client
	session *api.Session
	store   prefs.Store
	config  *shared.Config
	logger  *log.Logger

	view   ViewState
	width  int
	height int

	// auth form
	username textinput.Model
	password textinput.Model
	focus    int
	notice   string

	// dashboard
	formatter  *feed.Formatter
	entries    []models.FeedEntry
	overview   *models.SchedulerOverview
	timeline   []models.TimelineDay
	logsView   viewport.Model
	jumped     bool
	updates    <-chan feed.Update
	overviews  <-chan *models.SchedulerOverview
	cancelPoll context.CancelFunc

	status string
	err    error
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The
// logger must not write to the terminal the TUI owns; pass a file logger
// or nil to discard.
func NewModel(ctx context.Context, client *api.Client, session *api.Session, store prefs.Store, config *shared.Config, logger *log.Logger) *Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword

	formatter, err := feed.NewFormatter(config.Display.TimeZone)
	if err != nil {
		formatter, _ = feed.NewFormatter("UTC")
	}

	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &Model{
		ctx:       ctx,
		client:    client,
		session:   session,
		store:     store,
		config:    config,
		logger:    logger,
		view:      GateView,
		username:  username,
		password:  password,
		formatter: formatter,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init kicks off the routing probe; nothing else renders until it lands.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.evaluateGate())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logsView.Width = msg.Width - 4
		m.logsView.Height = max(msg.Height/2, 5)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SetupView, LoginView:
			return m.handleAuthKeys(msg)
		case DashboardView:
			return m.handleDashboardKeys(msg)
		default:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		}
		return m, nil

	case gateDecidedMsg:
		switch msg.state {
		case bootstrap.NeedsSetup:
			m.view = SetupView
		case bootstrap.NeedsLogin:
			m.view = LoginView
		default:
			return m, m.enterDashboard()
		}
		return m, nil

	case authDoneMsg:
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, shared.ErrInvalidCredentials):
				m.notice = "invalid username or password"
			case errors.Is(msg.err, shared.ErrRegisterClosed):
				// Someone beat us to first registration; fall back to login.
				m.view = LoginView
				m.notice = "an administrator already exists, log in instead"
			default:
				m.notice = msg.err.Error()
			}
			return m, nil
		}
		m.notice = ""
		m.password.SetValue("")
		return m, m.enterDashboard()

	case feedUpdateMsg:
		m.entries = msg.Entries
		m.logsView.SetContent(m.renderLogLines())
		if prefs.Bool(m.store, prefs.KeyLogsAutoScroll, true) {
			m.logsView.GotoBottom()
			m.jumped = true
		}
		return m, m.waitFeed()

	case feedClosedMsg:
		return m, nil

	case overviewMsg:
		m.overview = msg.overview
		return m, m.waitOverview()

	case overviewClosedMsg:
		return m, nil

	case timelineMsg:
		if msg.err == nil {
			m.timeline = msg.days
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = styles.err.Render(msg.err.Error())
		} else {
			m.status = msg.status
		}
		return m, nil
	}

	if m.view == DashboardView {
		var cmd tea.Cmd
		m.logsView, cmd = m.logsView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.focus = (m.focus + 1) % 2
		if m.focus == 0 {
			m.password.Blur()
			return m, m.username.Focus()
		}
		m.username.Blur()
		return m, m.password.Focus()
	case "enter":
		if m.username.Value() == "" || m.password.Value() == "" {
			m.notice = "username and password are required"
			return m, nil
		}
		return m, m.submitAuth()
	}

	var cmds [2]tea.Cmd
	m.username, cmds[0] = m.username.Update(msg)
	m.password, cmds[1] = m.password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m *Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopPolling()
		return m, tea.Quit
	case "esc":
		m.stopPolling()
		if err := m.session.Logout(); err != nil {
			m.status = styles.err.Render(err.Error())
			return m, nil
		}
		m.view = LoginView
		m.notice = ""
		return m, nil
	case "l":
		m.togglePref(prefs.KeyLogsExpanded, false)
		if prefs.Bool(m.store, prefs.KeyLogsExpanded, false) {
			// Each expand re-arms the follow jump.
			m.jumped = false
			if prefs.Bool(m.store, prefs.KeyLogsAutoScroll, true) {
				m.logsView.GotoBottom()
				m.jumped = true
			}
		}
		return m, nil
	case "a":
		m.togglePref(prefs.KeyLogsAutoScroll, true)
		return m, nil
	case "t":
		m.togglePref(prefs.KeyTimelineExpanded, false)
		return m, nil
	case "s":
		return m, m.syncNow()
	case "S":
		return m, m.startScheduler()
	case "X":
		return m, m.stopScheduler()
	}

	var cmd tea.Cmd
	m.logsView, cmd = m.logsView.Update(msg)
	return m, cmd
}

func (m *Model) togglePref(name string, fallback bool) {
	if err := prefs.SetBool(m.store, name, !prefs.Bool(m.store, name, fallback)); err != nil {
		m.status = styles.err.Render(err.Error())
	}
}

func (m *Model) evaluateGate() tea.Cmd {
	return func() tea.Msg {
		gate := bootstrap.NewGate(m.client, m.session)
		return gateDecidedMsg{state: gate.Evaluate(m.ctx)}
	}
}

func (m *Model) submitAuth() tea.Cmd {
	username, password := m.username.Value(), m.password.Value()
	register := m.view == SetupView

	return func() tea.Msg {
		var (
			token *models.Token
			err   error
		)
		if register {
			token, err = m.client.Register(m.ctx, username, password)
		} else {
			token, err = m.client.Login(m.ctx, username, password)
		}
		if err != nil {
			return authDoneMsg{err: err}
		}
		return authDoneMsg{err: m.session.Login(token.AccessToken)}
	}
}

// enterDashboard starts the two background loops and the one-shot timeline
// fetch. The loops share one context so logout or quit tears both down.
func (m *Model) enterDashboard() tea.Cmd {
	m.view = DashboardView
	m.jumped = false

	pollCtx, cancel := context.WithCancel(m.ctx)
	m.cancelPoll = cancel

	interval := m.config.PollInterval()
	tailer := feed.NewTailer(m.client.Logs, interval, 0, m.logger)
	m.updates = tailer.Run(pollCtx)

	poller := snapshot.NewPoller("scheduler overview", m.client.SchedulerOverview, interval, m.logger)
	m.overviews = poller.Run(pollCtx)

	return tea.Batch(m.waitFeed(), m.waitOverview(), m.fetchTimeline())
}

func (m *Model) stopPolling() {
	if m.cancelPoll != nil {
		m.cancelPoll()
		m.cancelPoll = nil
	}
}

func (m *Model) waitFeed() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return feedClosedMsg{}
		}
		return feedUpdateMsg(u)
	}
}

func (m *Model) waitOverview() tea.Cmd {
	overviews := m.overviews
	return func() tea.Msg {
		snap, ok := <-overviews
		if !ok {
			return overviewClosedMsg{}
		}
		return overviewMsg{overview: snap}
	}
}

func (m *Model) fetchTimeline() tea.Cmd {
	return func() tea.Msg {
		days, err := m.client.Timeline(m.ctx, m.config.Display.TimelineDays)
		return timelineMsg{days: days, err: err}
	}
}

func (m *Model) syncNow() tea.Cmd {
	return func() tea.Msg {
		ack, err := m.client.SyncNow(m.ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "sync started: " + ack.Synced}
	}
}

func (m *Model) startScheduler() tea.Cmd {
	return func() tea.Msg {
		ack, err := m.client.StartScheduler(m.ctx, 0)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "scheduler " + ack.Scheduler}
	}
}

func (m *Model) stopScheduler() tea.Cmd {
	return func() tea.Msg {
		ack, err := m.client.StopScheduler(m.ctx)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "scheduler " + ack.Scheduler}
	}
}
