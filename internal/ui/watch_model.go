package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/theme"
)

// DefaultWatchInterval is how often the watch screen re-runs the pipeline
const DefaultWatchInterval = 5 * time.Minute

// CollectFunc runs one pipeline cycle
type CollectFunc func(ctx context.Context) (domain.WidgetPayload, error)

// payloadMsg carries the result of one pipeline cycle
type payloadMsg struct {
	err     error
	payload domain.WidgetPayload
}

// tickMsg triggers a scheduled refresh. Ticks from an older generation are ignored
// so that manual refreshes do not multiply the schedule.
type tickMsg struct {
	generation int
}

// WatchModel is the bubbletea model that keeps the widget up to date
type WatchModel struct {
	collect    CollectFunc
	ctx        context.Context
	devMode    bool
	generation int
	height     int
	interval   time.Duration
	keys       KeyMap
	payload    *domain.WidgetPayload
	refreshing bool
	spinner    spinner.Model
	width      int
}

// NewWatchModel creates a WatchModel. A non-positive interval uses DefaultWatchInterval.
func NewWatchModel(ctx context.Context, collect CollectFunc, interval time.Duration, devMode bool) *WatchModel {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	return &WatchModel{
		collect:  collect,
		ctx:      ctx,
		devMode:  devMode,
		interval: interval,
		keys:     NewKeyMap(),
		spinner:  s,
	}
}

func (m *WatchModel) Init() tea.Cmd {
	m.refreshing = true
	return tea.Batch(m.spinner.Tick, m.collectCmd())
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.startRefresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case payloadMsg:
		m.refreshing = false
		payload := msg.payload
		m.payload = &payload
		if msg.err != nil {
			logging.Logger.Debug("Watch refresh ended with error payload", "cause", domain.ErrorCause(msg.err))
		}
		m.generation++
		return m, m.scheduleTick()

	case tickMsg:
		if msg.generation != m.generation {
			return m, nil
		}
		return m, m.startRefresh()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *WatchModel) View() string {
	var body string
	if m.payload == nil {
		body = m.spinner.View() + " Fetching card usage..."
	} else {
		body = RenderWidget(*m.payload)
	}

	status := ""
	if m.refreshing && m.payload != nil {
		status = m.spinner.View() + " refreshing"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.devMode),
		body,
		status,
		renderHelp(m.keys.ShortHelp()),
	)
}

// Payload returns the last rendered payload, or nil before the first cycle ends
func (m *WatchModel) Payload() *domain.WidgetPayload {
	return m.payload
}

func (m *WatchModel) startRefresh() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	return m.collectCmd()
}

func (m *WatchModel) collectCmd() tea.Cmd {
	collect := m.collect
	ctx := m.ctx
	return func() tea.Msg {
		payload, err := collect(ctx)
		return payloadMsg{err: err, payload: payload}
	}
}

func (m *WatchModel) scheduleTick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}
