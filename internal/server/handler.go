package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ui"
)

// sessionModel wraps ui.WatchModel to log the session lifecycle
type sessionModel struct {
	*ui.WatchModel
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	}

	updated, cmd := s.WatchModel.Update(msg)
	if m, ok := updated.(*ui.WatchModel); ok {
		s.WatchModel = m
	}
	return s, cmd
}

// teaHandler creates a watch model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model := &sessionModel{
		// SSH viewers never see dev mode build info
		WatchModel: ui.NewWatchModel(s.ctx, s.cfg.Collect, s.cfg.Interval, false),
		sessionID:  sessionID,
		startTime:  time.Now(),
	}

	return model, []tea.ProgramOption{tea.WithAltScreen()}
}
