package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ui"
)

const shutdownTimeout = 30 * time.Second

// Config holds what the SSH server needs to serve the watch screen
type Config struct {
	AuthorizedKeysPath string
	Collect            ui.CollectFunc
	Host               string
	HostKeyDir         string
	Interval           time.Duration
	Port               string
}

// Server serves the watch screen to every authorized SSH client.
// All sessions share the same collect function, so simultaneous viewers
// trigger a single refresh.
type Server struct {
	cfg        Config
	ctx        context.Context
	cancel     context.CancelFunc
	wishServer *ssh.Server
}

// NewServer creates a new SSH server instance
func NewServer(cfg Config) (*Server, error) {
	if cfg.Collect == nil {
		return nil, errors.New("collect function is required")
	}

	if err := os.MkdirAll(cfg.HostKeyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create SSH directory: %w", err)
	}
	hostKeyPath := filepath.Join(cfg.HostKeyDir, "id_ed25519")

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}

	// Note: Middleware executes in reverse order (last to first)
	wishServer, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithPublicKeyAuth(s.authorize),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.Middleware(),
		),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}

	s.wishServer = wishServer
	return s, nil
}

// Start starts the SSH server and blocks until shutdown
func (s *Server) Start() error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	address := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	logging.Logger.Info("Starting SSH server", "address", address)
	fmt.Printf("SSH server listening on %s\n", address)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.wishServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logging.Logger.Error("SSH server error", "error", err)
			serveErr <- err
		}
	}()

	select {
	case <-done:
	case err := <-serveErr:
		s.cancel()
		return fmt.Errorf("SSH server failed: %w", err)
	}

	logging.Logger.Info("Shutting down SSH server")
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.wishServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}

	logging.Logger.Info("SSH server stopped")
	return nil
}

// authorize implements public key authentication against authorized_keys
func (s *Server) authorize(ctx ssh.Context, key ssh.PublicKey) bool {
	fingerprint := getKeyFingerprint(key)
	user := ctx.User()

	if !isKeyAuthorized(key, s.cfg.AuthorizedKeysPath) {
		logging.Logger.Warn("Unauthorized SSH key",
			"user", user,
			"fingerprint", fingerprint,
			"key_type", key.Type())
		return false
	}

	logging.Logger.Info("SSH key authenticated",
		"user", user,
		"fingerprint", fingerprint,
		"key_type", key.Type())
	return true
}
