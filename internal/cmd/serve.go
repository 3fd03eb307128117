package cmd

import (
	"fmt"
	"time"

	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/paths"
	"github.com/renato0307/cardwatch/internal/server"
	"github.com/renato0307/cardwatch/internal/ui"
)

// ServeCmd starts the SSH server
type ServeCmd struct {
	AuthorizedKeys string        `help:"authorized_keys file listing the keys allowed to connect" default:"~/.ssh/authorized_keys"`
	Host           string        `help:"Host to bind to" default:"localhost"`
	Interval       time.Duration `help:"Time between refreshes" default:"5m"`
	Port           string        `help:"Port to listen on" default:"23235"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	svc, err := cli.Container.NewCardService(nil)
	if err != nil {
		return fmt.Errorf("failed to configure card client: %w", err)
	}

	interval := watchInterval(s.Interval, cli)

	logging.Logger.Info("Starting cardwatch SSH server",
		"host", s.Host,
		"port", s.Port,
		"interval", interval.String())

	srv, err := server.NewServer(server.Config{
		AuthorizedKeysPath: paths.ExpandPath(s.AuthorizedKeys),
		Collect:            ui.CollectFunc(svc.CollectShared),
		Host:               s.Host,
		HostKeyDir:         paths.GetSSHDir(),
		Interval:           interval,
		Port:               s.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start server (blocks until shutdown)
	return srv.Start()
}
