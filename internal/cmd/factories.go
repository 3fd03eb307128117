package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/renato0307/cardwatch/internal/adapters/cardapi"
	"github.com/renato0307/cardwatch/internal/adapters/desktop"
	"github.com/renato0307/cardwatch/internal/adapters/filelock"
	"github.com/renato0307/cardwatch/internal/adapters/redisstore"
	adaptersound "github.com/renato0307/cardwatch/internal/adapters/sound"
	"github.com/renato0307/cardwatch/internal/adapters/storage"
	"github.com/renato0307/cardwatch/internal/config"
	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/paths"
	"github.com/renato0307/cardwatch/internal/ports"
	"github.com/renato0307/cardwatch/internal/services"
)

const ledgerConnectTimeout = 5 * time.Second

// gateLockName is the Redis lock guarding gate evaluations on a shared ledger
const gateLockName = domain.LastNotifyKey + ":lock"

// Container holds all dependencies for the application
type Container struct {
	Alerter     ports.Alerter
	Gate        *services.ExpiryGate
	Ledger      ports.KeyValueStore
	Locker      ports.Locker
	SoundPlayer ports.SoundPlayer

	settings *config.Settings
}

// NewContainer creates a new Container with all dependencies wired.
// The card API client is built on demand so that commands which never touch
// the network work without a credential.
func NewContainer(settings *config.Settings) (*Container, error) {
	ledger, locker := openLedger(settings)

	soundPlayer := adaptersound.NewPlayer()
	alerter := desktop.NewNotifier(soundPlayer)

	threshold := 0
	if settings.NearExpiryDays != nil {
		threshold = *settings.NearExpiryDays
	}
	gate := services.NewExpiryGate(ledger, alerter,
		services.WithThreshold(threshold),
		services.WithLocker(locker))

	return &Container{
		Alerter:     alerter,
		Gate:        gate,
		Ledger:      ledger,
		Locker:      locker,
		SoundPlayer: soundPlayer,
		settings:    settings,
	}, nil
}

// NewCardService builds the pipeline. A missing credential is reported
// before any network call is made.
func (c *Container) NewCardService(presenter ports.Presenter) (*services.CardService, error) {
	cfg := c.settings.CardAPI()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := cardapi.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	opts := []services.CardServiceOption{}
	if presenter != nil {
		opts = append(opts, services.WithPresenter(presenter))
	}
	return services.NewCardService(client, c.Gate, opts...), nil
}

// Settings returns the effective settings the container was built from
func (c *Container) Settings() *config.Settings {
	return c.settings
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.Ledger != nil {
		return c.Ledger.Close()
	}
	return nil
}

// openLedger opens the configured backend and the lock guarding it, falling
// back to an in-memory ledger so the widget still renders when the store is
// unavailable. A Redis ledger is shared between hosts, so it is guarded by a
// Redis lock; every other backend is local and uses the file lock.
func openLedger(settings *config.Settings) (ports.KeyValueStore, ports.Locker) {
	backend := settings.Ledger()
	fileLock := filelock.New(paths.GetLockPath())

	var (
		ledger ports.KeyValueStore
		err    error
	)
	switch backend {
	case config.LedgerBackendMemory:
		return storage.NewMemoryStore(), fileLock
	case config.LedgerBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), ledgerConnectTimeout)
		defer cancel()
		var store *redisstore.Store
		store, err = redisstore.New(ctx, settings.Redis())
		if err == nil {
			logging.Logger.Debug("Ledger opened", "backend", backend)
			return store, store.NewLock(gateLockName)
		}
	default:
		ledger, err = storage.NewSQLiteStore(paths.GetDBPath())
	}

	if err != nil {
		logging.Logger.Warn("Ledger unavailable, using in-memory ledger for this run",
			"backend", backend,
			"error", err)
		return storage.NewMemoryStore(), fileLock
	}

	logging.Logger.Debug("Ledger opened", "backend", backend)
	return ledger, fileLock
}

// describeLedger returns a human readable location of the ledger
func describeLedger(settings *config.Settings) string {
	switch settings.Ledger() {
	case config.LedgerBackendRedis:
		return fmt.Sprintf("redis://%s/%d", settings.RedisAddr, settings.Redis().DB)
	case config.LedgerBackendMemory:
		return "memory (not persisted)"
	default:
		return paths.GetDBPath()
	}
}
