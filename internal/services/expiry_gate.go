package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// GateOutcome describes what the expiry gate decided for one evaluation
type GateOutcome struct {
	// AlreadyNotified is set when the card is near expiry but today's alert was already sent
	AlreadyNotified bool
	NearExpiry      bool
	Notified        bool
}

// ExpiryGate sends at most one near-expiry alert per calendar day.
// The ledger holds the last day an alert was actually delivered.
type ExpiryGate struct {
	alerter   ports.Alerter
	key       string
	ledger    ports.KeyValueStore
	locker    ports.Locker
	mu        sync.Mutex
	threshold int
}

// GateOption configures an ExpiryGate
type GateOption func(*ExpiryGate)

// WithThreshold sets the days-remaining value at or below which the gate arms
func WithThreshold(days int) GateOption {
	return func(g *ExpiryGate) {
		g.threshold = days
	}
}

// WithLocker serializes evaluations with other processes sharing the ledger
func WithLocker(locker ports.Locker) GateOption {
	return func(g *ExpiryGate) {
		g.locker = locker
	}
}

// NewExpiryGate creates a new ExpiryGate
func NewExpiryGate(ledger ports.KeyValueStore, alerter ports.Alerter, opts ...GateOption) *ExpiryGate {
	g := &ExpiryGate{
		alerter:   alerter,
		key:       domain.LastNotifyKey,
		ledger:    ledger,
		threshold: domain.DefaultNearExpiryDays,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Threshold returns the near-expiry threshold in days
func (g *ExpiryGate) Threshold() int {
	return g.threshold
}

// IsNearExpiry reports whether daysRemaining arms the gate
func (g *ExpiryGate) IsNearExpiry(daysRemaining int) bool {
	return daysRemaining <= g.threshold
}

// Evaluate applies the gate for one pipeline run.
// Ledger read failures count as "not notified today"; alert failures leave the ledger untouched.
func (g *ExpiryGate) Evaluate(ctx context.Context, daysRemaining int, now time.Time) GateOutcome {
	if !g.IsNearExpiry(daysRemaining) {
		logging.Logger.Debug("Card not near expiry, gate idle",
			"days_remaining", daysRemaining,
			"threshold", g.threshold)
		return GateOutcome{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.locker != nil {
		if err := g.locker.Lock(); err != nil {
			logging.Logger.Warn("Failed to acquire gate lock, continuing unlocked", "error", err)
		} else {
			defer func() {
				if err := g.locker.Unlock(); err != nil {
					logging.Logger.Warn("Failed to release gate lock", "error", err)
				}
			}()
		}
	}

	today := domain.LedgerDate(now)
	outcome := GateOutcome{NearExpiry: true}

	if g.notifiedOn(ctx, today) {
		logging.Logger.Info("Expiry alert already sent today", "date", today, "days_remaining", daysRemaining)
		outcome.AlreadyNotified = true
		return outcome
	}

	if err := g.alerter.Alert(ctx, domain.ExpiryAlert()); err != nil {
		logging.Logger.Error("Failed to deliver expiry alert", "error", err, "days_remaining", daysRemaining)
		return outcome
	}
	outcome.Notified = true

	logging.Logger.Info("Expiry alert delivered", "date", today, "days_remaining", daysRemaining)

	if err := g.ledger.Set(ctx, g.key, today); err != nil {
		logging.Logger.Error("Failed to record expiry alert in ledger", "error", err, "date", today)
	}

	return outcome
}

// LastNotified returns the stored date of the last delivered alert
func (g *ExpiryGate) LastNotified(ctx context.Context) (string, bool, error) {
	value, err := g.ledger.Get(ctx, g.key)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// notifiedOn reports whether the ledger says an alert was delivered on day.
// An unavailable ledger is treated as having no entry.
func (g *ExpiryGate) notifiedOn(ctx context.Context, day string) bool {
	has, err := g.ledger.Has(ctx, g.key)
	if err != nil {
		logging.Logger.Warn("Ledger unavailable, treating as no entry", "error", err)
		return false
	}
	if !has {
		return false
	}

	lastDate, err := g.ledger.Get(ctx, g.key)
	if err != nil {
		logging.Logger.Warn("Failed to read ledger entry, treating as no entry", "error", err)
		return false
	}

	return lastDate == day
}
