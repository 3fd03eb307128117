package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	"github.com/renato0307/cardwatch/internal/ports"
)

// CardService runs the refresh, fetch, derive, gate pipeline
type CardService struct {
	api       ports.CardAPI
	gate      *ExpiryGate
	group     singleflight.Group
	now       func() time.Time
	presenter ports.Presenter
}

// CardServiceOption configures a CardService
type CardServiceOption func(*CardService)

// WithClock overrides the time source
func WithClock(now func() time.Time) CardServiceOption {
	return func(s *CardService) {
		s.now = now
	}
}

// WithPresenter sets the sink that Run hands payloads to
func WithPresenter(presenter ports.Presenter) CardServiceOption {
	return func(s *CardService) {
		s.presenter = presenter
	}
}

// NewCardService creates a new CardService
func NewCardService(api ports.CardAPI, gate *ExpiryGate, opts ...CardServiceOption) *CardService {
	s := &CardService{
		api:  api,
		gate: gate,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one pipeline cycle and presents the resulting payload.
// The returned error carries the failure cause; the payload is always presentable.
func (s *CardService) Run(ctx context.Context) (domain.WidgetPayload, error) {
	payload, err := s.Collect(ctx)

	if s.presenter == nil {
		return payload, err
	}
	if presentErr := s.presenter.Present(payload); presentErr != nil {
		logging.Logger.Error("Failed to present widget", "error", presentErr)
		return payload, errors.Join(err, fmt.Errorf("failed to present widget: %w", presentErr))
	}

	return payload, err
}

// Collect executes one pipeline cycle without presenting it
func (s *CardService) Collect(ctx context.Context) (domain.WidgetPayload, error) {
	logging.Logger.Debug("Starting card refresh cycle")

	// Refresh is advisory, its outcome never changes control flow
	if err := s.api.Refresh(ctx); err != nil {
		logging.Logger.Warn("Refresh request failed, fetching anyway",
			"error", err,
			"cause", domain.ErrorCause(err))
	} else {
		logging.Logger.Debug("Refresh request completed")
	}

	snapshot, err := s.api.Fetch(ctx)
	if err == nil && snapshot == nil {
		err = fmt.Errorf("%w: no snapshot returned", domain.ErrDecode)
	}
	if err != nil {
		return s.fail("fetch", err)
	}

	payload, err := s.summarize(ctx, *snapshot)
	if err != nil {
		return s.fail("summarize", err)
	}

	logging.Logger.Info("Card refresh cycle completed",
		"card", snapshot.Card,
		"days_remaining", payload.Summary.DaysRemaining,
		"usage_percentage", payload.Summary.UsagePercentage,
		"near_expiry", payload.Summary.NearExpiry)

	return payload, nil
}

// CollectShared is Collect with concurrent callers sharing a single in-flight cycle
func (s *CardService) CollectShared(ctx context.Context) (domain.WidgetPayload, error) {
	type result struct {
		err     error
		payload domain.WidgetPayload
	}

	v, _, shared := s.group.Do("collect", func() (any, error) {
		payload, err := s.Collect(ctx)
		return result{err: err, payload: payload}, nil
	})
	if shared {
		logging.Logger.Debug("Joined in-flight refresh cycle")
	}

	r := v.(result)
	return r.payload, r.err
}

// summarize derives metrics and applies the expiry gate.
// Any failure in here, panics included, becomes a single error.
func (s *CardService) summarize(ctx context.Context, snapshot domain.CardSnapshot) (payload domain.WidgetPayload, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic while summarizing card: %v", domain.ErrComputation, r)
		}
	}()

	now := s.now()

	metrics, err := domain.Derive(snapshot, now)
	if err != nil {
		return domain.WidgetPayload{}, err
	}

	outcome := s.gate.Evaluate(ctx, metrics.DaysRemaining, now)
	logging.Logger.Debug("Expiry gate evaluated",
		"near_expiry", outcome.NearExpiry,
		"notified", outcome.Notified,
		"already_notified", outcome.AlreadyNotified)

	return domain.NewSummaryPayload(snapshot.Card, metrics, s.gate.IsNearExpiry(metrics.DaysRemaining), now), nil
}

func (s *CardService) fail(stage string, err error) (domain.WidgetPayload, error) {
	logging.Logger.Error("Card refresh cycle failed",
		"stage", stage,
		"cause", domain.ErrorCause(err),
		"error", err)
	return domain.NewFailurePayload(s.now()), err
}
