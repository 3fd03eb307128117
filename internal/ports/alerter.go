package ports

import (
	"context"

	"github.com/renato0307/cardwatch/internal/domain"
)

// Alerter delivers a local notification
type Alerter interface {
	Alert(ctx context.Context, alert domain.Alert) error
}

// Presenter renders the final widget payload
type Presenter interface {
	Present(payload domain.WidgetPayload) error
}

// Locker serializes work across processes sharing the same ledger
type Locker interface {
	Lock() error
	Unlock() error
}
