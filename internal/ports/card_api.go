package ports

import (
	"context"

	"github.com/renato0307/cardwatch/internal/domain"
)

// CardAPI talks to the card operator's account endpoint
type CardAPI interface {
	// Fetch reads the current usage snapshot
	Fetch(ctx context.Context) (*domain.CardSnapshot, error)

	// Refresh asks the operator to recompute its cached usage data
	Refresh(ctx context.Context) error
}
