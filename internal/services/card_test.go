package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cardwatch/internal/adapters/storage"
	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	portsmocks "github.com/renato0307/cardwatch/internal/ports/mocks"
)

var fixedNow = time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sampleSnapshot() *domain.CardSnapshot {
	return &domain.CardSnapshot{
		Card:           "89860000000000000001",
		ExpirationTime: "2024-01-01 00:00:00",
		FreeMB:         1024,
		UsedMB:         2048,
	}
}

// captureLogs swaps the package logger for one writing JSON into a buffer
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := logging.Logger
	logging.Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { logging.Logger = previous })
	return &buf
}

func TestCardService_Collect_EndToEnd(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	alerter := portsmocks.NewMockAlerter(t)
	ledger := storage.NewMemoryStore()

	api.EXPECT().Refresh(mock.Anything).Return(nil)
	api.EXPECT().Fetch(mock.Anything).Return(sampleSnapshot(), nil)
	alerter.EXPECT().Alert(mock.Anything, domain.ExpiryAlert()).Return(nil).Once()

	svc := NewCardService(api, NewExpiryGate(ledger, alerter), WithClock(fixedClock))

	payload, err := svc.Collect(context.Background())
	require.NoError(t, err)

	require.False(t, payload.Failed())
	require.NotNil(t, payload.Summary)
	assert.Equal(t, domain.CardSummary{
		Card:            "89860000000000000001",
		DaysRemaining:   2,
		FreeGB:          1.0,
		NearExpiry:      true,
		TotalGB:         3.0,
		UsagePercentage: 66.67,
		UsedGB:          2.0,
	}, *payload.Summary)
	assert.Equal(t, fixedNow, payload.UpdatedAt)

	value, err := ledger.Get(context.Background(), domain.LastNotifyKey)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-30", value)

	// Same day: still near expiry but no second alert
	payload, err = svc.Collect(context.Background())
	require.NoError(t, err)
	assert.True(t, payload.Summary.NearExpiry)
}

func TestCardService_Collect_NotNearExpiry(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	ledger := portsmocks.NewMockKeyValueStore(t)
	alerter := portsmocks.NewMockAlerter(t)

	snapshot := sampleSnapshot()
	snapshot.ExpirationTime = "2024-02-01 00:00:00"

	api.EXPECT().Refresh(mock.Anything).Return(nil)
	api.EXPECT().Fetch(mock.Anything).Return(snapshot, nil)

	svc := NewCardService(api, NewExpiryGate(ledger, alerter), WithClock(fixedClock))

	payload, err := svc.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 33, payload.Summary.DaysRemaining)
	assert.False(t, payload.Summary.NearExpiry)
}

func TestCardService_Collect_RefreshFailureStillFetches(t *testing.T) {
	logs := captureLogs(t)
	api := portsmocks.NewMockCardAPI(t)
	alerter := portsmocks.NewMockAlerter(t)

	api.EXPECT().Refresh(mock.Anything).Return(fmt.Errorf("%w: status 502", domain.ErrTransport))
	api.EXPECT().Fetch(mock.Anything).Return(sampleSnapshot(), nil)
	alerter.EXPECT().Alert(mock.Anything, mock.Anything).Return(nil)

	svc := NewCardService(api, NewExpiryGate(storage.NewMemoryStore(), alerter), WithClock(fixedClock))

	payload, err := svc.Collect(context.Background())
	require.NoError(t, err)
	assert.False(t, payload.Failed())
	assert.Contains(t, logs.String(), `"cause":"transport"`)
}

func TestCardService_Collect_RefreshRunsBeforeFetch(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	alerter := portsmocks.NewMockAlerter(t)

	var order []string
	api.EXPECT().Refresh(mock.Anything).Run(func(context.Context) {
		order = append(order, "refresh")
	}).Return(nil)
	api.EXPECT().Fetch(mock.Anything).Run(func(context.Context) {
		order = append(order, "fetch")
	}).Return(sampleSnapshot(), nil)
	alerter.EXPECT().Alert(mock.Anything, mock.Anything).Return(nil)

	svc := NewCardService(api, NewExpiryGate(storage.NewMemoryStore(), alerter), WithClock(fixedClock))

	_, err := svc.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"refresh", "fetch"}, order)
}

func TestCardService_Collect_Failures(t *testing.T) {
	tests := []struct {
		name      string
		snapshot  *domain.CardSnapshot
		fetchErr  error
		wantErr   error
		wantCause string
	}{
		{
			name:      "transport error",
			fetchErr:  fmt.Errorf("%w: connection refused", domain.ErrTransport),
			wantErr:   domain.ErrTransport,
			wantCause: "transport",
		},
		{
			name:      "decode error",
			fetchErr:  fmt.Errorf("%w: missing data", domain.ErrDecode),
			wantErr:   domain.ErrDecode,
			wantCause: "decode",
		},
		{
			name:      "nil snapshot",
			wantErr:   domain.ErrDecode,
			wantCause: "decode",
		},
		{
			name: "unparseable expiration",
			snapshot: &domain.CardSnapshot{
				Card:           "89860000000000000001",
				ExpirationTime: "not a date",
				FreeMB:         1024,
				UsedMB:         2048,
			},
			wantErr:   domain.ErrComputation,
			wantCause: "computation",
		},
		{
			name: "negative counter",
			snapshot: &domain.CardSnapshot{
				Card:           "89860000000000000001",
				ExpirationTime: "2024-01-01 00:00:00",
				FreeMB:         -1,
				UsedMB:         2048,
			},
			wantErr:   domain.ErrComputation,
			wantCause: "computation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			api := portsmocks.NewMockCardAPI(t)
			// Ledger and alerter must never be touched on failure
			ledger := portsmocks.NewMockKeyValueStore(t)
			alerter := portsmocks.NewMockAlerter(t)

			api.EXPECT().Refresh(mock.Anything).Return(nil)
			api.EXPECT().Fetch(mock.Anything).Return(tt.snapshot, tt.fetchErr)

			svc := NewCardService(api, NewExpiryGate(ledger, alerter), WithClock(fixedClock))

			payload, err := svc.Collect(context.Background())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCause, domain.ErrorCause(err))
			assert.Equal(t, domain.NewFailurePayload(fixedNow), payload)
			assert.Nil(t, payload.Summary)
			assert.Contains(t, logs.String(), `"cause":"`+tt.wantCause+`"`)
		})
	}
}

func TestCardService_Run_Presents(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	presenter := portsmocks.NewMockPresenter(t)
	alerter := portsmocks.NewMockAlerter(t)

	api.EXPECT().Refresh(mock.Anything).Return(nil)
	api.EXPECT().Fetch(mock.Anything).Return(sampleSnapshot(), nil)
	alerter.EXPECT().Alert(mock.Anything, mock.Anything).Return(nil)
	presenter.EXPECT().Present(mock.MatchedBy(func(p domain.WidgetPayload) bool {
		return p.Summary != nil && p.Summary.DaysRemaining == 2
	})).Return(nil).Once()

	svc := NewCardService(api, NewExpiryGate(storage.NewMemoryStore(), alerter),
		WithClock(fixedClock), WithPresenter(presenter))

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
}

func TestCardService_Run_PresentsFailurePayload(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	presenter := portsmocks.NewMockPresenter(t)

	api.EXPECT().Refresh(mock.Anything).Return(errors.New("boom"))
	api.EXPECT().Fetch(mock.Anything).Return(nil, fmt.Errorf("%w: timeout", domain.ErrTransport))
	presenter.EXPECT().Present(domain.NewFailurePayload(fixedNow)).Return(nil).Once()

	svc := NewCardService(api, NewExpiryGate(storage.NewMemoryStore(), portsmocks.NewMockAlerter(t)),
		WithClock(fixedClock), WithPresenter(presenter))

	payload, err := svc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.True(t, payload.Failed())
}

func TestCardService_Run_PresenterError(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	presenter := portsmocks.NewMockPresenter(t)
	alerter := portsmocks.NewMockAlerter(t)

	api.EXPECT().Refresh(mock.Anything).Return(nil)
	api.EXPECT().Fetch(mock.Anything).Return(sampleSnapshot(), nil)
	alerter.EXPECT().Alert(mock.Anything, mock.Anything).Return(nil)
	presenter.EXPECT().Present(mock.Anything).Return(errors.New("broken pipe"))

	svc := NewCardService(api, NewExpiryGate(storage.NewMemoryStore(), alerter),
		WithClock(fixedClock), WithPresenter(presenter))

	payload, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.False(t, payload.Failed())
}

func TestCardService_CollectShared(t *testing.T) {
	api := portsmocks.NewMockCardAPI(t)
	alerter := portsmocks.NewMockAlerter(t)

	release := make(chan struct{})
	var fetches atomic.Int32

	api.EXPECT().Refresh(mock.Anything).Return(nil)
	api.EXPECT().Fetch(mock.Anything).RunAndReturn(func(context.Context) (*domain.CardSnapshot, error) {
		fetches.Add(1)
		<-release
		return sampleSnapshot(), nil
	})
	alerter.EXPECT().Alert(mock.Anything, mock.Anything).Return(nil)

	svc := NewCardService(api, NewExpiryGate(storage.NewMemoryStore(), alerter), WithClock(fixedClock))

	const callers = 5
	var started, wg sync.WaitGroup
	results := make([]domain.WidgetPayload, callers)
	started.Add(callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			started.Done()
			payload, err := svc.CollectShared(context.Background())
			assert.NoError(t, err)
			results[i] = payload
		}(i)
	}
	started.Wait()
	// Give the joiners time to reach the in-flight call
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.GreaterOrEqual(t, fetches.Load(), int32(1))
	assert.Less(t, fetches.Load(), int32(callers+1))
	for _, payload := range results {
		require.NotNil(t, payload.Summary)
		assert.Equal(t, 2, payload.Summary.DaysRemaining)
	}
}
