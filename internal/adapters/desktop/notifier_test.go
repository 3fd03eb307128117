package desktop

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/cardwatch/internal/domain"
	"github.com/renato0307/cardwatch/internal/logging"
	portsmocks "github.com/renato0307/cardwatch/internal/ports/mocks"
)

type recordedCommand struct {
	name string
	args []string
}

func newTestNotifier(sound *portsmocks.MockSoundPlayer, runErr error) (*Notifier, *[]recordedCommand, *bytes.Buffer) {
	var calls []recordedCommand
	var fallback bytes.Buffer
	n := &Notifier{
		command:  notificationCommand,
		fallback: &fallback,
		run: func(_ context.Context, name string, args ...string) error {
			calls = append(calls, recordedCommand{name: name, args: args})
			return runErr
		},
		sound: sound,
	}
	if sound == nil {
		n.sound = nil
	}
	return n, &calls, &fallback
}

func TestNotifier_Alert_ShowsAndPlaysSound(t *testing.T) {
	sound := portsmocks.NewMockSoundPlayer(t)
	sound.EXPECT().PlaySoundNamed("default").Return(nil).Once()

	n, calls, fallback := newTestNotifier(sound, nil)

	require.NoError(t, n.Alert(context.Background(), domain.ExpiryAlert()))

	name, args := notificationCommand(domain.ExpiryAlert())
	if name == "" {
		assert.Empty(t, *calls)
		assert.Equal(t, "Data card expiring soon: Please top up\n", fallback.String())
		return
	}
	require.Len(t, *calls, 1)
	assert.Equal(t, recordedCommand{name: name, args: args}, (*calls)[0])
}

func TestNotifier_Alert_SoundFailureIsNotFatal(t *testing.T) {
	sound := portsmocks.NewMockSoundPlayer(t)
	sound.EXPECT().PlaySoundNamed("default").Return(errors.New("no audio device"))

	n, _, _ := newTestNotifier(sound, nil)

	assert.NoError(t, n.Alert(context.Background(), domain.ExpiryAlert()))
}

func TestNotifier_Alert_CommandFailure(t *testing.T) {
	if name, _ := notificationCommand(domain.ExpiryAlert()); name == "" {
		t.Skip("no native notification command on this platform")
	}

	// Sound must not play when the notification could not be shown
	sound := portsmocks.NewMockSoundPlayer(t)
	n, _, _ := newTestNotifier(sound, errors.New("exit status 1"))

	err := n.Alert(context.Background(), domain.ExpiryAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to show notification")
}

func TestNotifier_Alert_SilentAlert(t *testing.T) {
	n, _, _ := newTestNotifier(nil, nil)

	alert := domain.ExpiryAlert()
	alert.Sound = ""

	assert.NoError(t, n.Alert(context.Background(), alert))
}

func TestNotificationCommand_IncludesTitleAndBody(t *testing.T) {
	name, args := notificationCommand(domain.ExpiryAlert())
	if name == "" {
		t.Skip("no native notification command on this platform")
	}

	joined := ""
	for _, a := range args {
		joined += a + " "
	}
	assert.Contains(t, joined, "Data card expiring soon")
	assert.Contains(t, joined, "Please top up")
}

func noNativeCommand(domain.Alert) (string, []string) { return "", nil }

func TestNotifier_Alert_NoFacilityPrintsToFallback(t *testing.T) {
	n, calls, fallback := newTestNotifier(nil, nil)
	n.command = noNativeCommand

	require.NoError(t, n.Alert(context.Background(), domain.ExpiryAlert()))

	assert.Empty(t, *calls)
	assert.Equal(t, "Data card expiring soon: Please top up\n", fallback.String())
}

func TestNotifier_Alert_NoFacilityWithoutFallbackOnlyLogs(t *testing.T) {
	var logs bytes.Buffer
	previous := logging.Logger
	logging.Logger = slog.New(slog.NewJSONHandler(&logs, nil))
	t.Cleanup(func() { logging.Logger = previous })

	n := NewNotifier(nil)
	n.command = noNativeCommand

	require.NoError(t, n.Alert(context.Background(), domain.ExpiryAlert()))

	assert.Nil(t, n.fallback)
	assert.Contains(t, logs.String(), "No desktop notification facility")
	assert.Contains(t, logs.String(), `"body":"Please top up"`)
}

func TestNewNotifier_WithFallback(t *testing.T) {
	var out bytes.Buffer

	n := NewNotifier(nil, WithFallback(&out))
	n.command = noNativeCommand

	require.NoError(t, n.Alert(context.Background(), domain.ExpiryAlert()))
	assert.Equal(t, "Data card expiring soon: Please top up\n", out.String())
}
