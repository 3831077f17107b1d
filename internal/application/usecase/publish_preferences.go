package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/handoff"
	"github.com/bnema/sysprefs/internal/logging"
)

// ErrRelayClosed means the relay goroutine has stopped for good and the
// published preferences will not change again.
var ErrRelayClosed = errors.New("preference relay closed")

// PreferenceReceiver is the consuming end of the relay queue.
type PreferenceReceiver interface {
	TryReceive() (entity.Preferences, error)
}

// PublishPreferencesUseCase moves the newest relayed snapshot into the store.
// Poll must only be called from the host's main loop.
type PublishPreferencesUseCase struct {
	receiver PreferenceReceiver
	store    port.PreferenceStore
	closed   bool
}

// NewPublishPreferencesUseCase creates a publisher draining receiver into store.
func NewPublishPreferencesUseCase(receiver PreferenceReceiver, store port.PreferenceStore) *PublishPreferencesUseCase {
	return &PublishPreferencesUseCase{
		receiver: receiver,
		store:    store,
	}
}

// Poll drains every queued snapshot without blocking and stores only the last
// one. It reports whether the store was updated.
//
// When the relay has ended, anything drained is still stored and
// ErrRelayClosed is returned. That error is reported once; later polls are
// no-ops.
func (uc *PublishPreferencesUseCase) Poll(ctx context.Context) (bool, error) {
	if uc.closed {
		return false, nil
	}

	var (
		latest   entity.Preferences
		received int
		closeErr error
	)

drain:
	for {
		prefs, err := uc.receiver.TryReceive()
		switch {
		case err == nil:
			latest = prefs
			received++
		case errors.Is(err, handoff.ErrEmpty):
			break drain
		default:
			closeErr = err
			break drain
		}
	}

	if received > 0 {
		uc.store.Store(latest)
		logging.FromContext(ctx).Debug().
			Int("drained", received).
			Stringer("preferences", latest).
			Msg("preferences published")
	}

	if closeErr != nil {
		uc.closed = true
		logging.FromContext(ctx).Error().Err(closeErr).Msg("preference relay stopped, preferences will no longer update")
		return received > 0, fmt.Errorf("%w: %w", ErrRelayClosed, closeErr)
	}
	return received > 0, nil
}

// Closed reports whether the relay has been seen closed.
func (uc *PublishPreferencesUseCase) Closed() bool {
	return uc.closed
}
