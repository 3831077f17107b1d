package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/handoff"
	"github.com/bnema/sysprefs/internal/logging"
)

// ErrRelayAlreadyStarted is returned when Start is called twice.
var ErrRelayAlreadyStarted = errors.New("preference relay already started")

// RelayPreferencesUseCase forwards a platform preference stream to a
// non-blocking hand-off queue from a background goroutine.
type RelayPreferencesUseCase struct {
	source   port.PreferenceSource
	interest entity.Interest
	convert  func(port.RawPreferences, entity.Interest) entity.Preferences

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

// NewRelayPreferencesUseCase creates a relay for source. Only categories in
// interest are subscribed to and converted.
func NewRelayPreferencesUseCase(source port.PreferenceSource, interest entity.Interest) *RelayPreferencesUseCase {
	return &RelayPreferencesUseCase{
		source:   source,
		interest: interest,
		convert:  ConvertPreferences,
		done:     make(chan struct{}),
	}
}

// Start subscribes to the source once and spawns the forwarding goroutine.
// The returned receiver yields converted snapshots in emission order.
//
// The subscription lives as long as ctx. The goroutine ends when the stream
// ends or the first time a send fails because the receiver was closed.
func (uc *RelayPreferencesUseCase) Start(ctx context.Context) (*handoff.Receiver[entity.Preferences], error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.started {
		return nil, ErrRelayAlreadyStarted
	}

	log := logging.FromContext(ctx)

	stream, err := uc.source.Subscribe(ctx, uc.interest)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", uc.source.Name(), err)
	}
	uc.started = true

	tx, rx := handoff.New[entity.Preferences]()
	go uc.forward(ctx, stream, tx)

	log.Debug().
		Str("source", uc.source.Name()).
		Str("interest", uc.interest.String()).
		Msg("preference relay started")

	return rx, nil
}

// Done is closed when the forwarding goroutine has exited.
func (uc *RelayPreferencesUseCase) Done() <-chan struct{} {
	return uc.done
}

func (uc *RelayPreferencesUseCase) forward(
	ctx context.Context,
	stream <-chan port.RawPreferences,
	tx *handoff.Sender[entity.Preferences],
) {
	log := logging.FromContext(ctx)

	defer close(uc.done)
	defer tx.Close()
	defer func() {
		if r := recover(); r != nil {
			logging.LogPanic(log, r, "preference relay panicked")
		}
	}()

	for raw := range stream {
		prefs := uc.convert(raw, uc.interest)
		if err := tx.Send(prefs); err != nil {
			log.Debug().Err(err).Msg("preference receiver gone, stopping relay")
			return
		}
		log.Trace().Stringer("preferences", prefs).Msg("preferences forwarded")
	}

	log.Debug().Str("source", uc.source.Name()).Msg("preference stream ended")
}
