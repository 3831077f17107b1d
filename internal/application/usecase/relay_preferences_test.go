package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/application/port/mocks"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/handoff"
	"github.com/bnema/sysprefs/internal/infrastructure/prefstore"
	"github.com/bnema/sysprefs/internal/logging"
)

const waitFor = 2 * time.Second

func newMockSource(t *testing.T, stream chan port.RawPreferences) *mocks.MockPreferenceSource {
	t.Helper()
	ctrl := gomock.NewController(t)
	source := mocks.NewMockPreferenceSource(ctrl)
	source.EXPECT().Name().Return("mock").AnyTimes()

	var out <-chan port.RawPreferences = stream
	source.EXPECT().Subscribe(gomock.Any(), entity.CompiledInterest).Return(out, nil).Times(1)
	return source
}

func receiveN(t *testing.T, rx *handoff.Receiver[entity.Preferences], n int) []entity.Preferences {
	t.Helper()
	require.Eventually(t, func() bool { return rx.Len() >= n }, waitFor, time.Millisecond)

	out := make([]entity.Preferences, 0, n)
	for range n {
		p, err := rx.TryReceive()
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func TestRelay_ForwardsConvertedSnapshotsInOrder(t *testing.T) {
	stream := make(chan port.RawPreferences, 3)
	relay := NewRelayPreferencesUseCase(newMockSource(t, stream), entity.CompiledInterest)

	rx, err := relay.Start(context.Background())
	require.NoError(t, err)

	stream <- port.RawPreferences{ColorScheme: port.RawColorSchemeLight}
	stream <- port.RawPreferences{ColorScheme: port.RawColorSchemeDark}
	stream <- port.RawPreferences{Contrast: port.RawContrastMore}

	got := receiveN(t, rx, 3)
	assert.Equal(t, ConvertPreferences(port.RawPreferences{ColorScheme: port.RawColorSchemeLight}, entity.CompiledInterest), got[0])
	assert.Equal(t, ConvertPreferences(port.RawPreferences{ColorScheme: port.RawColorSchemeDark}, entity.CompiledInterest), got[1])
	assert.Equal(t, ConvertPreferences(port.RawPreferences{Contrast: port.RawContrastMore}, entity.CompiledInterest), got[2])

	close(stream)
	select {
	case <-relay.Done():
	case <-time.After(waitFor):
		t.Fatal("relay did not exit after stream end")
	}

	_, err = rx.TryReceive()
	assert.ErrorIs(t, err, handoff.ErrClosed)
}

func TestRelay_StopsSilentlyWhenReceiverClosed(t *testing.T) {
	stream := make(chan port.RawPreferences)
	relay := NewRelayPreferencesUseCase(newMockSource(t, stream), entity.CompiledInterest)

	rx, err := relay.Start(context.Background())
	require.NoError(t, err)
	rx.Close()

	// The relay only notices on its next send.
	select {
	case <-relay.Done():
		t.Fatal("relay exited before any send")
	default:
	}

	stream <- port.RawPreferences{ColorScheme: port.RawColorSchemeDark}

	select {
	case <-relay.Done():
	case <-time.After(waitFor):
		t.Fatal("relay kept running after receiver closed")
	}
}

func TestRelay_StartTwice(t *testing.T) {
	stream := make(chan port.RawPreferences)
	defer close(stream)
	relay := NewRelayPreferencesUseCase(newMockSource(t, stream), entity.CompiledInterest)

	_, err := relay.Start(context.Background())
	require.NoError(t, err)

	_, err = relay.Start(context.Background())
	assert.ErrorIs(t, err, ErrRelayAlreadyStarted)
}

func TestRelay_SubscribeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockPreferenceSource(ctrl)
	source.EXPECT().Name().Return("broken").AnyTimes()
	source.EXPECT().Subscribe(gomock.Any(), entity.InterestColorScheme).Return(nil, errors.New("no bus"))

	relay := NewRelayPreferencesUseCase(source, entity.InterestColorScheme)
	rx, err := relay.Start(context.Background())

	require.Error(t, err)
	assert.Nil(t, rx)
	assert.Contains(t, err.Error(), "broken")
}

func TestRelay_PanicClosesRelayAndIsReported(t *testing.T) {
	stream := make(chan port.RawPreferences, 2)
	relay := NewRelayPreferencesUseCase(newMockSource(t, stream), entity.CompiledInterest)

	calls := 0
	relay.convert = func(raw port.RawPreferences, interest entity.Interest) entity.Preferences {
		calls++
		if calls == 2 {
			panic("converter blew up")
		}
		return ConvertPreferences(raw, interest)
	}

	var logs bytes.Buffer
	ctx := logging.WithContext(context.Background(), zerolog.New(&logs))

	rx, err := relay.Start(ctx)
	require.NoError(t, err)

	stream <- port.RawPreferences{ColorScheme: port.RawColorSchemeDark}
	stream <- port.RawPreferences{ColorScheme: port.RawColorSchemeLight}

	select {
	case <-relay.Done():
	case <-time.After(waitFor):
		t.Fatal("relay did not exit after panic")
	}

	store := prefstore.NewCell()
	publisher := NewPublishPreferencesUseCase(rx, store)

	changed, err := publisher.Poll(ctx)
	assert.True(t, changed)
	require.ErrorIs(t, err, ErrRelayClosed)
	assert.True(t, publisher.Closed())
	want := ConvertPreferences(port.RawPreferences{ColorScheme: port.RawColorSchemeDark}, entity.CompiledInterest)
	assert.Equal(t, want, store.Load())

	assert.Contains(t, logs.String(), "preference relay panicked")
	assert.Contains(t, logs.String(), "converter blew up")
}
