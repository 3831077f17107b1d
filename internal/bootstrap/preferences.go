// Package bootstrap wires the preference pipeline into a host application.
package bootstrap

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/application/usecase"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/infrastructure/config"
	"github.com/bnema/sysprefs/internal/infrastructure/handoff"
	"github.com/bnema/sysprefs/internal/infrastructure/platform"
	"github.com/bnema/sysprefs/internal/infrastructure/prefstore"
	"github.com/bnema/sysprefs/internal/logging"
	"github.com/bnema/sysprefs/internal/ui/mainloop"
)

// ErrNotStarted is returned by Update before Start has succeeded.
var ErrNotStarted = errors.New("preferences plugin not started")

const (
	systemName      = "preferences"
	configReloadKey = "preferences.config-reload"
)

// PreferencesPlugin owns the shared snapshot, the relay goroutine and the
// per-tick publisher. Start once, call Update every tick, read Preferences
// from anywhere.
type PreferencesPlugin struct {
	source    port.PreferenceSource
	interest  entity.Interest
	cell      *prefstore.Cell
	relay     *usecase.RelayPreferencesUseCase
	resolver  *platform.Resolver
	overrides *platform.OverrideSource

	mu        sync.Mutex
	receiver  *handoff.Receiver[entity.Preferences]
	publisher *usecase.PublishPreferencesUseCase
	cancel    context.CancelFunc
}

// PluginOption configures a PreferencesPlugin.
type PluginOption func(*PreferencesPlugin)

// WithInterest narrows the categories watched. Categories compiled out stay
// excluded whatever is passed.
func WithInterest(interest entity.Interest) PluginOption {
	return func(p *PreferencesPlugin) {
		p.interest = interest & entity.CompiledInterest
	}
}

// NewPreferencesPlugin builds the platform source chain from cfg.
func NewPreferencesPlugin(ctx context.Context, cfg *config.Config, opts ...PluginOption) *PreferencesPlugin {
	resolver, overrides := BuildSourceChain(ctx, cfg)
	p := NewPreferencesPluginWithSource(resolver, opts...)
	p.resolver = resolver
	p.overrides = overrides
	return p
}

// NewPreferencesPluginWithSource creates a plugin reading from any source.
func NewPreferencesPluginWithSource(source port.PreferenceSource, opts ...PluginOption) *PreferencesPlugin {
	p := &PreferencesPlugin{
		source:   source,
		interest: entity.CompiledInterest,
		cell:     prefstore.NewCell(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.relay = usecase.NewRelayPreferencesUseCase(source, p.interest)
	return p
}

// BuildSourceChain registers the sources named in preferences.sources, in
// config order, plus the config override source.
func BuildSourceChain(ctx context.Context, cfg *config.Config) (*platform.Resolver, *platform.OverrideSource) {
	log := logging.FromContext(ctx)
	prefs := cfg.Preferences

	resolver := platform.NewResolver()
	for _, name := range prefs.Sources {
		switch name {
		case config.SourcePortal:
			resolver.RegisterSource(platform.NewPortalSource())
		case config.SourceRegistry:
			resolver.RegisterSource(platform.NewRegistrySource(prefs.PollInterval))
		case config.SourceGsettings:
			resolver.RegisterSource(platform.NewGsettingsSource(prefs.PollInterval))
		case config.SourceEnv:
			resolver.RegisterSource(platform.NewEnvSource())
		default:
			log.Warn().Str("source", name).Msg("unknown preference source ignored")
		}
	}

	overrides := platform.NewOverrideSource(prefs.Overrides)
	resolver.RegisterSource(overrides)
	if prefs.Overrides.IsSet() {
		log.Info().Msg("preference overrides active")
	}

	return resolver, overrides
}

// Start subscribes to the source and spawns the relay goroutine. The
// subscription lives until Close or until ctx is done.
func (p *PreferencesPlugin) Start(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, systemName)
	timer := newPhaseTimer()

	runCtx, cancel := context.WithCancel(ctx)
	receiver, err := p.relay.Start(runCtx)
	if err != nil {
		cancel()
		return err
	}
	timer.Mark("subscribe")

	p.mu.Lock()
	p.receiver = receiver
	p.publisher = usecase.NewPublishPreferencesUseCase(receiver, p.cell)
	p.cancel = cancel
	p.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("source", p.source.Name()).
		Str("interest", p.interest.String()).
		Msg("preferences plugin started")
	timer.LogDebug(ctx, "preferences plugin startup timing")
	return nil
}

// Update publishes the newest relayed snapshot. Call it once per host tick.
// It returns usecase.ErrRelayClosed once when the relay has stopped.
func (p *PreferencesPlugin) Update(ctx context.Context) error {
	p.mu.Lock()
	publisher := p.publisher
	p.mu.Unlock()

	if publisher == nil {
		return ErrNotStarted
	}
	_, err := publisher.Poll(ctx)
	return err
}

// Preferences returns the current snapshot.
func (p *PreferencesPlugin) Preferences() entity.Preferences {
	return p.cell.Load()
}

// Version increases every time a new snapshot is published.
func (p *PreferencesPlugin) Version() uint64 {
	return p.cell.Version()
}

// Interest returns the categories this plugin watches.
func (p *PreferencesPlugin) Interest() entity.Interest {
	return p.interest
}

// Closed reports whether the relay has stopped for good.
func (p *PreferencesPlugin) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.publisher != nil && p.publisher.Closed()
}

// Sources reports the registered platform sources. It is empty for plugins
// built on a single source.
func (p *PreferencesPlugin) Sources(ctx context.Context) []platform.SourceStatus {
	if p.resolver == nil {
		return nil
	}
	return p.resolver.Describe(ctx)
}

// ApplyConfig pushes reloaded overrides into the running pipeline.
func (p *PreferencesPlugin) ApplyConfig(cfg *config.Config) {
	if p.overrides == nil || cfg == nil {
		return
	}
	p.overrides.Update(cfg.Preferences.Overrides)
}

// Install registers Update as a loop system and routes config reloads
// through the loop. mgr may be nil.
func (p *PreferencesPlugin) Install(loop *mainloop.Loop, mgr *config.Manager) {
	loop.AddSystem(systemName, p.Update)
	if mgr == nil {
		return
	}
	mgr.OnConfigChange(func(cfg *config.Config) {
		loop.Post(configReloadKey, func() {
			p.ApplyConfig(cfg)
		})
	})
}

// Close disconnects the receiver so the relay goroutine stops on its next
// send, and cancels the subscription. Safe to call more than once.
func (p *PreferencesPlugin) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.receiver != nil {
		p.receiver.Close()
	}
	if p.cancel != nil {
		p.cancel()
	}
}
