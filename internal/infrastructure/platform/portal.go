package platform

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/bnema/sysprefs/internal/application/port"
	"github.com/bnema/sysprefs/internal/domain/entity"
	"github.com/bnema/sysprefs/internal/logging"
)

const (
	portalDest        = "org.freedesktop.portal.Desktop"
	portalPath        = "/org/freedesktop/portal/desktop"
	settingsInterface = "org.freedesktop.portal.Settings"

	nsAppearance = "org.freedesktop.appearance"
	nsInterface  = "org.gnome.desktop.interface"
	nsA11y       = "org.gnome.desktop.a11y.interface"
	nsMouse      = "org.gnome.desktop.peripherals.mouse"

	keyColorScheme      = "color-scheme"
	keyContrast         = "contrast"
	keyAccentColor      = "accent-color"
	keyEnableAnimations = "enable-animations"
	keyHighContrast     = "high-contrast"
	keyDoubleClick      = "double-click"

	sourceNamePortal = "xdg-portal"
	priorityPortal   = 100
)

// portalKeys maps each watched portal setting to the category it feeds.
var portalKeys = map[[2]string]entity.Interest{
	{nsAppearance, keyColorScheme}:     entity.InterestColorScheme,
	{nsAppearance, keyContrast}:        entity.InterestContrast,
	{nsAppearance, keyAccentColor}:     entity.InterestAccentColor,
	{nsA11y, keyHighContrast}:          entity.InterestContrast,
	{nsInterface, keyEnableAnimations}: entity.InterestReducedMotion,
	{nsMouse, keyDoubleClick}:          entity.InterestDoubleClickInterval,
}

var portalNamespaces = []string{nsAppearance, nsInterface, nsA11y, nsMouse}

// Compile-time interface check.
var _ port.PreferenceSource = (*PortalSource)(nil)

// PortalSource reads preferences from the XDG Settings portal and follows its
// SettingChanged signal. Works on any desktop running xdg-desktop-portal.
type PortalSource struct {
	connect func() (*dbus.Conn, error)

	once      sync.Once
	available bool
}

// NewPortalSource creates a portal source on the session bus.
func NewPortalSource() *PortalSource {
	return &PortalSource{connect: func() (*dbus.Conn, error) {
		return dbus.ConnectSessionBus()
	}}
}

// Name implements port.PreferenceSource.
func (*PortalSource) Name() string {
	return sourceNamePortal
}

// Priority implements port.PreferenceSource.
func (*PortalSource) Priority() int {
	return priorityPortal
}

// Available implements port.PreferenceSource.
// Returns true if the session bus exposes the Settings portal. The result is cached.
func (p *PortalSource) Available(ctx context.Context) bool {
	p.once.Do(func() {
		log := logging.FromContext(ctx)

		conn, err := p.connect()
		if err != nil {
			log.Debug().Err(err).Msg("settings portal: cannot connect to D-Bus session bus")
			return
		}
		defer conn.Close()

		var version dbus.Variant
		err = conn.Object(portalDest, portalPath).
			CallWithContext(ctx, "org.freedesktop.DBus.Properties.Get", 0, settingsInterface, "version").
			Store(&version)
		if err != nil {
			log.Debug().Err(err).Msg("settings portal: not available")
			return
		}

		log.Debug().Interface("version", version.Value()).Msg("settings portal: available")
		p.available = true
	})
	return p.available
}

// Subscribe implements port.PreferenceSource.
func (p *PortalSource) Subscribe(ctx context.Context, interest entity.Interest) (<-chan port.RawPreferences, error) {
	log := logging.FromContext(ctx)

	conn, err := p.connect()
	if err != nil {
		return nil, fmt.Errorf("settings portal: connect session bus: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(portalPath),
		dbus.WithMatchInterface(settingsInterface),
		dbus.WithMatchMember("SettingChanged"),
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("settings portal: add signal match: %w", err)
	}
	signals := make(chan *dbus.Signal, 16)
	conn.Signal(signals)

	settings, err := readAllSettings(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	out := make(chan port.RawPreferences)
	go func() {
		defer close(out)
		defer conn.Close()

		if !emit(ctx, out, rawFromPortalSettings(settings)) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					log.Debug().Msg("settings portal: signal channel closed")
					return
				}
				ns, key, value, ok := parseSettingChanged(sig)
				if !ok || !watched(ns, key, interest) {
					continue
				}
				if settings[ns] == nil {
					settings[ns] = make(map[string]dbus.Variant)
				}
				settings[ns][key] = value
				log.Debug().Str("namespace", ns).Str("key", key).Msg("settings portal: setting changed")

				if !emit(ctx, out, rawFromPortalSettings(settings)) {
					return
				}
			}
		}
	}()

	return out, nil
}

func readAllSettings(ctx context.Context, conn *dbus.Conn) (map[string]map[string]dbus.Variant, error) {
	callCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	settings := make(map[string]map[string]dbus.Variant)
	err := conn.Object(portalDest, portalPath).
		CallWithContext(callCtx, settingsInterface+".ReadAll", 0, portalNamespaces).
		Store(&settings)
	if err != nil {
		return nil, fmt.Errorf("settings portal: ReadAll: %w", err)
	}
	return settings, nil
}

func watched(ns, key string, interest entity.Interest) bool {
	category, ok := portalKeys[[2]string{ns, key}]
	return ok && interest.Has(category)
}

func parseSettingChanged(sig *dbus.Signal) (ns, key string, value dbus.Variant, ok bool) {
	if sig == nil || sig.Name != settingsInterface+".SettingChanged" || len(sig.Body) != 3 {
		return "", "", dbus.Variant{}, false
	}
	ns, okNS := sig.Body[0].(string)
	key, okKey := sig.Body[1].(string)
	value, okValue := sig.Body[2].(dbus.Variant)
	return ns, key, value, okNS && okKey && okValue
}

// rawFromPortalSettings maps portal settings to a raw snapshot. Missing,
// mistyped or out-of-range values are treated as unset.
func rawFromPortalSettings(settings map[string]map[string]dbus.Variant) port.RawPreferences {
	var raw port.RawPreferences

	lookup := func(ns, key string) (any, bool) {
		v, ok := settings[ns][key]
		if !ok {
			return nil, false
		}
		return unwrapVariant(v), true
	}

	if v, ok := lookup(nsAppearance, keyColorScheme); ok {
		switch asUint32(v) {
		case 1:
			raw.ColorScheme = port.RawColorSchemeDark
		case 2:
			raw.ColorScheme = port.RawColorSchemeLight
		}
	}

	if v, ok := lookup(nsAppearance, keyContrast); ok {
		if asUint32(v) == 1 {
			raw.Contrast = port.RawContrastMore
		}
	} else if v, ok := lookup(nsA11y, keyHighContrast); ok {
		if b, isBool := v.(bool); isBool && b {
			raw.Contrast = port.RawContrastMore
		}
	}

	if v, ok := lookup(nsAppearance, keyAccentColor); ok {
		raw.AccentColor = accentFromTuple(v)
	}

	if v, ok := lookup(nsInterface, keyEnableAnimations); ok {
		if b, isBool := v.(bool); isBool && !b {
			raw.ReducedMotion = port.RawReducedMotionReduce
		}
	}

	if v, ok := lookup(nsMouse, keyDoubleClick); ok {
		if ms, isInt := asInt64(v); isInt && ms > 0 {
			raw.DoubleClickInterval = durationPtr(time.Duration(ms) * time.Millisecond)
		}
	}

	return raw
}

// unwrapVariant strips nested variants; some portal backends double-wrap values.
func unwrapVariant(v dbus.Variant) any {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			return value
		}
		value = inner.Value()
	}
}

func asUint32(v any) uint32 {
	switch n := v.(type) {
	case uint32:
		return n
	case int32:
		if n >= 0 {
			return uint32(n)
		}
	}
	return 0
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// accentFromTuple decodes the (ddd) accent color. NaN or channels outside
// [0,1] mean the accent color is unset.
func accentFromTuple(v any) *port.RawColor {
	var channels []float64
	switch t := v.(type) {
	case []float64:
		channels = t
	case []any:
		for _, c := range t {
			f, ok := c.(float64)
			if !ok {
				return nil
			}
			channels = append(channels, f)
		}
	default:
		return nil
	}

	if len(channels) != 3 {
		return nil
	}
	for _, c := range channels {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return nil
		}
	}
	return &port.RawColor{R: channels[0], G: channels[1], B: channels[2], A: 1}
}
