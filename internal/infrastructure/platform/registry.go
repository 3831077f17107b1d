package platform

import (
	"strconv"
	"strings"
	"time"

	"github.com/bnema/sysprefs/internal/application/port"
)

const (
	sourceNameRegistry = "registry"
	priorityRegistry   = 100

	personalizeKey    = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	dwmKey            = `Software\Microsoft\Windows\DWM`
	highContrastKey   = `Control Panel\Accessibility\HighContrast`
	mouseKey          = `Control Panel\Mouse`
	hcfHighContrastOn = 0x1
)

// Compile-time interface check.
var _ port.PreferenceSource = (*RegistrySource)(nil)

// RegistrySource polls the current user's registry hive on Windows.
// On every other OS it reports itself unavailable.
type RegistrySource struct {
	interval time.Duration
}

// NewRegistrySource creates a registry source polling every interval.
func NewRegistrySource(interval time.Duration) *RegistrySource {
	return &RegistrySource{interval: interval}
}

// Name implements port.PreferenceSource.
func (*RegistrySource) Name() string {
	return sourceNameRegistry
}

// Priority implements port.PreferenceSource.
func (*RegistrySource) Priority() int {
	return priorityRegistry
}

// colorSchemeFromLightTheme maps AppsUseLightTheme.
func colorSchemeFromLightTheme(v uint64) port.RawColorScheme {
	if v == 0 {
		return port.RawColorSchemeDark
	}
	return port.RawColorSchemeLight
}

// parseABGR decodes a DWM AccentColor DWORD, laid out as 0xAABBGGRR.
func parseABGR(v uint32) *port.RawColor {
	return &port.RawColor{
		R: float64(v&0xff) / 255,
		G: float64(v>>8&0xff) / 255,
		B: float64(v>>16&0xff) / 255,
		A: float64(v>>24&0xff) / 255,
	}
}

// parseHighContrastFlags reads the HCF_HIGHCONTRASTON bit of the REG_SZ flags.
func parseHighContrastFlags(flags string) port.RawContrast {
	n, err := strconv.ParseUint(strings.TrimSpace(flags), 10, 32)
	if err != nil || n&hcfHighContrastOn == 0 {
		return port.RawContrastNoPreference
	}
	return port.RawContrastMore
}

// parseMillis parses MouseDoubleClickTime, stored as a decimal REG_SZ.
func parseMillis(v string) *time.Duration {
	ms, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || ms <= 0 {
		return nil
	}
	return durationPtr(time.Duration(ms) * time.Millisecond)
}

// reducedTransparencyFrom maps EnableTransparency.
func reducedTransparencyFrom(enable uint64) port.RawReducedTransparency {
	if enable == 0 {
		return port.RawReducedTransparencyReduce
	}
	return port.RawReducedTransparencyNoPreference
}
