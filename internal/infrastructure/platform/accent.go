package platform

import "github.com/bnema/sysprefs/internal/application/port"

// gnomeAccentColors maps org.gnome.desktop.interface accent-color names to the
// libadwaita palette.
var gnomeAccentColors = map[string]string{
	"blue":   "#3584e4",
	"teal":   "#2190a4",
	"green":  "#3a944a",
	"yellow": "#c88800",
	"orange": "#ed5b00",
	"red":    "#e62d42",
	"pink":   "#d56199",
	"purple": "#9141ac",
	"slate":  "#6f8396",
}

// accentFromName resolves a GNOME accent name or a #rrggbb value.
func accentFromName(name string) *port.RawColor {
	if hex, ok := gnomeAccentColors[name]; ok {
		name = hex
	}
	c, ok := rawColorFromHex(name)
	if !ok {
		return nil
	}
	return c
}
