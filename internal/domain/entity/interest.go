package entity

import "strings"

// Interest selects which preference categories a subscriber wants.
type Interest uint8

const (
	InterestColorScheme Interest = 1 << iota
	InterestContrast
	InterestReducedMotion
	InterestReducedTransparency
	InterestAccentColor
	InterestDoubleClickInterval
)

const (
	InterestNone Interest = 0
	InterestAll           = InterestColorScheme | InterestContrast | InterestReducedMotion |
		InterestReducedTransparency | InterestAccentColor | InterestDoubleClickInterval
)

// CompiledInterest is the set of categories built into this binary.
// Each category can be compiled out with the sysprefs_no_<category> build tag,
// e.g. -tags sysprefs_no_accent_color.
const CompiledInterest = featureColorScheme | featureContrast | featureReducedMotion |
	featureReducedTransparency | featureAccentColor | featureDoubleClickInterval

var interestNames = []struct {
	flag Interest
	name string
}{
	{InterestColorScheme, "color-scheme"},
	{InterestContrast, "contrast"},
	{InterestReducedMotion, "reduced-motion"},
	{InterestReducedTransparency, "reduced-transparency"},
	{InterestAccentColor, "accent-color"},
	{InterestDoubleClickInterval, "double-click-interval"},
}

// Has reports whether every flag of other is set.
func (i Interest) Has(other Interest) bool {
	return i&other == other
}

// Categories returns the names of the set flags in declaration order.
func (i Interest) Categories() []string {
	names := make([]string, 0, len(interestNames))
	for _, n := range interestNames {
		if i.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

func (i Interest) String() string {
	if i == InterestNone {
		return "none"
	}
	return strings.Join(i.Categories(), "|")
}

// ParseInterest parses a comma or pipe separated list of category names.
// "all" selects every category. Unknown names are ignored and reported back.
func ParseInterest(s string) (interest Interest, unknown []string) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	for _, f := range fields {
		f = normalize(f)
		if f == "all" {
			interest |= InterestAll
			continue
		}
		found := false
		for _, n := range interestNames {
			if n.name == f {
				interest |= n.flag
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, f)
		}
	}
	return interest, unknown
}
