//go:build sysprefs_no_accent_color

package entity

const featureAccentColor = InterestNone
