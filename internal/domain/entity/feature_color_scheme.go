//go:build !sysprefs_no_color_scheme

package entity

const featureColorScheme = InterestColorScheme
