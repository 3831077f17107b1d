//go:build !sysprefs_no_contrast

package entity

const featureContrast = InterestContrast
