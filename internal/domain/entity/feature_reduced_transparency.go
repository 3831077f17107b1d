//go:build !sysprefs_no_reduced_transparency

package entity

const featureReducedTransparency = InterestReducedTransparency
