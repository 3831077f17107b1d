//go:build !sysprefs_no_reduced_motion

package entity

const featureReducedMotion = InterestReducedMotion
