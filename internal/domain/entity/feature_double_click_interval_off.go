//go:build sysprefs_no_double_click_interval

package entity

const featureDoubleClickInterval = InterestNone
