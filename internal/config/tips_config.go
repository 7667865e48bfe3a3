package config

import "strings"

type TipsConfig interface {
	GetUnknownCategoryPolicy() string
	GetMaxDaysAhead() int
}

type Tips struct{}

var _ TipsConfig = Tips{}

// GetUnknownCategoryPolicy is one of "drop", "quarantine" or "reject".
func (Tips) GetUnknownCategoryPolicy() string {
	return strings.ToLower(GetEnv("UNKNOWN_CATEGORY_POLICY", "quarantine"))
}

func (Tips) GetMaxDaysAhead() int {
	days := GetEnvAsInt("MAX_DAYS_AHEAD", 6)
	if days < 0 {
		return 0
	}
	return days
}
