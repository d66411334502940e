package domain

import "errors"

var (
	ErrInvalidOverrideTime  = errors.New("invalid override time")
	ErrConfigNotCached      = errors.New("config not cached")
	ErrPlanNotFound         = errors.New("schedule plan not found")
	ErrHistoryEntryNotFound = errors.New("history entry not found")
)
