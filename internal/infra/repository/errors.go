package repository

import "errors"

var (
	ErrInvalidHistoryData = errors.New("invalid history data")
	ErrInvalidConfigData  = errors.New("invalid config data")
	ErrInvalidPlanData    = errors.New("invalid schedule plan data")
)
