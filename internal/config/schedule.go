package config

import (
	"os"
	"strconv"
	"time"
)

const (
	scheduleTimezoneEnv   = "SCHEDULE_TIMEZONE"
	historyRetentionEnv   = "HISTORY_RETENTION_LIMIT"
	requestCodeBaseEnv    = "ALARM_REQUEST_CODE_BASE"
	scheduleRandomSeedEnv = "SCHEDULE_RANDOM_SEED"

	defaultHistoryRetention = 100
	defaultRequestCodeBase  = 1000

	// RequestCodeRange is the width of the reserved request-code
	// namespace [base, base+range). Cancel only ever touches codes
	// inside it.
	RequestCodeRange = 300
)

type ScheduleSettings struct {
	Timezone              string
	HistoryRetentionLimit int
	RequestCodeBase       int

	// RandomSeed, when non-zero, makes slot-minute and content
	// selection replayable. Zero seeds from the system source.
	RandomSeed uint64
}

func LoadScheduleSettings() (*ScheduleSettings, error) {
	tz := os.Getenv(scheduleTimezoneEnv)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}

	retention := defaultHistoryRetention
	if v := os.Getenv(historyRetentionEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			retention = parsed
		}
	}

	codeBase := defaultRequestCodeBase
	if v := os.Getenv(requestCodeBaseEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			codeBase = parsed
		}
	}

	var seed uint64
	if v := os.Getenv(scheduleRandomSeedEnv); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, ErrInvalidRandomSeed
		}
		seed = parsed
	}

	return &ScheduleSettings{
		Timezone:              tz,
		HistoryRetentionLimit: retention,
		RequestCodeBase:       codeBase,
		RandomSeed:            seed,
	}, nil
}

// Location resolves the configured timezone. LoadScheduleSettings has
// already validated it.
func (s *ScheduleSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
