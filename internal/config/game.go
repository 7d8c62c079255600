package config

import (
	"fmt"
	"os"
	"time"
)

func lookupDuration(key string, fallback time.Duration) (time.Duration, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s env variable: must be positive", key)
	}
	return d, nil
}

// TickInterval is how often running games advance their timer.
func TickInterval() (time.Duration, error) {
	return lookupDuration("TICK_INTERVAL", time.Second)
}

// SessionTTL is how long a game may sit without player actions.
func SessionTTL() (time.Duration, error) {
	return lookupDuration("SESSION_TTL", time.Hour)
}

// Seed reads MINES_SEED as "seed1:seed2" for a reproducible PCG source.
func Seed() (seed [2]uint64, ok bool, err error) {
	s, ok := os.LookupEnv("MINES_SEED")
	if !ok || s == "" {
		return seed, false, nil
	}
	n, err := fmt.Sscanf(s, "%d:%d", &seed[0], &seed[1])
	if n != 2 || err != nil {
		return seed, false, fmt.Errorf(`invalid MINES_SEED env variable "%s": want seed1:seed2`, s)
	}
	return seed, true, nil
}
