package utils

import (
	"log"
	"os"
	"strconv"
	"time"
)

// lookupEnv returns fallback when key is unset, empty or unparseable. Parse
// failures are logged once at startup since the logger is not built yet.
func lookupEnv[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	value, err := parse(raw)
	if err != nil {
		log.Printf("config: ignoring %s=%q (%v), using %v", key, raw, err, fallback)
		return fallback
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(s string) (string, error) { return s, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}

func GetEnvFloat(key string, defaultValue float64) float64 {
	return lookupEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvDuration accepts Go duration strings ("750ms", "2m") or a bare
// integer number of seconds.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookupEnv(key, defaultValue, func(s string) (time.Duration, error) {
		if seconds, err := strconv.Atoi(s); err == nil {
			return time.Duration(seconds) * time.Second, nil
		}
		return time.ParseDuration(s)
	})
}
