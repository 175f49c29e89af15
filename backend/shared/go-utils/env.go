package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the process environment win.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file found, using process environment")
	}
}

// GetEnv returns the trimmed value of key or def when unset/blank.
func GetEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// GetEnvBool parses key as a bool; invalid values fall back to def.
func GetEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		Logger.Warnf("Invalid bool for %s=%q, using %t", key, raw, def)
		return def
	}
	return b
}

// GetEnvInt parses key as an int; invalid values fall back to def.
func GetEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		Logger.Warnf("Invalid int for %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

// GetEnvFloat parses key as a float64; invalid values fall back to def.
func GetEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		Logger.Warnf("Invalid float for %s=%q, using %g", key, raw, def)
		return def
	}
	return f
}
