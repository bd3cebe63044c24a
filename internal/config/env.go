package config

import (
	"fmt"
	"os"
	"strconv"
)

// GetEnv returns the value of key, or defaultValue when it is unset or empty.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvRequired returns the value of key or an error when it is unset or empty.
func GetEnvRequired(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("environment variable %s is required", key)
	}
	return v, nil
}

// GetEnvInt parses key as an integer, falling back to defaultValue.
func GetEnvInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}
