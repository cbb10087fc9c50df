// Package config resolves defaults from the environment.
//
// Every key may also be supplied through a file named by KEY_FILE, which
// suits secrets-style mounts in containers. A .env file in the working
// directory is loaded by main before any lookup.
package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment keys.
const (
	EnvProfile = "MONODITHER_PROFILE"
	EnvMethod  = "MONODITHER_METHOD"
	EnvWorkers = "MONODITHER_WORKERS"
	EnvVerbose = "MONODITHER_VERBOSE"
	EnvOutDir  = "MONODITHER_OUT"
)

// Get returns the value of the environment variable key if set.
// If not set, and key + "_FILE" is set, the file at that path is read and
// its trimmed contents are returned. If neither is set, def is returned.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return def
}

// GetInt parses Get(key, ""). Unset or malformed values yield def.
func GetInt(key string, def int) int {
	if val := Get(key, ""); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

// GetBool parses Get(key, "").
// Recognised true values are: 1, t, true, y, yes (case-insensitive).
// Recognised false values are: 0, f, false, n, no.
func GetBool(key string, def bool) bool {
	switch strings.ToLower(Get(key, "")) {
	case "1", "t", "true", "y", "yes":
		return true
	case "0", "f", "false", "n", "no":
		return false
	}
	return def
}
