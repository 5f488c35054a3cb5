// Package config provides process configuration: environment lookups for
// wiring (addresses, paths) and the YAML tuning file for gameplay
// parameters.
package config

import "os"

// GetEnv returns the value of the environment variable named by key, or
// fallback if the variable is unset.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
