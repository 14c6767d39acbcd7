//go:build !js

package runtimefacts

import "os"

// Getenv backs the GETENV built-in (spec.md §6): returns an OS variable or
// empty string.
func Getenv(name string) string {
	return os.Getenv(name)
}
