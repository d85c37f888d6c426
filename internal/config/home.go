package config

import (
	"errors"
	"strings"

	"github.com/meltanolabs/evidence-ext/internal/branding"
)

// ErrHomeNotSet is returned when none of the HomeSources holds a value.
var ErrHomeNotSet = errors.New(branding.HomeEnv() + " not found in environment, unable to function without it")

// HomeSources lists the environment variables consulted for the project
// directory, in priority order.
var HomeSources = []string{
	branding.HomeEnv(),
	branding.EnvVar(branding.HomeEnv()),
}

// Home is the resolved Evidence project directory.
type Home struct {
	Path   string
	Source string // environment variable the path was read from
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveHome walks HomeSources and returns the first non-empty value.
// An empty variable counts as unset.
func ResolveHome(lookup LookupFunc) (Home, error) {
	for _, key := range HomeSources {
		value, ok := lookup(key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		return Home{Path: value, Source: key}, nil
	}
	return Home{}, ErrHomeNotSet
}

// sensitivePatterns are substrings that indicate a value should be redacted.
var sensitivePatterns = []string{"TOKEN", "SECRET", "PASSWORD", "KEY", "CREDENTIAL"}

// RedactValue returns a redacted version of value if the key name contains
// a sensitive pattern (case-insensitive substring match).
// Values with 4+ chars show the first 4 chars + "***".
// Values with fewer than 4 chars are fully redacted as "***".
func RedactValue(key, value string) string {
	upper := strings.ToUpper(key)
	for _, pattern := range sensitivePatterns {
		if strings.Contains(upper, pattern) {
			if len(value) >= 4 {
				return value[:4] + "***"
			}
			return "***"
		}
	}
	return value
}

// EnvDump turns an os.Environ()-style slice into a map suitable for a
// diagnostic log line, with sensitive values redacted.
func EnvDump(environ []string) map[string]string {
	dump := make(map[string]string, len(environ))
	for _, kv := range environ {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		dump[key] = RedactValue(key, value)
	}
	return dump
}
