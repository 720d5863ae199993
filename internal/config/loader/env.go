package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
// KEYSEQ_HELP_TIMEOUT=2s becomes help_timeout: "2s".
type EnvLoader struct {
	prefix  string
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix. The
// prefix should include the trailing underscore, e.g. "KEYSEQ_".
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: os.Environ}
}

// NewEnvLoaderFrom creates a loader reading from a fixed environment.
func NewEnvLoaderFrom(prefix string, environ []string) *EnvLoader {
	return &EnvLoader{prefix: prefix, environ: func() []string { return environ }}
}

// Load reads prefixed variables. Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, l.prefix))
		if key == "" {
			continue
		}
		config[key] = parseValue(value)
	}
	return config, nil
}

// parseValue converts booleans and integers; everything else stays a
// string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}
