package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/keyseq/internal/input"
)

// Option keys as they appear in config files and, upper-cased with the
// KEYSEQ_ prefix, in the environment.
const (
	KeyIgnoreCapsLock       = "ignore_capslock"
	KeyHelpTimeout          = "help_timeout"
	KeyTrackFallthroughKeys = "track_fallthrough_keys"
	KeyLogLevel             = "log_level"
	KeyLogFile              = "log_file"
	KeyRCFile               = "rc_file"
	KeyGlobalOverlayKeymap  = "global_overlay_keymap"
)

// Options is the application configuration.
type Options struct {
	// IgnoreCapsLock bases the case of bound characters on shift only.
	IgnoreCapsLock bool

	// HelpTimeout delays display of a partial key sequence. Zero shows
	// it at once.
	HelpTimeout time.Duration

	// TrackFallthroughKeys enables keydown/keyup fallthrough tracking.
	TrackFallthroughKeys bool

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile receives the log. Empty disables logging.
	LogFile string

	// RCFile is the Lua file loaded at startup and by reinit.
	RCFile string

	// GlobalOverlayKeymap enables the global overlay mode at startup.
	GlobalOverlayKeymap bool
}

// Defaults returns the default options.
func Defaults() Options {
	return Options{
		LogLevel: "info",
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks option values.
func (o Options) Validate() error {
	if o.HelpTimeout < 0 {
		return &KeyError{Key: KeyHelpTimeout, Err: fmt.Errorf("%w: negative duration %s", ErrInvalidValue, o.HelpTimeout)}
	}
	if !logLevels[o.LogLevel] {
		return &KeyError{Key: KeyLogLevel, Err: fmt.Errorf("%w: %q", ErrInvalidValue, o.LogLevel)}
	}
	return nil
}

// InputOptions returns the engine settings.
func (o Options) InputOptions() input.Options {
	return input.Options{
		IgnoreCapsLock:       o.IgnoreCapsLock,
		HelpTimeout:          o.HelpTimeout,
		TrackFallthroughKeys: o.TrackFallthroughKeys,
	}
}

// Apply sets the options named by the keys of m.
func (o *Options) Apply(m map[string]any) error {
	for k, v := range m {
		if err := o.set(k, v); err != nil {
			return &KeyError{Key: k, Err: err}
		}
	}
	return nil
}

func (o *Options) set(k string, v any) error {
	var err error
	switch k {
	case KeyIgnoreCapsLock:
		o.IgnoreCapsLock, err = toBool(v)
	case KeyHelpTimeout:
		o.HelpTimeout, err = toDuration(v)
	case KeyTrackFallthroughKeys:
		o.TrackFallthroughKeys, err = toBool(v)
	case KeyLogLevel:
		var s string
		s, err = toString(v)
		o.LogLevel = strings.ToLower(s)
	case KeyLogFile:
		o.LogFile, err = toString(v)
	case KeyRCFile:
		o.RCFile, err = toString(v)
	case KeyGlobalOverlayKeymap:
		o.GlobalOverlayKeymap, err = toBool(v)
	default:
		return ErrUnknownKey
	}
	return err
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case int:
		return x != 0, nil
	case string:
		b, err := strconv.ParseBool(x)
		if err != nil {
			return false, fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, x)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%w: %T is not a boolean", ErrInvalidValue, v)
	}
}

// toDuration accepts Go duration strings or a number of milliseconds.
func toDuration(v any) (time.Duration, error) {
	switch x := v.(type) {
	case int64:
		return time.Duration(x) * time.Millisecond, nil
	case int:
		return time.Duration(x) * time.Millisecond, nil
	case uint64:
		return time.Duration(x) * time.Millisecond, nil
	case float64:
		return time.Duration(x * float64(time.Millisecond)), nil
	case string:
		if ms, err := strconv.ParseInt(x, 10, 64); err == nil {
			return time.Duration(ms) * time.Millisecond, nil
		}
		d, err := time.ParseDuration(x)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a duration", ErrInvalidValue, x)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("%w: %T is not a duration", ErrInvalidValue, v)
	}
}

func toString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T is not a string", ErrInvalidValue, v)
	}
	return s, nil
}
