package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the option flags bound on a FlagSet.
type Flags struct {
	fs *pflag.FlagSet

	ignoreCapsLock       bool
	helpTimeout          time.Duration
	trackFallthroughKeys bool
	logLevel             string
	logFile              string
	rcFile               string
	globalOverlayKeymap  bool
}

// BindFlags defines one flag per option on fs. Flag names use dashes,
// e.g. --help-timeout.
func BindFlags(fs *pflag.FlagSet) *Flags {
	d := Defaults()
	f := &Flags{fs: fs}
	fs.BoolVar(&f.ignoreCapsLock, "ignore-capslock", d.IgnoreCapsLock, "base the case of bound characters on shift only")
	fs.DurationVar(&f.helpTimeout, "help-timeout", d.HelpTimeout, "delay before showing a partial key sequence")
	fs.BoolVar(&f.trackFallthroughKeys, "track-fallthrough-keys", d.TrackFallthroughKeys, "track keydown/keyup fallthrough")
	fs.StringVar(&f.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&f.logFile, "log-file", d.LogFile, "log file; empty disables logging")
	fs.StringVarP(&f.rcFile, "rc-file", "r", d.RCFile, "Lua rc file loaded at startup")
	fs.BoolVar(&f.globalOverlayKeymap, "global-overlay-keymap", d.GlobalOverlayKeymap, "enable the global overlay keymap")
	return f
}

// Apply copies the flags set on the command line onto opts.
func (f *Flags) Apply(opts *Options) {
	if f.fs.Changed("ignore-capslock") {
		opts.IgnoreCapsLock = f.ignoreCapsLock
	}
	if f.fs.Changed("help-timeout") {
		opts.HelpTimeout = f.helpTimeout
	}
	if f.fs.Changed("track-fallthrough-keys") {
		opts.TrackFallthroughKeys = f.trackFallthroughKeys
	}
	if f.fs.Changed("log-level") {
		opts.LogLevel = f.logLevel
	}
	if f.fs.Changed("log-file") {
		opts.LogFile = f.logFile
	}
	if f.fs.Changed("rc-file") {
		opts.RCFile = f.rcFile
	}
	if f.fs.Changed("global-overlay-keymap") {
		opts.GlobalOverlayKeymap = f.globalOverlayKeymap
	}
}
