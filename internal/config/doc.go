// Package config provides the application options.
//
// Options are layered: Defaults, then a TOML or YAML file, then KEYSEQ_*
// environment variables, then command-line flags. The current Options
// live in a Store that notifies observers on change, and a Watcher
// reloads the file into the Store when it is edited, so engine settings
// such as help_timeout take effect without a restart.
//
// Example file (keyseq.toml):
//
//	ignore_capslock = false
//	help_timeout = "1s"
//	log_level = "info"
//	log_file = "/tmp/keyseq.log"
//	rc_file = "~/.keyseqrc.lua"
package config
