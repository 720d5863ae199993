package config

import (
	"github.com/dshills/keyseq/internal/config/loader"
)

// EnvPrefix prefixes option environment variables.
const EnvPrefix = "KEYSEQ_"

// Source describes where options are read from.
type Source struct {
	// Path is the config file. Empty skips the file.
	Path string

	// FS reads the file. Defaults to the OS file system.
	FS loader.FileSystem

	// Env loads environment overrides. Defaults to the process
	// environment with EnvPrefix.
	Env loader.Loader
}

// Load reads options from the defaults, then the config file, then the
// environment. A missing file is not an error.
func Load(src Source) (Options, error) {
	var fileMap map[string]any
	if src.Path != "" {
		l, err := loader.ForPath(src.FS, src.Path)
		if err != nil {
			return Options{}, err
		}
		if fileMap, err = l.Load(); err != nil {
			return Options{}, err
		}
	}

	env := src.Env
	if env == nil {
		env = loader.NewEnvLoader(EnvPrefix)
	}
	envMap, err := env.Load()
	if err != nil {
		return Options{}, err
	}

	opts := Defaults()
	if err := opts.Apply(loader.Merge(fileMap, envMap)); err != nil {
		return Options{}, err
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
