// Package config holds shared configuration defaults.
package config

// Defaults shared by the CLI loader and the fallback paths.
const (
	// DefaultStateFile is the corpus store location.
	DefaultStateFile = ".glyphdec/corpus.db"
	// DefaultMode is the decode summary mode.
	DefaultMode = "structural"
)
