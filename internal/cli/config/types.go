// Package config loads the layered CLI configuration: defaults, then
// glyphdec.yaml, then GLYPHDEC_* environment variables, then flags.
package config

// Config is the resolved configuration for one invocation.
type Config struct {
	// Corpus is an optional transcription CSV used when no corpus store
	// exists and no --input flag is given.
	Corpus string `koanf:"corpus"`
	// TablesDir overrides individual embedded table files.
	TablesDir string `koanf:"tables_dir"`
	// StatePath is the corpus store database path.
	StatePath string `koanf:"state_path"`
	// Mode is the default decode summary mode.
	Mode string `koanf:"mode"`
	// Detail caps per-line or per-class rows in text reports (0 = all).
	Detail int `koanf:"detail"`
	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`
	// Hazards holds hazard-validator settings.
	Hazards HazardsConfig `koanf:"hazards"`
}

// HazardsConfig controls the hazard validator.
type HazardsConfig struct {
	// CrossLine carries the previous-class register across line
	// boundaries within a paragraph. The corpus documentation is
	// ambiguous on whether the grammar is line-bounded, so this is a
	// switch, not an assumption.
	CrossLine bool `koanf:"cross_line"`
}
