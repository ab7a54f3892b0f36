package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/glyphdec/internal/cli/config"
	intconfig "github.com/leapstack-labs/glyphdec/internal/config"
	"github.com/leapstack-labs/glyphdec/internal/decode"
	"github.com/leapstack-labs/glyphdec/pkg/tables"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Tables *tables.Set
	Engine *decode.Engine
}

// NewCommandContext loads the rule tables and builds the decode engine.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())

	ts, err := tables.Load(cfg.TablesDir)
	if err != nil {
		return nil, err
	}
	eng, err := decode.NewEngine(ts, decode.Options{
		CrossLineHazards: cfg.Hazards.CrossLine,
		Logger:           logger,
	})
	if err != nil {
		return nil, err
	}

	return &CommandContext{Cfg: cfg, Logger: logger, Tables: ts, Engine: eng}, nil
}

// NewCommandContextWithoutEngine is for commands that only need config
// and logging.
func NewCommandContextWithoutEngine(cmd *cobra.Command) *CommandContext {
	return &CommandContext{
		Cfg:    getConfig(),
		Logger: config.GetLogger(cmd.Context()),
	}
}

// getConfig returns the loaded configuration, with defaults as a
// fallback for commands run outside the root's PersistentPreRunE
// (mostly tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		StatePath: intconfig.DefaultStateFile,
		Mode:      intconfig.DefaultMode,
	}
}
