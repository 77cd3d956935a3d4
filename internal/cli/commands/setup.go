package commands

import (
	"log/slog"

	"github.com/leapstack-labs/ratbase/internal/cli/config"
	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/leapstack-labs/ratbase/internal/request"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration
// and the logger stored in the command context.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode, err := output.ParseMode(cfg.Format)
	if err != nil {
		mode = output.ModeAuto
	}
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Args returns the raw conversion arguments for number under the current
// configuration.
func (cc *CommandContext) Args(number string) request.Args {
	return request.Args{
		Number:     number,
		InputBase:  cc.Cfg.InputBase,
		OutputBase: cc.Cfg.OutputBase,
		Alphabet:   cc.Cfg.Alphabet,
	}
}

// Build validates number under the current configuration.
func (cc *CommandContext) Build(number string) (request.Request, error) {
	return request.Build(cc.Args(number))
}

// getConfig returns the current configuration, or the defaults when no
// configuration was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}
