package commands

import (
	"fmt"

	"github.com/leapstack-labs/ratbase/internal/cli/config"
	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
RATBASE_* environment variables and flags.

The output is YAML that can be saved as ratbase.yaml, or JSON with
--format json.`,
		Args: cobra.NoArgs,
		RunE: runConfig,
	}
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(cc.Cfg)
	}

	data, err := yaml.Marshal(cc.Cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if path := config.GetConfigFileUsed(); path != "" {
		r.Printf("# config file: %s\n", path)
	}
	r.Printf("%s", data)
	return nil
}
