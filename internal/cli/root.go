// Package cli provides the command-line interface for ratbase.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/ratbase/internal/cli/commands"
	"github.com/leapstack-labs/ratbase/internal/cli/config"
	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/leapstack-labs/ratbase/internal/request"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// onceValue is a string flag that may be given at most once. A repeated
// flag is remembered so the flag error handler can report its own kind.
type onceValue struct {
	name  string
	kind  request.Kind
	value string
	set   bool
	dup   *request.Error
}

func newOnceValue(name string, kind request.Kind, def string) *onceValue {
	return &onceValue{name: name, kind: kind, value: def}
}

func (v *onceValue) String() string { return v.value }

func (v *onceValue) Type() string { return "string" }

func (v *onceValue) Set(s string) error {
	if v.set {
		if v.dup == nil {
			v.dup = request.Errorf(v.kind, "--%s can only be given once", v.name)
		}
		return v.dup
	}
	v.value = s
	v.set = true
	return nil
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ratbase [flags] [--] NUMBER",
		Short: "ratbase - exact numeral conversion between rational bases",
		Long: `ratbase converts a numeral written in one rational base into another,
exactly. Bases are fractions such as 10, 16 or 3/2; numerals are integers,
fractions (1/3) or radix-point numbers (0.75) written with the digits of
the alphabet.

Numbers that start with '-' or collide with a command name must follow "--".`,
		Example: `  ratbase -o=2 12
  ratbase -i=3/2 2100
  ratbase -i=16 -o=10 A.8
  ratbase -o=1 -- 5`,
		Version:       Version,
		Args:          commands.NumberArgs,
		RunE:          commands.RunConvert,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return &request.Error{Kind: request.KindConfig, Err: err}
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Exact numeral conversion between rational bases
`)

	input := newOnceValue("input", request.KindDuplicateInputBase, config.DefaultBase)
	outputBase := newOnceValue("output", request.KindDuplicateOutputBase, config.DefaultBase)
	alphabet := newOnceValue("alphabet", request.KindDuplicateAlphabet, config.DefaultAlphabet)

	// Global persistent flags
	flags := rootCmd.PersistentFlags()
	flags.VarP(input, "input", "i", "Input base, an integer or fraction such as 3/2")
	flags.VarP(outputBase, "output", "o", "Output base")
	flags.VarP(alphabet, "alphabet", "a", "Digit characters, lowest value first")
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./ratbase.yaml)")
	flags.StringP("format", "f", config.DefaultFormat, "Output format (auto|text|markdown|json)")
	flags.BoolP("verbose", "v", false, "Log each conversion stage to stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.Modes(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		for _, v := range []*onceValue{input, outputBase, alphabet} {
			if v.dup != nil {
				return v.dup
			}
		}
		var reqErr *request.Error
		if errors.As(err, &reqErr) {
			return err
		}
		return &request.Error{Kind: request.KindUnknownOption, Err: err}
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewExplainCommand())
	rootCmd.AddCommand(commands.NewBatchCommand())
	rootCmd.AddCommand(commands.NewREPLCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for ratbase.

To load completions:

Bash:
  $ source <(ratbase completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ratbase completion bash > /etc/bash_completion.d/ratbase
  # macOS:
  $ ratbase completion bash > $(brew --prefix)/etc/bash_completion.d/ratbase

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ ratbase completion zsh > "${fpath[1]}/_ratbase"

Fish:
  $ ratbase completion fish | source

  # To load completions for each session, execute once:
  $ ratbase completion fish > ~/.config/fish/completions/ratbase.fish

PowerShell:
  PS> ratbase completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(w)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
	return cmd
}
