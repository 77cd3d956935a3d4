package commands

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/leapstack-labs/ratbase/internal/request"
	"github.com/leapstack-labs/ratbase/pkg/numeral"
	"github.com/leapstack-labs/ratbase/pkg/rational"
	"github.com/spf13/cobra"
)

const replPrompt = "ratbase> "

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
	Close() error
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"shell"},
		Short:   "Convert numerals interactively",
		Long: `Start an interactive session. Each line is converted with the current
bases and alphabet, which can be changed with dot-commands.

Type .help inside the session for the list of commands.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cc := NewCommandContext(cmd)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cc.Cfg.HistoryFile,
		AutoComplete:    newDotCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ratbase interactive mode")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	return newREPLSession(cc).run(rl)
}

// replSession is one interactive session. Its settings start from the
// loaded configuration and are changed by dot-commands.
type replSession struct {
	cc *CommandContext
}

func newREPLSession(cc *CommandContext) *replSession {
	cfg := *cc.Cfg
	return &replSession{cc: &CommandContext{Cfg: &cfg, Logger: cc.Logger, Renderer: cc.Renderer}}
}

func (s *replSession) run(rl lineReader) error {
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isDotCommand(line) {
			if quit := s.handleDotCommand(line); quit {
				return nil
			}
			continue
		}

		req, res, err := s.cc.convert(line)
		if err != nil {
			s.cc.Renderer.Error(err.Error())
			continue
		}
		if err := s.cc.printConversion(req, res); err != nil {
			return err
		}
	}
}

var dotCommands = []string{".help", ".show", ".in", ".out", ".alphabet", ".value", ".quit", ".exit"}

// isDotCommand reports whether line starts with a known dot-command. Other
// lines starting with '.' are numerals such as ".5".
func isDotCommand(line string) bool {
	fields := strings.Fields(line)
	return len(fields) > 0 && slices.Contains(dotCommands, strings.ToLower(fields[0]))
}

// handleDotCommand runs a dot-command and reports whether the session ends.
func (s *replSession) handleDotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])
	arg := strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
	r := s.cc.Renderer
	cfg := s.cc.Cfg

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(r.Writer())

	case ".show":
		keyValue(r, "Input base", cfg.InputBase)
		keyValue(r, "Output base", cfg.OutputBase)
		keyValue(r, "Alphabet", cfg.Alphabet)

	case ".in", ".out":
		if arg == "" {
			r.Error("usage: " + command + " BASE")
			return false
		}
		if _, err := numeral.ParseBase(arg); err != nil {
			r.Error(err.Error())
			return false
		}
		if command == ".in" {
			cfg.InputBase = arg
		} else {
			cfg.OutputBase = arg
		}

	case ".alphabet":
		if arg == "" {
			r.Error("usage: .alphabet CHARACTERS")
			return false
		}
		if _, err := numeral.NewAlphabet(arg); err != nil {
			r.Error(err.Error())
			return false
		}
		cfg.Alphabet = arg

	case ".value":
		if err := s.encodeValue(arg); err != nil {
			r.Error(err.Error())
		}
	}
	return false
}

// encodeValue writes a decimal rational such as "3/4" in the output base.
func (s *replSession) encodeValue(arg string) error {
	if arg == "" {
		return errors.New("usage: .value RATIONAL")
	}
	v, err := rational.Parse(arg)
	if err != nil {
		return err
	}
	// An empty number validates the bases and alphabet without converting.
	req, err := s.cc.Build("")
	if err != nil {
		return err
	}
	res, err := numeral.EncodeValue(v, req.Out, req.Alphabet)
	if err != nil {
		return err
	}

	r := s.cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(&Conversion{
			Input:      arg,
			InputBase:  request.DefaultBase,
			OutputBase: req.Out.String(),
			Value:      v.String(),
			Result:     res.String(),
			Integral:   res.Integral,
		})
	}
	r.Println(res.String())
	return nil
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help             Show this help message
  .show             Show the current bases and alphabet
  .in BASE          Set the input base (e.g. 10, 3/2)
  .out BASE         Set the output base
  .alphabet CHARS   Set the digit alphabet
  .value RATIONAL   Write a decimal rational (e.g. 3/4) in the output base
  .quit / .exit     Exit the REPL

Any other line is converted from the input base to the output base.
`
	_, _ = fmt.Fprintln(w, help)
}

// newDotCompleter creates a readline completer for dot-commands.
func newDotCompleter() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(dotCommands))
	for _, c := range dotCommands {
		items = append(items, readline.PcItem(c))
	}
	return readline.NewPrefixCompleter(items...)
}
