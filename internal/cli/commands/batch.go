package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/leapstack-labs/ratbase/internal/cli/output"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	FailFast bool
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch [FILE|-]",
		Short: "Convert one numeral per line",
		Long: `Convert every line of FILE, or of standard input when FILE is "-" or
missing, using the current bases and alphabet.

Blank lines and lines starting with '#' are skipped. Results are printed
in input order. Failed lines are reported on standard error with their
line number and the command exits with the code of the first failure.`,
		Example: `  ratbase batch numbers.txt -i=16 -o=2
  seq 1 100 | ratbase batch -o=3/2 --jobs 4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, opts)
		},
	}

	cmd.Flags().IntP("jobs", "j", 0, "Number of lines converted concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "Stop at the first line that fails")

	return cmd
}

type batchLine struct {
	no   int
	text string
}

// batchRecord is one converted line. Skipped is set for lines left
// unconverted after a fail-fast stop.
type batchRecord struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
	*Conversion
	Error string `json:"error,omitempty"`

	err     error
	Skipped bool `json:"-"`
}

func runBatch(cmd *cobra.Command, args []string, opts *BatchOptions) error {
	cc := NewCommandContext(cmd)
	runID := uuid.NewString()
	logger := cc.Logger.With("run_id", runID)

	in, closeIn, err := openBatchInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeIn()

	lines, err := readBatchLines(in)
	if err != nil {
		return err
	}

	jobs := cc.Cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	logger.Info("batch started", "lines", len(lines), "jobs", jobs, "fail_fast", opts.FailFast)

	records := make([]batchRecord, len(lines))
	g, ctx := errgroup.WithContext(batchContext(cmd))
	g.SetLimit(jobs)
	for i, line := range lines {
		i, line := i, line
		records[i] = batchRecord{Line: line.no, Input: line.text}
		g.Go(func() error {
			rec := &records[i]
			if opts.FailFast && ctx.Err() != nil {
				rec.Skipped = true
				return nil
			}
			req, res, err := cc.convert(line.text)
			if err != nil {
				rec.err = err
				rec.Error = err.Error()
				logger.Debug("line failed", "line", line.no, "error", err)
				if opts.FailFast {
					return err
				}
				return nil
			}
			rec.Conversion = NewConversion(req, res)
			return nil
		})
	}
	_ = g.Wait()

	return reportBatch(cc, logger, records)
}

func reportBatch(cc *CommandContext, logger *slog.Logger, records []batchRecord) error {
	r := cc.Renderer
	var (
		first    *batchRecord
		failed   int
		rendered = make([]batchRecord, 0, len(records))
	)
	for i := range records {
		rec := &records[i]
		if rec.Skipped {
			continue
		}
		rendered = append(rendered, *rec)
		if rec.err != nil {
			failed++
			if first == nil {
				first = rec
			}
			r.Error(fmt.Sprintf("line %d: %v", rec.Line, rec.err))
			continue
		}
		if r.EffectiveMode() != output.ModeJSON {
			r.Println(rec.Result)
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(rendered); err != nil {
			return err
		}
	}

	logger.Info("batch finished", "converted", len(rendered)-failed, "failed", failed, "skipped", len(records)-len(rendered))
	if first != nil {
		return fmt.Errorf("%d of %d lines failed, first on line %d: %w", failed, len(records), first.Line, first.err)
	}
	return nil
}

func openBatchInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func readBatchLines(r io.Reader) ([]batchLine, error) {
	var lines []batchLine
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	no := 0
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		lines = append(lines, batchLine{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return lines, nil
}

// batchContext is cmd's context, or Background when it has none.
func batchContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
