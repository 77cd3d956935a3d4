package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/ratbase/internal/cli/config"
	"github.com/leapstack-labs/ratbase/internal/cli/testutil"
	"github.com/leapstack-labs/ratbase/internal/request"
	logtest "github.com/leapstack-labs/ratbase/internal/testutil"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and stdin, returning stdout, stderr and the error.
func execute(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func newConvertCommand() *cobra.Command {
	return &cobra.Command{Use: "ratbase", Args: NumberArgs, RunE: RunConvert}
}

func TestNumberArgs(t *testing.T) {
	require.NoError(t, NumberArgs(nil, []string{"12"}))

	err := NumberArgs(nil, nil)
	assert.Equal(t, 99, request.ExitCode(err))

	err = NumberArgs(nil, []string{"1", "2"})
	assert.Equal(t, 1, request.ExitCode(err))
	assert.Contains(t, err.Error(), "2")
}

func TestRunConvert(t *testing.T) {
	tests := []struct {
		name   string
		config string
		number string
		want   string
	}{
		{"decimal to binary", "output_base: 2\n", "12", "1100"},
		{"radix point", "output_base: 2\n", "0.5", "1/10"},
		{"hex input", "input_base: 16\n", "A.8", "21/2"},
		{"rational base", "input_base: 3/2\n", "21", "4"},
		{"zero", "", "0", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.UseConfig(t, tt.config)
			out, _, err := execute(t, newConvertCommand(), "", tt.number)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestRunConvert_JSON(t *testing.T) {
	testutil.UseConfig(t, "output_base: 2\nformat: json\n")
	out, _, err := execute(t, newConvertCommand(), "", "1.5")
	require.NoError(t, err)

	var got Conversion
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, Conversion{
		Input:      "1.5",
		InputBase:  "10",
		OutputBase: "2",
		Value:      "3/2",
		Result:     "11/10",
		Integral:   false,
	}, got)
}

func TestRunConvert_Errors(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		args     []string
		exitCode int
	}{
		{"missing number", "", nil, 99},
		{"extra number", "", []string{"1", "2"}, 1},
		{"invalid digit", "input_base: 2\n", []string{"102"}, 8},
		{"zero denominator", "", []string{"1/0"}, 14},
		{"multiple separators", "", []string{"1.2/3"}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.UseConfig(t, tt.config)
			out, _, err := execute(t, newConvertCommand(), "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, request.ExitCode(err))
			assert.Empty(t, out)
		})
	}
}

func TestExplain_Markdown(t *testing.T) {
	testutil.UseConfig(t, "input_base: 3/2\nformat: markdown\n")
	out, _, err := execute(t, NewExplainCommand(), "", "21")
	require.NoError(t, err)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Conversion of 21")
	assert.Contains(t, out, "- **Input base**: 3/2")
	assert.Contains(t, out, "- **Result**: 4")
	assert.Contains(t, out, "## Decoding")
	assert.Contains(t, out, "## Encoding")
	assert.Contains(t, strings.ToLower(out), "accumulator")
}

func TestExplain_Zero(t *testing.T) {
	testutil.UseConfig(t, "format: markdown\n")
	out, _, err := execute(t, NewExplainCommand(), "", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "- **Result**: (empty)")
	assert.Contains(t, out, "the result is the empty numeral")
}

func TestExplain_JSON(t *testing.T) {
	testutil.UseConfig(t, "input_base: 3/2\nformat: json\n")
	out, _, err := execute(t, NewExplainCommand(), "", "21")
	require.NoError(t, err)

	var got struct {
		Result   string      `json:"result"`
		Value    string      `json:"value"`
		Parts    interface{} `json:"parts"`
		Decoding []decodeRow `json:"decoding"`
		Encoding []encodeRow `json:"encoding"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "4", got.Result)
	assert.Equal(t, "4", got.Value)
	assert.NotNil(t, got.Parts)

	require.NotEmpty(t, got.Decoding)
	assert.Equal(t, "numerator", got.Decoding[0].Part)
	assert.Equal(t, "2", got.Decoding[0].Nit)
	assert.Equal(t, 2, got.Decoding[0].Digit)
	require.Len(t, got.Encoding, 1)
	assert.Equal(t, "4", got.Encoding[0].Nit)
}

func TestExplain_Error(t *testing.T) {
	testutil.UseConfig(t, "input_base: 2\n")
	_, _, err := execute(t, NewExplainCommand(), "", "9")
	require.Error(t, err)
	assert.Equal(t, 8, request.ExitCode(err))
}

func TestBatch_Stdin(t *testing.T) {
	testutil.UseConfig(t, "output_base: 2\njobs: 4\n")
	stdin := "10\n# comment\n\n5\nzz\n  3  \n"

	out, errOut, err := execute(t, NewBatchCommand(), stdin)
	require.Error(t, err)

	assert.Equal(t, "1010\n101\n11\n", out, "results keep input order")
	assert.Contains(t, errOut, "line 5:")
	assert.Equal(t, 8, request.ExitCode(err), "exit code of the first failure")
	assert.Contains(t, err.Error(), "1 of 4 lines failed, first on line 5")
}

func TestBatch_File(t *testing.T) {
	testutil.UseConfig(t, "input_base: 16\n")
	path := testutil.WriteLines(t, "FF", "10", "0.8")

	out, errOut, err := execute(t, NewBatchCommand(), "", path)
	require.NoError(t, err)
	assert.Equal(t, "255\n16\n1/2\n", out)
	assert.Empty(t, errOut)
}

func TestBatch_MissingFile(t *testing.T) {
	testutil.UseConfig(t, "")
	_, _, err := execute(t, NewBatchCommand(), "", "/nonexistent/numbers.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input")
}

func TestBatch_FailFast(t *testing.T) {
	testutil.UseConfig(t, "jobs: 1\n")
	stdin := "1\nx\n2\n3\n"

	out, errOut, err := execute(t, NewBatchCommand(), stdin, "--fail-fast")
	require.Error(t, err)
	assert.Equal(t, 8, request.ExitCode(err))
	assert.Contains(t, errOut, "line 2:")
	assert.True(t, strings.HasPrefix(out, "1\n"), "lines before the failure are printed")
	assert.NotContains(t, out, "3")
}

func TestBatch_JSON(t *testing.T) {
	testutil.UseConfig(t, "output_base: 2\nformat: json\n")
	out, _, err := execute(t, NewBatchCommand(), "2\nq\n3\n")
	require.Error(t, err)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "10", got[0]["result"])
	assert.EqualValues(t, 2, got[1]["line"])
	assert.NotEmpty(t, got[1]["error"])
	assert.Nil(t, got[1]["result"])
	assert.Equal(t, "11", got[2]["result"])
}

func TestReadBatchLines(t *testing.T) {
	lines, err := readBatchLines(strings.NewReader("a\n\n# skip\n b \r\n"))
	require.NoError(t, err)
	assert.Equal(t, []batchLine{{no: 1, text: "a"}, {no: 4, text: "b"}}, lines)
}

func TestReportBatch_LogsRunSummary(t *testing.T) {
	logger, logs := logtest.CaptureLogger()
	tr := testutil.NewTestRendererMarkdown()
	cc := &CommandContext{Cfg: config.Default(), Logger: logger, Renderer: tr.Renderer}

	records := []batchRecord{
		{Line: 1, Input: "1", Conversion: &Conversion{Result: "1"}},
		{Line: 2, Input: "2", Skipped: true},
	}
	require.NoError(t, reportBatch(cc, logger, records))
	assert.Equal(t, []string{"1"}, tr.Lines())
	assert.Contains(t, logs.String(), "skipped=1")
}

// fakeReader feeds the REPL a fixed script.
type fakeReader struct {
	lines  []string
	closed bool
}

func (f *fakeReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line := f.lines[0]
	f.lines = f.lines[1:]
	if line == "^C" {
		return "", readline.ErrInterrupt
	}
	return line, nil
}

func (f *fakeReader) Close() error {
	f.closed = true
	return nil
}

func newTestSession(t *testing.T, tr *testutil.TestRenderer) *replSession {
	t.Helper()
	cc := &CommandContext{Cfg: config.Default(), Logger: logtest.NewTestLogger(t), Renderer: tr.Renderer}
	return newREPLSession(cc)
}

func TestREPL_Session(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	s := newTestSession(t, tr)
	rl := &fakeReader{lines: []string{
		"12",
		".in 16",
		"FF",
		".8",
		"^C",
		"",
		".out 2",
		"FF",
		".value 3/4",
		".quit",
		"7",
	}}

	require.NoError(t, s.run(rl))
	assert.True(t, rl.closed)
	assert.Equal(t, []string{"12", "255", "1/2", "11111111", "11/100"}, tr.Lines())
	assert.Empty(t, tr.ErrorOutput())
	assert.Equal(t, []string{"7"}, rl.lines, "lines after .quit are not read")
}

func TestREPL_DoesNotChangeLoadedConfig(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	cfg := config.Default()
	cc := &CommandContext{Cfg: cfg, Logger: logtest.NewTestLogger(t), Renderer: tr.Renderer}

	require.NoError(t, newREPLSession(cc).run(&fakeReader{lines: []string{".in 3/2", ".alphabet 012"}}))
	assert.Equal(t, config.DefaultBase, cfg.InputBase)
	assert.Equal(t, config.DefaultAlphabet, cfg.Alphabet)
}

func TestREPL_Show(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	s := newTestSession(t, tr)

	require.NoError(t, s.run(&fakeReader{lines: []string{".in 3/2", ".alphabet 0123", ".show"}}))
	assert.Equal(t, []string{
		"- **Input base**: 3/2",
		"- **Output base**: 10",
		"- **Alphabet**: 0123",
	}, tr.Lines())
}

func TestREPL_JSON(t *testing.T) {
	tr := testutil.NewTestRendererJSON()
	s := newTestSession(t, tr)

	require.NoError(t, s.run(&fakeReader{lines: []string{".out 2", "3", ".value 1/2"}}))

	dec := json.NewDecoder(strings.NewReader(tr.Output()))
	var got []Conversion
	for dec.More() {
		var c Conversion
		require.NoError(t, dec.Decode(&c))
		got = append(got, c)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "11", got[0].Result)
	assert.True(t, got[0].Integral)
	assert.Equal(t, "1/10", got[1].Result)
	assert.Equal(t, "1/2", got[1].Value)
	assert.Equal(t, "2", got[1].OutputBase)
}

func TestREPL_Errors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		errPart string
	}{
		{"invalid digit", "zz", "Error: "},
		{"bad base", ".in x", "Error: "},
		{"missing base", ".out", "usage: .out BASE"},
		{"missing alphabet", ".alphabet", "usage: .alphabet"},
		{"duplicate alphabet", ".alphabet 0012", "Error: "},
		{"missing value", ".value", "usage: .value"},
		{"bad value", ".value x", "Error: "},
		{"negative value", ".value -1", "Error: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRendererMarkdown()
			s := newTestSession(t, tr)

			require.NoError(t, s.run(&fakeReader{lines: []string{tt.line, "1"}}))
			assert.Contains(t, tr.ErrorOutput(), tt.errPart)
			assert.Equal(t, []string{"1"}, tr.Lines(), "session continues after an error")
		})
	}
}

func TestREPL_ReaderError(t *testing.T) {
	tr := testutil.NewTestRendererMarkdown()
	s := newTestSession(t, tr)
	boom := errors.New("boom")

	err := s.run(&errReader{err: boom})
	assert.ErrorIs(t, err, boom)
}

type errReader struct{ err error }

func (r *errReader) Readline() (string, error) { return "", r.err }
func (r *errReader) Close() error              { return nil }

func TestREPL_Help(t *testing.T) {
	var buf bytes.Buffer
	printREPLHelp(&buf)
	for _, c := range dotCommands {
		assert.Contains(t, buf.String(), c)
	}
}

func TestIsDotCommand(t *testing.T) {
	assert.True(t, isDotCommand(".help"))
	assert.True(t, isDotCommand(".IN 16"))
	assert.False(t, isDotCommand(".5"))
	assert.False(t, isDotCommand(".in16"))
	assert.False(t, isDotCommand("12"))
}

func TestConfigCommand_YAML(t *testing.T) {
	testutil.UseConfig(t, "output_base: 2\nformat: markdown\n")
	out, _, err := execute(t, NewConfigCommand(), "")
	require.NoError(t, err)

	assert.Contains(t, out, "# config file: ")
	assert.Contains(t, out, "output_base: \"2\"")
	assert.Contains(t, out, "alphabet: "+config.DefaultAlphabet)
}

func TestConfigCommand_JSON(t *testing.T) {
	testutil.UseConfig(t, "input_base: 3/2\nformat: json\n")
	out, _, err := execute(t, NewConfigCommand(), "")
	require.NoError(t, err)

	var got config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "3/2", got.InputBase)
	assert.Equal(t, "json", got.Format)
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewExplainCommand(), "explain NUMBER", nil},
		{NewBatchCommand(), "batch [FILE|-]", []string{"jobs", "fail-fast"}},
		{NewREPLCommand(), "repl", nil},
		{NewConfigCommand(), "config", nil},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}
