package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/ratbase/internal/cli/config"
	"github.com/leapstack-labs/ratbase/internal/request"
	"github.com/leapstack-labs/ratbase/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh root command in an empty directory.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	testutil.Chdir(t, t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_Convert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"42"}, "42"},
		{"to binary", []string{"-o=2", "12"}, "1100"},
		{"long flags", []string{"--input", "16", "--output", "10", "A.8"}, "21/2"},
		{"rational input base", []string{"-i", "3/2", "2100"}, "9"},
		{"unary output", []string{"-o=1", "5"}, "11111"},
		{"negative base", []string{"-i=-3/-2", "21"}, "4"},
		{"number after dashes", []string{"-i=3", "-o=3", "-a=-ab", "--", "-ab"}, "ab"},
		{"zero", []string{"0"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestRoot_JSON(t *testing.T) {
	out, _, err := run(t, "-f", "json", "-o=2", "3")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "11", got["result"])
	assert.Equal(t, "2", got["output_base"])
	assert.Equal(t, true, got["integral"])
}

func TestRoot_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"extra number", []string{"1", "2"}, 1},
		{"unknown option", []string{"--nope", "1"}, 2},
		{"unknown shorthand", []string{"-z", "1"}, 2},
		{"duplicate input base", []string{"-i=2", "-i=3", "1"}, 3},
		{"duplicate output base", []string{"-o=2", "--output", "3", "1"}, 4},
		{"duplicate alphabet", []string{"-a=01", "-a=012", "1"}, 5},
		{"invalid input base", []string{"-i=x", "1"}, 6},
		{"invalid output base", []string{"-o=1/2/3", "1"}, 7},
		{"invalid digits", []string{"-i=2", "12"}, 8},
		{"insufficient alphabet", []string{"-a=0123", "1"}, 9},
		{"zero base", []string{"-o=0", "1"}, 10},
		{"illegal alphabet", []string{"-a=0.123456789", "1"}, 11},
		{"multiple separators", []string{"1.2.3"}, 12},
		{"unknown format", []string{"-f", "yaml", "1"}, 13},
		{"missing config file", []string{"--config", "missing.yaml", "1"}, 13},
		{"zero denominator", []string{"3/0"}, 14},
		{"missing number", nil, 99},
		{"sub-unit base", []string{"-i=1/2", "1"}, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, request.ExitCode(err), "error: %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestRoot_DuplicateReportsFlag(t *testing.T) {
	_, _, err := run(t, "--alphabet", "01", "-a", "012", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--alphabet can only be given once")
}

func TestRoot_Verbose(t *testing.T) {
	out, errOut, err := run(t, "-v", "-o=2", "3")
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "converting")
	assert.Contains(t, errOut, "value=3")
}

func TestRoot_QuietByDefault(t *testing.T) {
	_, errOut, err := run(t, "3")
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

func TestRoot_Version(t *testing.T) {
	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "ratbase "+Version)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ratbase v"+Version)
}

func TestRoot_SubcommandsInheritFlags(t *testing.T) {
	out, _, err := run(t, "explain", "-o=2", "-f", "json", "3")
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "11", got["result"])
}

func TestRoot_Subcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"version", "explain", "batch", "repl", "config", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "ratbase")
		})
	}

	_, _, err := run(t, "completion", "tcsh")
	require.Error(t, err)
}
