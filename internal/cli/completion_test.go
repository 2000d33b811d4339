package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBareRoot creates a fresh root command for testing.
func newBareRoot() *cobra.Command {
	return &cobra.Command{
		Use:   "beacon",
		Short: "Threshold status lights for your terminal",
	}
}

func TestCompletionGeneration(t *testing.T) {
	tests := []struct {
		shell string
		gen   func(*cobra.Command, *bytes.Buffer) error
		want  []string
	}{
		{
			shell: "bash",
			gen:   func(c *cobra.Command, b *bytes.Buffer) error { return c.GenBashCompletion(b) },
			want:  []string{"# bash completion for beacon", "__beacon_debug", "complete -o default -F __start_beacon beacon"},
		},
		{
			shell: "zsh",
			gen:   func(c *cobra.Command, b *bytes.Buffer) error { return c.GenZshCompletion(b) },
			want:  []string{"#compdef beacon", "_beacon()"},
		},
		{
			shell: "fish",
			gen:   func(c *cobra.Command, b *bytes.Buffer) error { return c.GenFishCompletion(b, true) },
			want:  []string{"fish completion for beacon", "complete -c beacon"},
		},
		{
			shell: "powershell",
			gen:   func(c *cobra.Command, b *bytes.Buffer) error { return c.GenPowerShellCompletion(b) },
			want:  []string{"Register-ArgumentCompleter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tt.gen(newBareRoot(), &buf))
			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestCompletionIncludesBuiltinCommands(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, rootCmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Contains(t, output, "__completeNoDesc", "should use dynamic completion")
	assert.Contains(t, output, "__start_beacon", "should have start function")
	assert.Contains(t, output, "_beacon_root_command", "should have root command function")

	// Commands with local flags get their own functions.
	assert.Contains(t, output, "_beacon_run()")
	assert.Contains(t, output, "_beacon_watch()")
	assert.Contains(t, output, "_beacon_validate()")
	assert.Contains(t, output, "_beacon_completion()")
}

func TestCompletionBashSyntaxValid(t *testing.T) {
	cmd := newBareRoot()
	cmd.AddCommand(&cobra.Command{Use: "run", Short: "Run command"})
	cmd.AddCommand(&cobra.Command{Use: "watch", Short: "Watch"})

	var buf bytes.Buffer
	require.NoError(t, cmd.GenBashCompletion(&buf))
	output := buf.String()

	assert.Equal(t, strings.Count(output, "{"), strings.Count(output, "}"), "braces should be balanced")
	assert.Contains(t, output, "__start_beacon()")
}

func TestCompletionCommandWritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	completionCmd.SetOut(&buf)
	defer completionCmd.SetOut(nil)

	require.NoError(t, completionCmd.RunE(completionCmd, []string{"zsh"}))
	assert.Contains(t, buf.String(), "#compdef beacon")
}

func TestCompletionCommandValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, completionCmd.ValidArgs)
}
