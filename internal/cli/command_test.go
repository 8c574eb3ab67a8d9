package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/objones25/kmeans/internal/testutil"
)

const dummyInput = "1,2,3\n4,5,6\n7,8,9\n1,2,3\n"

type run struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, input string, args ...string) run {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := New(strings.NewReader(input), &stdout, &stderr)
	code := cmd.Execute(context.Background(), args)
	return run{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestExecuteSuccess(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "two columns",
			input: "0,0\n0,1\n10,0\n10,1\n",
			args:  []string{"2", "10"},
			want:  "5.0000,0.0000\n5.0000,1.0000\n",
		},
		{
			// Seeds 1,2,3 / 4,5,6 / 7,8,9; the duplicate row joins cluster 0.
			name:  "default iterations",
			input: dummyInput,
			args:  []string{"3"},
			want:  "1.0000,2.0000,3.0000\n4.0000,5.0000,6.0000\n7.0000,8.0000,9.0000\n",
		},
		{
			name:  "blank lines and whitespace",
			input: "\n 0, 0\n0,1  \n\n10,0\n10,1",
			args:  []string{"2", "2"},
			want:  "5.0000,0.0000\n5.0000,1.0000\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := execute(t, tt.input, tt.args...)
			assert.Equal(t, 0, got.code)
			assert.Equal(t, tt.want, got.stdout)
			assert.Empty(t, got.stderr)
		})
	}
}

func TestExecuteFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{name: "k one", input: dummyInput, args: []string{"1"}, want: MsgInvalidClusters},
		{name: "k zero", input: dummyInput, args: []string{"0"}, want: MsgInvalidClusters},
		{name: "k negative", input: dummyInput, args: []string{"-1"}, want: MsgInvalidClusters},
		{name: "k not below n", input: dummyInput, args: []string{"4"}, want: MsgInvalidClusters},
		{name: "k far above n", input: dummyInput, args: []string{"42"}, want: MsgInvalidClusters},
		{name: "iterations upper bound", input: dummyInput, args: []string{"3", "1000"}, want: MsgInvalidIterations},
		{name: "iterations lower bound", input: dummyInput, args: []string{"3", "1"}, want: MsgInvalidIterations},
		{name: "no arguments", input: dummyInput, args: nil, want: MsgGeneric},
		{name: "too many arguments", input: dummyInput, args: []string{"3", "10", "x"}, want: MsgGeneric},
		{name: "k not a number", input: dummyInput, args: []string{"bug"}, want: MsgGeneric},
		{name: "help is not a flag", input: dummyInput, args: []string{"--help"}, want: MsgGeneric},
		{name: "help command", input: dummyInput, args: []string{"help"}, want: MsgGeneric},
		{name: "completion command", input: dummyInput, args: []string{"completion"}, want: MsgGeneric},
		{name: "completion script", input: dummyInput, args: []string{"completion", "bash"}, want: MsgGeneric},
		{name: "hidden complete command", input: dummyInput, args: []string{"__complete", "2"}, want: MsgGeneric},
		{name: "empty input", input: "", args: []string{"2"}, want: MsgGeneric},
		{name: "ragged input", input: "1,2\n3,4\n5,6,7\n", args: []string{"2"}, want: MsgGeneric},
		{name: "malformed number", input: "1,2\n3,x\n5,6\n", args: []string{"2"}, want: MsgGeneric},
		{name: "arguments checked before input", input: "", args: []string{"1"}, want: MsgInvalidClusters},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := execute(t, tt.input, tt.args...)
			assert.Equal(t, 1, got.code)
			assert.Equal(t, tt.want+"\n", got.stdout)
			assert.Empty(t, got.stderr)
		})
	}
}

func TestExecuteEmptyClusterDiagnostic(t *testing.T) {
	// Duplicate first rows seed two identical centroids, so cluster 1 is
	// empty on the first iteration.
	var stdout, stderr bytes.Buffer
	cmd := New(strings.NewReader("0\n0\n10\n"), &stdout, &stderr)

	code := cmd.Execute(context.Background(), []string{"2"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "10.0000\n0.0000\n", stdout.String())
	assert.Equal(t, 1, strings.Count(stderr.String(), "Empty cluster"))
	assert.NotContains(t, stdout.String(), MsgGeneric)
}

func TestExecuteDebugLogging(t *testing.T) {
	testutil.TestLogLevel(t, zerolog.DebugLevel)

	var stdout, stderr bytes.Buffer
	cmd := New(strings.NewReader("0,0\n0,1\n10,0\n10,1\n"), &stdout, &stderr)
	cmd.LogLevel = zerolog.DebugLevel

	code := cmd.Execute(context.Background(), []string{"2", "10"})
	assert.Equal(t, 0, code)
	assert.Equal(t, "5.0000,0.0000\n5.0000,1.0000\n", stdout.String())
	assert.Contains(t, stderr.String(), "Clustering finished")
	assert.Contains(t, stderr.String(), "kmeans_iterations_total")
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	cmd := New(strings.NewReader(dummyInput), &stdout, &stderr)
	assert.Equal(t, 1, cmd.Execute(ctx, []string{"2"}))
	assert.Equal(t, MsgGeneric+"\n", stdout.String())
}

func TestRootHasNoSubcommands(t *testing.T) {
	root := New(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}).Root()
	assert.True(t, root.CompletionOptions.DisableDefaultCmd)
	assert.False(t, root.HasAvailableSubCommands())
}

func TestExecuteFailureDebugLog(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := New(strings.NewReader(dummyInput), &stdout, &stderr)
	cmd.LogLevel = zerolog.DebugLevel

	assert.Equal(t, 1, cmd.Execute(context.Background(), []string{"bug"}))
	assert.Equal(t, MsgGeneric+"\n", stdout.String())
	assert.Contains(t, stderr.String(), "Command failed")
}
