// Package cli implements the kmeans command line: argument validation, input
// loading, clustering and output, with every failure mapped to one message
// and exit code 1.
package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/objones25/kmeans/internal/format"
	"github.com/objones25/kmeans/internal/kmeans"
	"github.com/objones25/kmeans/internal/loader"
	"github.com/objones25/kmeans/internal/monitor"
)

// Command wires the kmeans CLI to its streams
type Command struct {
	In  io.Reader
	Out io.Writer // Centroids and user-facing messages
	Err io.Writer // Diagnostics

	// LogLevel filters diagnostics written to Err
	LogLevel zerolog.Level
}

// New creates a Command that only reports warnings and above on errOut
func New(in io.Reader, out, errOut io.Writer) *Command {
	return &Command{
		In:       in,
		Out:      out,
		Err:      errOut,
		LogLevel: zerolog.WarnLevel,
	}
}

// Root builds the root command. Flag parsing and the completion command are
// disabled so that values such as "-1" or "completion" reach argument
// validation.
func (c *Command) Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kmeans K [MAX_ITER]",
		Short: "Cluster comma-separated vectors from stdin with k-means",
		Long: `kmeans reads one comma-separated vector per line from standard input,
partitions the vectors into K clusters with Lloyd's algorithm and prints the
final centroids, one per line, with four decimal places.

K must be at least 2 and smaller than the number of vectors.
MAX_ITER defaults to 400 and must be between 2 and 999.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return fmt.Errorf("%w: expected 1 or 2 arguments, got %d", ErrUsage, len(args))
			}
			return nil
		},
		DisableFlagParsing: true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context(), args)
		},
	}
	cmd.SetIn(c.In)
	cmd.SetOut(c.Out)
	cmd.SetErr(c.Err)
	return cmd
}

// Execute runs the command with args (program name excluded) and returns
// the process exit code. Arguments are validated before cobra sees them, so
// reserved names such as "__complete" fail like any other non-integer.
func (c *Command) Execute(ctx context.Context, args []string) int {
	if _, err := ParseArgs(args); err != nil {
		return c.fail(err)
	}

	cmd := c.Root()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		return c.fail(err)
	}
	return 0
}

func (c *Command) fail(err error) int {
	logger := c.logger()
	logger.Debug().Err(err).Msg("Command failed")
	fmt.Fprintln(c.Out, Message(err))
	return 1
}

func (c *Command) run(ctx context.Context, args []string) error {
	params, err := ParseArgs(args)
	if err != nil {
		return err
	}

	logger := c.logger()

	data, err := loader.Load(c.In)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInput, err)
	}
	if params.K >= data.Rows() {
		return fmt.Errorf("%w: k=%d with %d vectors", ErrInvalidClusters, params.K, data.Rows())
	}

	registry := prometheus.NewRegistry()
	metrics := monitor.NewMetrics(registry)

	cfg := kmeans.DefaultConfig()
	cfg.K = params.K
	cfg.MaxIterations = params.MaxIterations

	engine, err := kmeans.New(cfg, kmeans.WithLogger(logger), kmeans.WithObserver(metrics))
	if err != nil {
		return err
	}

	result, err := engine.Cluster(ctx, data)
	if err != nil {
		return err
	}
	monitor.LogSummary(logger, registry)

	return format.Write(c.Out, result.Centroids)
}

func (c *Command) logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: c.Err, NoColor: true, TimeFormat: time.TimeOnly}
	return zerolog.New(output).Level(c.LogLevel).With().Timestamp().Logger()
}
