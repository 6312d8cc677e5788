// =============================================================================
// main.go - Entry Point for tsn-delay-analysis
// =============================================================================
//
// Correlates raw-l2-send and raw-l2-rcv timestamp logs from a TSN test rig and
// reports path delay and gate delay against the gate schedule.
//
// USAGE:
//
//	tsn-delay-analysis \
//	  -t raw-l2-send.log \
//	  -r raw-l2-rcv.log \
//	  -u 37.0 \
//	  -c 1000000 \
//	  [-s]
//	  [--config rig.toml]
//	  [--log-file run.log --error-file run.err]
//	  [--metrics-file /var/lib/node_exporter/tsn.prom]
//
// OUTPUT:
//
//	stdout carries the report: one line per frame (unless -s), lost and
//	malformed notices, then the summary. Diagnostics for fatal errors go to
//	stderr.
//
// EXIT CODES:
//
//	0 - Success (lost or malformed frames do not change this)
//	1 - Configuration error, including an invalid timestamp argument
//	2 - Runtime error: unreadable log, invalid timestamp inside a log
//
// =============================================================================

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/karthikiyer56/tsn-delay-analysis/tsn-delay-analysis/pkg/logging"
)

// =============================================================================
// Version Information
// =============================================================================

const (
	// Version is the tool version
	Version = "1.0.0"

	// ToolName is the name of this tool
	ToolName = "tsn-delay-analysis"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess      = 0
	ExitConfigError  = 1
	ExitRuntimeError = 2
)

// exitError carries the process exit code out of the cobra command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// =============================================================================
// Main Entry Point
// =============================================================================

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	fmt.Fprintf(stderr, "%s: %v\n", ToolName, err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Flag parsing errors come straight from cobra.
	return ExitConfigError
}

// newRootCmd builds the cobra command. The report is written to stdout.
func newRootCmd(stdout io.Writer) *cobra.Command {
	flags := &Config{}

	cmd := &cobra.Command{
		Use:           ToolName,
		Short:         "Process RT traffic timestamps",
		Long:          "Match raw-l2-send and raw-l2-rcv logs by sequence id and report path delay and gate delay statistics.",
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := resolveConfig(cmd.Flags(), flags)
			if err != nil {
				return &exitError{code: ExitConfigError, err: err}
			}
			if err := config.Validate(); err != nil {
				return &exitError{code: ExitConfigError, err: errors.Wrap(err, "configuration error")}
			}
			return analyze(config, stdout)
		},
	}
	bindFlags(cmd.Flags(), flags)

	return cmd
}

// analyze runs the workflow for a validated config.
func analyze(config *Config, stdout io.Writer) error {
	logger, err := logging.NewDualLogger(config.LogFile, config.ErrorFile)
	if err != nil {
		return &exitError{code: ExitConfigError, err: errors.Wrap(err, "failed to create logger")}
	}
	defer logger.Close()

	logger.Separator()
	logger.Info("                    %s v%s", ToolName, Version)
	logger.Separator()
	config.PrintConfig(logger)

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	workflow := NewWorkflow(config, logger)
	if _, err := workflow.Run(out); err != nil {
		// Whatever was reported before the failure is still printed.
		out.Flush()
		logger.Error("Workflow failed: %v", err)
		return &exitError{code: ExitRuntimeError, err: err}
	}
	logger.Info("Workflow completed successfully")
	return nil
}
