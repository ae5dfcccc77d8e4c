// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for all reportqa subcommands
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared across commands
var (
	verbose bool
	quiet   bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportqa",
		Short: "Medical report question answering",
		Long: `reportqa - grounded question answering over medical reports

Upload a report, ask questions about it, and get answers grounded
strictly in the report's own text. Reports are chunked, embedded,
and indexed; answers cite only retrieved context.

Run "reportqa serve" for the HTTP API or "reportqa mcp" to expose
the same pipeline to LLM agents over stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewUploadCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
