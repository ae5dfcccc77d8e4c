// ABOUTME: CLI command to ask a question about an uploaded report
// ABOUTME: Prints the grounded answer and records it in history
package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carelens/reportqa/internal/config"
	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/util"
)

var (
	askDocID string
	askUser  string
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about an uploaded report",
		Long: `Ask a question about a previously uploaded report.

The answer is grounded strictly in the report's own text. The
exchange is recorded in patient history when it succeeds.

Examples:
  reportqa ask --doc 5f1c... "Is the glucose level normal?"
  reportqa ask --doc 5f1c... --user alice "What does the MRI show?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askDocID, "doc", "", "Document id returned by upload (required)")
	cmd.Flags().StringVar(&askUser, "user", "anonymous", "Who is asking (recorded in history)")
	_ = cmd.MarkFlagRequired("doc")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.close()

	// Transient service failures are retried here; the pipeline itself
	// never retries.
	var result rag.AnswerResult
	err = util.Retry(cmd.Context(), 3, 500*time.Millisecond, rag.IsRetryable, func() error {
		var answerErr error
		result, answerErr = p.engine.Answer(cmd.Context(), askDocID, args[0], askUser)
		return answerErr
	})
	if err != nil {
		if errors.Is(err, rag.ErrNoChunks) {
			return fmt.Errorf("no content found for document %s - was it uploaded?", askDocID)
		}
		return fmt.Errorf("answering: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "(used %d context chunks, persisted=%v)\n",
			result.ContextUsed, result.Persisted)
	}
	return nil
}
