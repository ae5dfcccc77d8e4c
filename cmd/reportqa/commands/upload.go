// ABOUTME: CLI command to upload and index a medical report
// ABOUTME: Handles PDF and plain-text files plus stdin input
package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carelens/reportqa/internal/config"
	"github.com/carelens/reportqa/internal/extract"
	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/util"
)

var (
	uploadFile string
	uploadUser string
)

// NewUploadCmd creates the upload command
func NewUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload [text]",
		Short: "Upload a report for question answering",
		Long: `Upload a medical report and index it for question answering.

Accepts a PDF or plain-text file, inline text, or stdin. Prints the
document id to use with "reportqa ask".

Examples:
  reportqa upload --file report.pdf
  reportqa upload --file results.txt --user alice
  cat report.txt | reportqa upload`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUpload,
	}

	cmd.Flags().StringVar(&uploadFile, "file", "", "Report file to upload (PDF or TXT)")
	cmd.Flags().StringVar(&uploadUser, "user", "anonymous", "Owner of the report")

	return cmd
}

func runUpload(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	text, err := readUploadText(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.close()

	// Transient embedding or index failures are retried here; the
	// pipeline itself never retries.
	var result rag.IngestResult
	err = util.Retry(cmd.Context(), 3, 500*time.Millisecond, rag.IsRetryable, func() error {
		var ingestErr error
		result, ingestErr = p.engine.Ingest(cmd.Context(), "", text, uploadUser)
		return ingestErr
	})
	if err != nil {
		return fmt.Errorf("ingesting report: %w", err)
	}

	if quiet {
		fmt.Fprintln(cmd.OutOrStdout(), result.DocumentID)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Uploaded document %s (%d chunks)\n", result.DocumentID, result.ChunkCount)
	return nil
}

// readUploadText resolves the report text from --file, an argument, or
// stdin. Files are run through the extractor so PDFs work.
func readUploadText(args []string) (string, error) {
	if uploadFile != "" {
		data, err := os.ReadFile(uploadFile)
		if err != nil {
			return "", fmt.Errorf("reading file: %w", err)
		}
		contentType := extract.ContentTypeText
		if strings.EqualFold(filepath.Ext(uploadFile), ".pdf") {
			contentType = extract.ContentTypePDF
		}
		return extract.Text(bytes.NewReader(data), contentType)
	}
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
