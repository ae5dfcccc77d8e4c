// ABOUTME: CLI command to list a patient's question/answer history
// ABOUTME: Reads straight from the local database, no API keys needed
package commands

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carelens/reportqa/internal/config"
	"github.com/carelens/reportqa/internal/storage/sqlite"
)

var historyJSON bool

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <username>",
		Short: "List past questions and answers for a patient",
		Long: `List past question/answer exchanges for a patient, newest first.

Examples:
  reportqa history alice
  reportqa history alice --json`,
		Args: cobra.ExactArgs(1),
		RunE: runHistory,
	}

	cmd.Flags().BoolVar(&historyJSON, "json", false, "Output as JSON")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Warning: error closing database: %v", err)
		}
	}()

	records, err := sqlite.NewDiagnosisStore(db).ListByUsername(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing history: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(records) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No history for %s\n", args[0])
		}
		return nil
	}

	for _, rec := range records {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", formatTime(rec.CreatedAt), truncate(rec.Question, 70))
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", truncate(rec.Answer, 100))
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  document: %s\n", rec.DocumentID)
		}
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d record(s)\n", len(records))
	}
	return nil
}
