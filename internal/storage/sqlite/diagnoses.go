// ABOUTME: Diagnosis history persistence operations
// ABOUTME: Insert-only records queried by username, newest first
package sqlite

import (
	"context"
	"fmt"

	"github.com/carelens/reportqa/internal/models"
	"github.com/google/uuid"
)

// DiagnosisStore handles diagnosis record persistence. It implements
// rag.HistoryStore.
type DiagnosisStore struct {
	db *DB
}

// NewDiagnosisStore creates a new DiagnosisStore
func NewDiagnosisStore(db *DB) *DiagnosisStore {
	return &DiagnosisStore{db: db}
}

// Save inserts one answered question. Records are immutable once written.
func (s *DiagnosisStore) Save(ctx context.Context, rec models.DiagnosisRecord) error {
	_, err := s.db.conn.ExecContext(ctx, `
		INSERT INTO diagnoses (id, username, question, answer, document_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), rec.Username, rec.Question, rec.Answer, rec.DocumentID, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert diagnosis: %w", err)
	}
	return nil
}

// ListByUsername returns all records for a user, created_at descending.
func (s *DiagnosisStore) ListByUsername(ctx context.Context, username string) ([]models.DiagnosisRecord, error) {
	rows, err := s.db.conn.QueryContext(ctx, `
		SELECT username, question, answer, document_id, created_at
		FROM diagnoses
		WHERE username = ?
		ORDER BY created_at DESC
	`, username)
	if err != nil {
		return nil, fmt.Errorf("query diagnoses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.DiagnosisRecord
	for rows.Next() {
		var rec models.DiagnosisRecord
		if err := rows.Scan(&rec.Username, &rec.Question, &rec.Answer, &rec.DocumentID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan diagnosis: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
