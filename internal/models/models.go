// ABOUTME: Core data types for the report QA pipeline
// ABOUTME: Chunks, retrieval results, diagnosis records, and user accounts
package models

import "time"

// Role identifies what kind of account a user holds
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	return r == RolePatient || r == RoleDoctor
}

// User is a stored account. The password is only ever held as a bcrypt hash.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Chunk is a contiguous slice of a document's text. Index is an explicit
// field rather than slice position so concurrent embedding cannot reorder it.
type Chunk struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"chunk_index"`
	Text       string `json:"text"`
}

// RetrievedChunk is a chunk returned from a similarity query, with the
// score the vector store assigned it.
type RetrievedChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// DiagnosisRecord is one answered question. Created once, never mutated.
type DiagnosisRecord struct {
	Username   string    `json:"username"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	DocumentID string    `json:"document_id"`
	CreatedAt  time.Time `json:"created_at"`
}
