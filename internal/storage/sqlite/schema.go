// ABOUTME: SQLite database schema for accounts and diagnosis history
// ABOUTME: Creates all tables and indexes for local persistence
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- User accounts (passwords stored as bcrypt hashes only)
CREATE TABLE IF NOT EXISTS users (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Diagnosis history: one row per answered question, never updated
CREATE TABLE IF NOT EXISTS diagnoses (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    document_id TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_diagnoses_username ON diagnoses(username);
CREATE INDEX IF NOT EXISTS idx_diagnoses_created ON diagnoses(created_at);
`
