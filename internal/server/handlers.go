// ABOUTME: Handler implementations for the report QA HTTP API
// ABOUTME: Signup/login, multipart report upload, diagnosis, and history lookup
package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carelens/reportqa/internal/auth"
	"github.com/carelens/reportqa/internal/extract"
	"github.com/carelens/reportqa/internal/models"
)

// anonymousOwner labels uploads made without a bearer token.
const anonymousOwner = "anonymous"

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type diagnosisRequest struct {
	DocumentID string `json:"document_id"`
	Question   string `json:"question"`
	Username   string `json:"username"`
}

type patientSearchRequest struct {
	PatientUsername string `json:"patient_username"`
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend running!"})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	role := models.Role(req.Role)
	if !role.IsValid() {
		writeError(w, http.StatusBadRequest, "Role must be patient/doctor")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	err = s.users.Create(r.Context(), models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		// Duplicate usernames are the only expected failure here.
		writeError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User created"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"token": token,
		"role":  string(user.Role),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	text, err := extract.Text(file, contentType)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	result, err := s.engine.Ingest(r.Context(), "", text, s.ownerFromRequest(r))
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "uploaded",
		"document_id": result.DocumentID,
		"chunks":      result.ChunkCount,
	})
}

func (s *Server) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	var req diagnosisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := s.engine.Answer(r.Context(), req.DocumentID, req.Question, req.Username)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"username":     req.Username,
		"question":     req.Question,
		"answer":       result.Answer,
		"document_id":  req.DocumentID,
		"context_used": result.ContextUsed,
		"persisted":    result.Persisted,
	})
}

func (s *Server) handleByPatient(w http.ResponseWriter, r *http.Request) {
	var req patientSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.PatientUsername == "" {
		writeError(w, http.StatusBadRequest, "patient_username is required")
		return
	}

	records, err := s.history.ListByUsername(r.Context(), req.PatientUsername)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "history lookup failed")
		return
	}
	if records == nil {
		records = []models.DiagnosisRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// ownerFromRequest resolves the uploading user from the bearer token when
// one is present; uploads stay public otherwise.
func (s *Server) ownerFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return anonymousOwner
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return anonymousOwner
	}
	return claims.Subject
}
