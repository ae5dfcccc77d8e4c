// ABOUTME: HTTP API surface: auth, report upload, and diagnosis endpoints
// ABOUTME: Maps pipeline errors onto client/server status codes
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carelens/reportqa/internal/auth"
	"github.com/carelens/reportqa/internal/extract"
	"github.com/carelens/reportqa/internal/rag"
	"github.com/carelens/reportqa/internal/storage/sqlite"
	"github.com/gorilla/mux"
)

// DefaultMaxUploadBytes caps report uploads at 10MB.
const DefaultMaxUploadBytes = 10 << 20

// Server holds the engine and stores behind the HTTP API.
type Server struct {
	engine         *rag.Engine
	users          *sqlite.UserStore
	history        *sqlite.DiagnosisStore
	tokens         *auth.Tokens
	maxUploadBytes int64
}

// New creates a Server. All collaborators are injected so tests can run the
// full API over fakes and in-memory stores.
func New(engine *rag.Engine, users *sqlite.UserStore, history *sqlite.DiagnosisStore, tokens *auth.Tokens) *Server {
	return &Server{
		engine:         engine,
		users:          users,
		history:        history,
		tokens:         tokens,
		maxUploadBytes: DefaultMaxUploadBytes,
	}
}

// SetMaxUploadBytes overrides the upload size cap.
func (s *Server) SetMaxUploadBytes(n int64) {
	if n > 0 {
		s.maxUploadBytes = n
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/reports/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/diagnosis/from_report", s.handleDiagnosis).Methods(http.MethodPost)
	r.HandleFunc("/diagnosis/by_patient_name", s.handleByPatient).Methods(http.MethodPost)
	return corsMiddleware(r)
}

// corsMiddleware mirrors the permissive CORS policy of the original API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// statusForError maps the pipeline taxonomy onto HTTP statuses: caller
// mistakes are 400s, empty retrieval is 404, collaborator failures are 502.
func statusForError(err error) int {
	switch {
	case errors.Is(err, rag.ErrInvalidInput),
		errors.Is(err, extract.ErrUnsupportedType),
		errors.Is(err, extract.ErrNoText):
		return http.StatusBadRequest
	case errors.Is(err, rag.ErrNoChunks):
		return http.StatusNotFound
	}

	var embedErr *rag.EmbeddingServiceError
	var genErr *rag.GenerationServiceError
	var indexErr *rag.IndexUnavailableError
	if errors.As(err, &embedErr) || errors.As(err, &genErr) || errors.As(err, &indexErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
