// Package httpapi maps the HTTP/WebSocket surface onto the hashing and
// user services and translates service outcomes into transport responses.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/shastore/shastore/internal/common"
	"github.com/shastore/shastore/internal/digest"
	"github.com/shastore/shastore/internal/logging"
	"github.com/shastore/shastore/internal/server/models"
	"github.com/shastore/shastore/internal/server/ws"
)

const (
	defaultAlgorithm = "sha256"
	welcomeMessage   = "Welcome to the SHA-2 Hashing API"

	// Multipart bodies buffer up to this much in memory; larger uploads
	// spill to temporary files.
	maxMultipartMemory = 32 << 20
)

// HashProvider is the hashing-service surface the handlers need.
type HashProvider interface {
	HashText(ctx context.Context, text, algorithm string) (string, error)
	HashFile(ctx context.Context, filename, algorithm string, r io.Reader) (string, error)
	VerifyFile(ctx context.Context, r io.Reader, algorithm, knownHash string) (bool, string, error)
	ListRecent(ctx context.Context, limit int64) ([]models.HashRecord, error)
}

// UserProvider is the auth-service surface the handlers need.
type UserProvider interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler carries the services and the connection hub behind the routes.
type Handler struct {
	hashes HashProvider
	users  UserProvider
	hub    *ws.Hub
	logger logging.Logger
}

func NewHandler(hashes HashProvider, users UserProvider, hub *ws.Hub, logger logging.Logger) *Handler {
	return &Handler{hashes: hashes, users: users, hub: hub, logger: logger}
}

// --- request/response payloads ---

type textHashRequest struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm"`
}

type textHashResponse struct {
	OriginalText string `json:"original_text"`
	Algorithm    string `json:"algorithm"`
	Hash         string `json:"hash"`
}

type fileHashResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Algorithm   string `json:"algorithm"`
	Hash        string `json:"hash"`
}

type hashCheckResponse struct {
	Match   bool   `json:"match"`
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// hashRecordResponse is the transport view of a HashRecord: the ObjectID
// rendered as a hex string, the timestamp in RFC 3339.
type hashRecordResponse struct {
	ID               string    `json:"_id"`
	InputType        string    `json:"input_type"`
	OriginalInput    string    `json:"original_input,omitempty"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	Algorithm        string    `json:"algorithm"`
	Hash             string    `json:"hash"`
	Timestamp        time.Time `json:"timestamp"`
}

// --- handlers ---

// Root handles GET /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
}

// HashText handles POST /hash/text/.
func (h *Handler) HashText(w http.ResponseWriter, r *http.Request) {
	var req textHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Algorithm == "" {
		req.Algorithm = defaultAlgorithm
	}

	sum, err := h.hashes.HashText(r.Context(), req.Text, req.Algorithm)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, textHashResponse{
		OriginalText: req.Text,
		Algorithm:    req.Algorithm,
		Hash:         sum,
	})
}

// HashFile handles POST /hash/file/. The algorithm comes from the query
// string or the form, defaulting to sha256.
func (h *Handler) HashFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "form field 'file' is required")
		return
	}
	defer file.Close()

	algorithm := r.URL.Query().Get("algorithm")
	if algorithm == "" {
		algorithm = r.PostFormValue("algorithm")
	}
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}
	// Reject a bad algorithm before streaming the upload.
	if !digest.Supported(algorithm) {
		writeServiceError(w, common.ErrUnsupportedAlgorithm)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	sum, err := h.hashes.HashFile(r.Context(), header.Filename, algorithm, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fileHashResponse{
		Filename:    header.Filename,
		ContentType: contentType,
		Algorithm:   algorithm,
		Hash:        sum,
	})
}

// CheckFile handles POST /hash/check/. Any processing failure is a 400
// with a detail string; a clean mismatch is a 200 with match=false.
func (h *Handler) CheckFile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "form field 'file' is required")
		return
	}
	defer file.Close()

	knownHash := r.PostFormValue("known_hash")
	if knownHash == "" {
		writeError(w, http.StatusBadRequest, "form field 'known_hash' is required")
		return
	}

	algorithm := r.PostFormValue("algorithm")
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}

	match, message, err := h.hashes.VerifyFile(r.Context(), file, algorithm, knownHash)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not process file verification: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, hashCheckResponse{Match: match, Message: message})
}

// ListHashes handles GET /hashes/.
func (h *Handler) ListHashes(w http.ResponseWriter, r *http.Request) {
	records, err := h.hashes.ListRecent(r.Context(), 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]hashRecordResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, hashRecordResponse{
			ID:               rec.ID.Hex(),
			InputType:        rec.InputType,
			OriginalInput:    rec.OriginalInput,
			OriginalFilename: rec.OriginalFilename,
			Algorithm:        rec.Algorithm,
			Hash:             rec.Hash,
			Timestamp:        rec.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{Username: user.Username})
}

// Login handles POST /auth/login. The body is form-encoded per the OAuth2
// password-grant convention.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := h.users.Login(r.Context(), username, password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}
