package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/providers"
	"github.com/lehigh-university-libraries/trackverify/internal/reconcile"
	"github.com/lehigh-university-libraries/trackverify/internal/verification"
)

// maxBodyBytes bounds JSON request bodies and uploads.
const maxBodyBytes = 10 * 1024 * 1024

// isHTTPURL reports whether ref is fetched over the network. Image refs
// from clients must be URLs; anything else would be read from local disk.
func isHTTPURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Verifier runs the full pipeline for one NetEase song.
type Verifier interface {
	Verify(ctx context.Context, songID string, opts verification.Options) (reconcile.Result, error)
}

// CreditsExtractor reads credits from an image.
type CreditsExtractor interface {
	Extract(ctx context.Context, ref string) (map[string][]string, error)
	ExtractImage(ctx context.Context, img providers.Image) (map[string][]string, error)
}

type Handler struct {
	reconciler *reconcile.Reconciler
	verifier   Verifier
	credits    CreditsExtractor
}

// New returns a handler. verifier and credits may be nil, in which case the
// endpoints that need them answer 503.
func New(verifier Verifier, credits CreditsExtractor) *Handler {
	return &Handler{
		reconciler: reconcile.New(),
		verifier:   verifier,
		credits:    credits,
	}
}

// Routes registers every endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/reconcile", h.HandleReconcile)
	mux.HandleFunc("/api/match", h.HandleMatch)
	mux.HandleFunc("/api/cover-verdict", h.HandleCoverVerdict)
	mux.HandleFunc("/api/verify", h.HandleVerify)
	mux.HandleFunc("/api/credits", h.HandleCredits)
	mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data any) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
