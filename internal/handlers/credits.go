package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/lehigh-university-libraries/trackverify/internal/providers"
)

// HandleCredits reads credits from an uploaded image (multipart field
// "file") or from {"image_url": ...}.
func (h *Handler) HandleCredits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.credits == nil {
		h.writeError(w, "Credits OCR is not configured", http.StatusServiceUnavailable)
		return
	}

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		h.handleURLCredits(w, r)
		return
	}
	h.handleFileCredits(w, r)
}

func (h *Handler) handleURLCredits(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !isHTTPURL(request.ImageURL) {
		h.writeError(w, "image_url must be an http(s) URL", http.StatusBadRequest)
		return
	}

	found, err := h.credits.Extract(r.Context(), request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to read credits: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, map[string]any{"credits": found})
}

func (h *Handler) handleFileCredits(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBodyBytes))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if len(data) >= maxBodyBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		h.writeError(w, "Uploaded file is not an image", http.StatusBadRequest)
		return
	}

	found, err := h.credits.ExtractImage(r.Context(), providers.Image{MIMEType: mime, Data: data})
	if err != nil {
		h.writeError(w, "Failed to read credits: "+err.Error(), http.StatusBadGateway)
		return
	}
	h.writeJSON(w, map[string]any{"credits": found})
}
