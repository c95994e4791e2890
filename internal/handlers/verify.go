package handlers

import (
	"net/http"

	"github.com/lehigh-university-libraries/trackverify/internal/sources/netease"
	"github.com/lehigh-university-libraries/trackverify/internal/verification"
)

// HandleVerify runs the pipeline for ?url= (a NetEase song URL or id).
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if h.verifier == nil {
		h.writeError(w, "Verification is not configured", http.StatusServiceUnavailable)
		return
	}

	songID, err := netease.ParseSongURL(r.URL.Query().Get("url"))
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	creditsImage := r.URL.Query().Get("credits_image")
	if creditsImage != "" && !isHTTPURL(creditsImage) {
		h.writeError(w, "credits_image must be an http(s) URL", http.StatusBadRequest)
		return
	}

	res, err := h.verifier.Verify(r.Context(), songID, verification.Options{
		CreditsImage: creditsImage,
		SkipCover:    r.URL.Query().Get("skip_cover") == "true",
	})
	if err != nil {
		h.writeJSONStatus(w, http.StatusBadGateway, res)
		return
	}
	h.writeJSON(w, res)
}
