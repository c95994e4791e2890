package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lehigh-university-libraries/trackverify/internal/coververdict"
	"github.com/lehigh-university-libraries/trackverify/internal/matching"
	"github.com/lehigh-university-libraries/trackverify/internal/models"
	"github.com/lehigh-university-libraries/trackverify/internal/normalize"
)

type reconcileRequest struct {
	models.SourceSet
	CoverResponse string `json:"cover_response"`
	// Normalize canonicalizes titles, artists and credit roles first.
	Normalize bool `json:"normalize"`
}

// HandleReconcile reconciles a posted SourceSet. A result without a primary
// bundle is answered with 422 and the failed result.
func (h *Handler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if !h.decode(w, r, &req) {
		return
	}
	set := req.SourceSet
	if req.Normalize {
		set = normalize.CanonicalSet(set)
	}
	res := h.reconciler.Reconcile(set, req.CoverResponse)
	if !res.Success {
		h.writeJSONStatus(w, http.StatusUnprocessableEntity, res)
		return
	}
	h.writeJSON(w, res)
}

type matchRequest struct {
	Platform string          `json:"platform"`
	Target   matching.Target `json:"target"`
	Payload  json.RawMessage `json:"payload"`
}

// HandleMatch picks the best candidate out of a raw search payload.
func (h *Handler) HandleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if !h.decode(w, r, &req) {
		return
	}
	accessor, err := matching.AccessorFor(req.Platform)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := matching.SelectFromPayload(req.Target, req.Payload, accessor)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	h.writeJSON(w, res)
}

type coverVerdictRequest struct {
	Response string `json:"response"`
}

// HandleCoverVerdict parses a vision model reply. It never fails on the
// reply's content.
func (h *Handler) HandleCoverVerdict(w http.ResponseWriter, r *http.Request) {
	var req coverVerdictRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.writeJSON(w, coververdict.Parse(req.Response))
}
