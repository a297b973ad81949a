package common

import (
	"net/http"
	"strings"

	"care-hub-go/internal/polish"
)

type polishRequest struct {
	Text string      `json:"text"`
	Kind polish.Kind `json:"kind"`
}

type polishResponse struct {
	Text string `json:"text"`
}

func (h *Handlers) Polish(w http.ResponseWriter, r *http.Request) {
	var req polishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "text is required")
		return
	}
	if req.Kind == "" {
		req.Kind = polish.KindServiceLog
	}
	if !req.Kind.Valid() {
		writeError(w, http.StatusBadRequest, "invalid_request", "kind must be progress or request")
		return
	}

	text := h.sanitizer.Text(req.Text)
	writeJSON(w, http.StatusOK, polishResponse{Text: h.Polisher.Polish(r.Context(), text, req.Kind)})
}
