package servicelog

import (
	"errors"
	"net/http"
	"time"

	"care-hub-go/internal/domain/clock"
	servicelogdomain "care-hub-go/internal/domain/servicelog"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	"care-hub-go/internal/transport/httpserver/middleware"
)

type createEntryRequest struct {
	BeneficiaryID string `json:"beneficiary_id"`
	Content       string `json:"content"`
}

// EntryResponse is the wire form of a service log entry.
type EntryResponse struct {
	ID            string    `json:"id"`
	BeneficiaryID string    `json:"beneficiary_id"`
	VolunteerID   string    `json:"volunteer_id"`
	Content       string    `json:"content"`
	Date          string    `json:"date"`
	CreatedAt     time.Time `json:"created_at"`
}

type entryListResponse struct {
	Items []EntryResponse `json:"items"`
	Total int             `json:"total"`
}

func (h *Handlers) ListEntries(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	entries, err := h.Logs.ListVisible(r.Context(), viewer)
	if err != nil {
		h.log.InternalError("servicelog.list: list entries failed", err, "user_id", viewer.ID)
		commonhandler.WriteInternal(w)
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, entryListResponse{Items: ToEntryResponses(entries), Total: len(entries)})
}

func (h *Handlers) CreateEntry(w http.ResponseWriter, r *http.Request) {
	recorder, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	var req createEntryRequest
	if err := commonhandler.DecodeJSON(r, &req); err != nil {
		commonhandler.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	entry, err := h.Logs.Record(r.Context(), recorder, req.BeneficiaryID, h.sanitizer.Text(req.Content))
	if err != nil {
		switch {
		case errors.Is(err, servicelogdomain.ErrBeneficiaryNotFound):
			h.log.BusinessError("servicelog.create: beneficiary not found", err, "user_id", recorder.ID, "beneficiary_id", req.BeneficiaryID)
			commonhandler.WriteError(w, http.StatusNotFound, "beneficiary_not_found", "beneficiary not found")
		case errors.Is(err, servicelogdomain.ErrContentRequired):
			commonhandler.WriteError(w, http.StatusBadRequest, "invalid_request", "content is required")
		default:
			h.log.InternalError("servicelog.create: record failed", err, "user_id", recorder.ID)
			commonhandler.WriteInternal(w)
		}
		return
	}

	commonhandler.WriteJSON(w, http.StatusCreated, toEntryResponse(*entry))
}

func ToEntryResponses(entries []servicelogdomain.Entry) []EntryResponse {
	items := make([]EntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toEntryResponse(entry))
	}
	return items
}

func toEntryResponse(entry servicelogdomain.Entry) EntryResponse {
	return EntryResponse{
		ID:            entry.ID,
		BeneficiaryID: entry.BeneficiaryID,
		VolunteerID:   entry.VolunteerID,
		Content:       entry.Content,
		Date:          entry.Date.Format(clock.DateLayout),
		CreatedAt:     entry.CreatedAt,
	}
}
