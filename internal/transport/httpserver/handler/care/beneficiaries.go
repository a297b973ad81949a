package care

import (
	"errors"
	"net/http"
	"strings"
	"time"

	caredomain "care-hub-go/internal/domain/care"
	"care-hub-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createBeneficiaryRequest struct {
	Name                string `json:"name"`
	Info                string `json:"info"`
	AssignedVolunteerID string `json:"assigned_volunteer_id"`
}

type updateBeneficiaryRequest struct {
	Name *string `json:"name"`
	Info *string `json:"info"`
}

// A null or empty volunteer_id clears the assignment.
type assignmentRequest struct {
	VolunteerID *string `json:"volunteer_id"`
}

type beneficiaryResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Info                string    `json:"info"`
	AssignedVolunteerID *string   `json:"assigned_volunteer_id"`
	CreatedAt           time.Time `json:"created_at"`
}

type beneficiaryListResponse struct {
	Items []beneficiaryResponse `json:"items"`
	Total int                   `json:"total"`
}

func (h *Handlers) ListBeneficiaries(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	items, err := h.Care.ListVisible(r.Context(), viewer)
	if err != nil {
		h.log.InternalError("care.list: list beneficiaries failed", err, "user_id", viewer.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]beneficiaryResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toBeneficiaryResponse(item))
	}
	writeJSON(w, http.StatusOK, beneficiaryListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) GetBeneficiary(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	id := chi.URLParam(r, "beneficiaryID")
	beneficiary, err := h.Care.Get(r.Context(), viewer, id)
	if err != nil {
		h.writeCareError(w, "care.get", err, viewer.ID, "beneficiary_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBeneficiaryResponse(*beneficiary))
}

func (h *Handlers) CreateBeneficiary(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	var req createBeneficiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	beneficiary, err := h.Care.CreateBeneficiary(r.Context(), actor, caredomain.CreateInput{
		Name:                h.sanitizer.Text(req.Name),
		Info:                h.sanitizer.Text(req.Info),
		AssignedVolunteerID: req.AssignedVolunteerID,
	})
	if err != nil {
		h.writeCareError(w, "care.create", err, actor.ID)
		return
	}
	writeJSON(w, http.StatusCreated, toBeneficiaryResponse(*beneficiary))
}

func (h *Handlers) UpdateBeneficiary(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	id := chi.URLParam(r, "beneficiaryID")
	var req updateBeneficiaryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	beneficiary, err := h.Care.UpdateBeneficiary(r.Context(), actor, id, caredomain.Patch{
		Name: h.sanitizer.TextPtr(req.Name),
		Info: h.sanitizer.TextPtr(req.Info),
	})
	if err != nil {
		h.writeCareError(w, "care.update", err, actor.ID, "beneficiary_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBeneficiaryResponse(*beneficiary))
}

func (h *Handlers) AssignVolunteer(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	id := chi.URLParam(r, "beneficiaryID")
	var req assignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.VolunteerID != nil && strings.TrimSpace(*req.VolunteerID) == "" {
		req.VolunteerID = nil
	}

	beneficiary, err := h.Care.Assign(r.Context(), actor, id, req.VolunteerID)
	if err != nil {
		h.writeCareError(w, "care.assign", err, actor.ID, "beneficiary_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toBeneficiaryResponse(*beneficiary))
}

func (h *Handlers) writeCareError(w http.ResponseWriter, op string, err error, actorID string, args ...any) {
	args = append([]any{"user_id", actorID}, args...)
	switch {
	case errors.Is(err, caredomain.ErrForbidden):
		h.log.BusinessError(op+": forbidden", err, args...)
		writeError(w, http.StatusForbidden, "forbidden", "admins and leaders only")
	case errors.Is(err, caredomain.ErrBeneficiaryNotFound):
		h.log.BusinessError(op+": beneficiary not found", err, args...)
		writeError(w, http.StatusNotFound, "beneficiary_not_found", "beneficiary not found")
	case errors.Is(err, caredomain.ErrVolunteerNotFound):
		h.log.BusinessError(op+": volunteer not found", err, args...)
		writeError(w, http.StatusBadRequest, "volunteer_not_found", "volunteer not found")
	case errors.Is(err, caredomain.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
	default:
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toBeneficiaryResponse(b caredomain.Beneficiary) beneficiaryResponse {
	resp := beneficiaryResponse{
		ID:        b.ID,
		Name:      b.Name,
		Info:      b.Info,
		CreatedAt: b.CreatedAt,
	}
	if b.AssignedVolunteerID != "" {
		assigned := b.AssignedVolunteerID
		resp.AssignedVolunteerID = &assigned
	}
	return resp
}
