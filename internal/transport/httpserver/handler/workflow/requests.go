package workflow

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"care-hub-go/internal/domain/clock"
	workflowdomain "care-hub-go/internal/domain/workflow"
	"care-hub-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type submitRequest struct {
	Type      string   `json:"type"`
	Content   string   `json:"content"`
	Amount    *float64 `json:"amount"`
	StartDate *string  `json:"start_date"`
	EndDate   *string  `json:"end_date"`
}

type decisionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type requestResponse struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Content         string     `json:"content"`
	Status          string     `json:"status"`
	ApplicantID     string     `json:"applicant_id"`
	ApproverID      *string    `json:"approver_id"`
	Amount          *float64   `json:"amount,omitempty"`
	StartDate       *string    `json:"start_date,omitempty"`
	EndDate         *string    `json:"end_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

type requestListResponse struct {
	Items   []requestResponse `json:"items"`
	Total   int               `json:"total"`
	Pending int               `json:"pending"`
}

type canApproveResponse struct {
	CanApprove bool `json:"can_approve"`
}

func (h *Handlers) ListRequests(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	items, err := h.Workflow.ListVisible(r.Context(), viewer)
	if err != nil {
		h.log.InternalError("workflow.list: list requests failed", err, "user_id", viewer.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := requestListResponse{Items: make([]requestResponse, 0, len(items))}
	for _, item := range items {
		if item.Status == workflowdomain.StatusPending {
			response.Pending++
		}
		response.Items = append(response.Items, toRequestResponse(item))
	}
	response.Total = len(response.Items)

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	applicant, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}

	request, err := h.Workflow.Submit(r.Context(), applicant, workflowdomain.SubmitInput{
		Type:      workflowdomain.Type(strings.TrimSpace(req.Type)),
		Content:   h.sanitizer.Text(req.Content),
		Amount:    req.Amount,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.writeWorkflowError(w, "workflow.submit", err, applicant.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toRequestResponse(*request))
}

func (h *Handlers) CanApprove(w http.ResponseWriter, r *http.Request) {
	approver, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	requestID := chi.URLParam(r, "requestID")
	allowed, err := h.Workflow.CanApproveByID(r.Context(), approver, requestID)
	if err != nil {
		h.writeWorkflowError(w, "workflow.can_approve", err, approver.ID, "request_id", requestID)
		return
	}

	writeJSON(w, http.StatusOK, canApproveResponse{CanApprove: allowed})
}

func (h *Handlers) DecideRequest(w http.ResponseWriter, r *http.Request) {
	approver, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	requestID := chi.URLParam(r, "requestID")
	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	decision := workflowdomain.Status(strings.TrimSpace(req.Status))
	request, err := h.Workflow.Decide(r.Context(), approver, requestID, decision, h.sanitizer.Text(req.Reason))
	if err != nil {
		h.writeWorkflowError(w, "workflow.decide", err, approver.ID, "request_id", requestID)
		return
	}

	writeJSON(w, http.StatusOK, toRequestResponse(*request))
}

func (h *Handlers) writeWorkflowError(w http.ResponseWriter, op string, err error, actorID string, args ...any) {
	args = append([]any{"user_id", actorID}, args...)

	// ErrAlreadyDecided wraps ErrForbidden, so it has to be matched first.
	status, code := 0, ""
	switch {
	case errors.Is(err, workflowdomain.ErrAlreadyDecided):
		status, code = http.StatusConflict, "already_decided"
	case errors.Is(err, workflowdomain.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, workflowdomain.ErrRequestNotFound):
		status, code = http.StatusNotFound, "request_not_found"
	case errors.Is(err, workflowdomain.ErrInvalidDecision),
		errors.Is(err, workflowdomain.ErrInvalidType),
		errors.Is(err, workflowdomain.ErrContentRequired),
		errors.Is(err, workflowdomain.ErrAmountRequired),
		errors.Is(err, workflowdomain.ErrEndDateRequired),
		errors.Is(err, workflowdomain.ErrInvalidDateRange):
		status, code = http.StatusBadRequest, "invalid_request"
	}

	if code == "" {
		h.log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	h.log.BusinessError(op+": rejected", err, args...)
	writeError(w, status, code, err.Error())
}

func toRequestResponse(request workflowdomain.Request) requestResponse {
	resp := requestResponse{
		ID:          request.ID,
		Type:        string(request.Type),
		Content:     request.Content,
		Status:      string(request.Status),
		ApplicantID: request.ApplicantID,
		Amount:      request.Amount,
		CreatedAt:   request.CreatedAt,
		DecidedAt:   request.DecidedAt,
	}
	if request.ApproverID != "" {
		approver := request.ApproverID
		resp.ApproverID = &approver
	}
	if request.StartDate != nil {
		start := clock.FormatDate(request.StartDate)
		resp.StartDate = &start
	}
	if request.EndDate != nil {
		end := clock.FormatDate(request.EndDate)
		resp.EndDate = &end
	}
	if request.Status == workflowdomain.StatusRejected {
		reason := request.RejectionReason
		resp.RejectionReason = &reason
	}
	return resp
}
