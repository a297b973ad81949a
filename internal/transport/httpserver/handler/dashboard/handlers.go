package dashboard

import (
	"net/http"

	dashboarddomain "care-hub-go/internal/domain/dashboard"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	servicelogs "care-hub-go/internal/transport/httpserver/handler/servicelog"
	"care-hub-go/internal/transport/httpserver/middleware"
	"care-hub-go/pkg/logger"
)

type Handlers struct {
	Dashboard *dashboarddomain.Service
	log       logger.Logger
}

func New(dashboard *dashboarddomain.Service, log logger.Logger) *Handlers {
	return &Handlers{Dashboard: dashboard, log: log}
}

type summaryResponse struct {
	Beneficiaries   int                         `json:"beneficiaries"`
	AssignedToMe    int                         `json:"assigned_to_me"`
	PendingRequests int                         `json:"pending_requests"`
	ServiceLogs     int                         `json:"service_logs"`
	RecentLogs      []servicelogs.EntryResponse `json:"recent_logs"`
}

func (h *Handlers) Summary(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	summary, err := h.Dashboard.Summary(r.Context(), viewer)
	if err != nil {
		h.log.InternalError("dashboard.summary: build failed", err, "user_id", viewer.ID)
		commonhandler.WriteInternal(w)
		return
	}

	commonhandler.WriteJSON(w, http.StatusOK, summaryResponse{
		Beneficiaries:   summary.Beneficiaries,
		AssignedToMe:    summary.AssignedToMe,
		PendingRequests: summary.PendingRequests,
		ServiceLogs:     summary.ServiceLogs,
		RecentLogs:      servicelogs.ToEntryResponses(summary.RecentLogs),
	})
}
