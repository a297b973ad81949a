package directory

import (
	"errors"
	"net/http"

	directorydomain "care-hub-go/internal/domain/directory"
	"care-hub-go/internal/transport/httpserver/middleware"
)

type teamResponse struct {
	Leader   userResponse   `json:"leader"`
	Members  []userResponse `json:"members"`
	Size     int            `json:"size"`
	Capacity int            `json:"capacity"`
	Full     bool           `json:"full"`
}

type orgChartResponse struct {
	Admins     []userResponse `json:"admins"`
	Teams      []teamResponse `json:"teams"`
	Unassigned []userResponse `json:"unassigned"`
}

func (h *Handlers) OrgChart(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	chart, err := h.Directory.OrgChart(r.Context(), viewer)
	if err != nil {
		if errors.Is(err, directorydomain.ErrForbidden) {
			h.log.BusinessError("directory.org_chart: forbidden", err, "user_id", viewer.ID)
			writeError(w, http.StatusForbidden, "forbidden", "admin only")
			return
		}
		h.log.InternalError("directory.org_chart: build failed", err, "user_id", viewer.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	resp := orgChartResponse{
		Admins:     toUserResponses(chart.Admins),
		Teams:      make([]teamResponse, 0, len(chart.Teams)),
		Unassigned: toUserResponses(chart.Unassigned),
	}
	for _, team := range chart.Teams {
		resp.Teams = append(resp.Teams, teamResponse{
			Leader:   toUserResponse(team.Leader),
			Members:  toUserResponses(team.Members),
			Size:     team.Size,
			Capacity: directorydomain.MaxTeamSize,
			Full:     team.Full,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func toUserResponses(users []directorydomain.User) []userResponse {
	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	return items
}
