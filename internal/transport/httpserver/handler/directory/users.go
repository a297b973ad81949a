package directory

import (
	"errors"
	"net/http"
	"strings"

	"care-hub-go/internal/domain/clock"
	directorydomain "care-hub-go/internal/domain/directory"
	"care-hub-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	LeaderID string `json:"leader_id"`
}

type updateUserRequest struct {
	Name              *string `json:"name"`
	Role              *string `json:"role"`
	Status            *string `json:"status"`
	SuspensionEndDate *string `json:"suspension_end_date"`
	BanReason         *string `json:"ban_reason"`
	LeaderID          *string `json:"leader_id"`
}

type userResponse struct {
	ID                string  `json:"id"`
	Username          string  `json:"username"`
	Name              string  `json:"name"`
	Role              string  `json:"role"`
	Status            string  `json:"status"`
	SuspensionEndDate *string `json:"suspension_end_date"`
	BanReason         string  `json:"ban_reason,omitempty"`
	LeaderID          string  `json:"leader_id,omitempty"`
	TeamSize          *int    `json:"team_size,omitempty"`
}

type userListResponse struct {
	Items []userResponse `json:"items"`
	Total int            `json:"total"`
}

type nextUsernameResponse struct {
	Username string `json:"username"`
}

func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	viewer, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	all, err := h.Directory.ListUsers(r.Context())
	if err != nil {
		h.log.InternalError("directory.list_users: list users failed", err, "user_id", viewer.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	visible := directorydomain.VisibleTo(viewer, all)
	items := make([]userResponse, 0, len(visible))
	for _, user := range visible {
		resp := toUserResponse(user)
		if user.IsLeader() {
			size := directorydomain.CountTeam(all, user.ID, "")
			resp.TeamSize = &size
		}
		items = append(items, resp)
	}

	writeJSON(w, http.StatusOK, userListResponse{Items: items, Total: len(items)})
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Directory.CreateUser(r.Context(), actor, directorydomain.CreateUserInput{
		Name:     h.sanitizer.Text(req.Name),
		Role:     directorydomain.Role(strings.TrimSpace(req.Role)),
		LeaderID: req.LeaderID,
	})
	if err != nil {
		h.writeDirectoryError(w, "directory.create_user", err, actor.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(*user))
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}

	userID := chi.URLParam(r, "userID")
	if strings.TrimSpace(userID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "user id is required")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	endDate, err := parseDatePtr(req.SuspensionEndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid suspension_end_date")
		return
	}

	patch := directorydomain.UserPatch{
		Name:              h.sanitizer.TextPtr(req.Name),
		SuspensionEndDate: endDate,
		BanReason:         h.sanitizer.TextPtr(req.BanReason),
		LeaderID:          req.LeaderID,
	}
	if req.Role != nil {
		role := directorydomain.Role(strings.TrimSpace(*req.Role))
		patch.Role = &role
	}
	if req.Status != nil {
		status := directorydomain.Status(strings.TrimSpace(*req.Status))
		patch.Status = &status
	}

	user, err := h.Directory.UpdateUser(r.Context(), actor, userID, patch)
	if err != nil {
		h.writeDirectoryError(w, "directory.update_user", err, actor.ID, "target_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

func (h *Handlers) NextUsername(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
		return
	}
	if !actor.IsAdmin() {
		writeError(w, http.StatusForbidden, "forbidden", "admin only")
		return
	}

	username, err := h.Directory.NextUsername(r.Context())
	if err != nil {
		h.log.InternalError("directory.next_username: compute failed", err, "user_id", actor.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, nextUsernameResponse{Username: username})
}

func (h *Handlers) writeDirectoryError(w http.ResponseWriter, op string, err error, actorID string, args ...any) {
	args = append([]any{"user_id", actorID}, args...)

	status, code := http.StatusInternalServerError, ""
	switch {
	case errors.Is(err, directorydomain.ErrForbidden):
		status, code = http.StatusForbidden, "forbidden"
	case errors.Is(err, directorydomain.ErrUserNotFound):
		status, code = http.StatusNotFound, "user_not_found"
	case errors.Is(err, directorydomain.ErrLeaderNotFound):
		status, code = http.StatusBadRequest, "leader_not_found"
	case errors.Is(err, directorydomain.ErrInvalidLeader):
		status, code = http.StatusBadRequest, "invalid_leader"
	case errors.Is(err, directorydomain.ErrTeamFull):
		status, code = http.StatusConflict, "team_full"
	case errors.Is(err, directorydomain.ErrDuplicateUsername):
		status, code = http.StatusConflict, "duplicate_username"
	case errors.Is(err, directorydomain.ErrLeaderHasTeam):
		status, code = http.StatusConflict, "leader_has_team"
	case errors.Is(err, directorydomain.ErrInvalidRole):
		status, code = http.StatusBadRequest, "invalid_role"
	case errors.Is(err, directorydomain.ErrInvalidStatus):
		status, code = http.StatusBadRequest, "invalid_status"
	case errors.Is(err, directorydomain.ErrNameRequired),
		errors.Is(err, directorydomain.ErrSuspensionEndRequired):
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

func toUserResponse(user directorydomain.User) userResponse {
	resp := userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		Role:      string(user.Role),
		Status:    string(user.Status),
		BanReason: user.BanReason,
		LeaderID:  user.LeaderID,
	}
	if user.SuspensionEndDate != nil {
		end := clock.FormatDate(user.SuspensionEndDate)
		resp.SuspensionEndDate = &end
	}
	return resp
}
