package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	accountdomain "care-hub-go/internal/domain/account"
	"care-hub-go/internal/domain/clock"
	directorydomain "care-hub-go/internal/domain/directory"
	sessiondomain "care-hub-go/internal/domain/session"
	commonhandler "care-hub-go/internal/transport/httpserver/handler/common"
	"care-hub-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type userResponse struct {
	ID                 string  `json:"id"`
	Username           string  `json:"username"`
	Name               string  `json:"name"`
	Role               string  `json:"role"`
	Status             string  `json:"status"`
	SuspensionEndDate  *string `json:"suspension_end_date,omitempty"`
	LeaderID           string  `json:"leader_id,omitempty"`
	MustChangePassword bool    `json:"must_change_password"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	username := strings.TrimSpace(req.Username)

	user, err := h.Gate.Login(r.Context(), username, req.Password)
	if err != nil {
		var banned *sessiondomain.BannedError
		var suspended *sessiondomain.SuspendedError
		switch {
		case errors.Is(err, sessiondomain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password")
		case errors.As(err, &banned):
			commonhandler.WriteErrorDetails(w, http.StatusForbidden, "account_banned", "account is banned", map[string]string{"reason": banned.Reason})
		case errors.As(err, &suspended):
			commonhandler.WriteErrorDetails(w, http.StatusForbidden, "account_suspended", "account is suspended", map[string]string{"until": suspended.Until.Format(clock.DateLayout)})
		default:
			h.log.InternalError("auth.login: login failed", err, "username", username)
			commonhandler.WriteInternal(w)
		}
		return
	}

	if err := h.cookies.Establish(w, r, *user); err != nil {
		h.log.InternalError("auth.login: write session cookie failed", err, "user_id", user.ID)
		_ = h.Gate.Logout(r.Context())
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, h.toUserResponse(*user))
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Gate.Logout(r.Context()); err != nil {
		h.log.InternalError("auth.logout: clear session failed", err)
		commonhandler.WriteInternal(w)
		return
	}
	if err := h.cookies.Destroy(w, r); err != nil {
		h.log.InternalError("auth.logout: clear cookie failed", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me reloads the stored record; the session snapshot carries no password.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	user, err := h.Directory.GetUser(r.Context(), current.ID)
	if err != nil {
		if errors.Is(err, directorydomain.ErrUserNotFound) {
			h.log.BusinessError("auth.me: user no longer exists", err, "user_id", current.ID)
			commonhandler.WriteUnauthorized(w)
			return
		}
		h.log.InternalError("auth.me: get user failed", err, "user_id", current.ID)
		commonhandler.WriteInternal(w)
		return
	}

	writeJSON(w, http.StatusOK, h.toUserResponse(*user))
}

func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.UserFromContext(r.Context())
	if !ok {
		commonhandler.WriteUnauthorized(w)
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, err := h.Accounts.ChangePassword(r.Context(), current.ID, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, accountdomain.ErrTooShort):
			h.log.BusinessError("auth.change_password: password too short", err, "user_id", current.ID)
			message := fmt.Sprintf("password must be at least %d characters", h.Accounts.Policy().MinLength())
			writeError(w, http.StatusBadRequest, "password_too_short", message)
		case errors.Is(err, directorydomain.ErrUserNotFound):
			h.log.BusinessError("auth.change_password: user not found", err, "user_id", current.ID)
			commonhandler.WriteUnauthorized(w)
		default:
			h.log.InternalError("auth.change_password: update failed", err, "user_id", current.ID)
			commonhandler.WriteInternal(w)
		}
		return
	}

	h.log.AuthEvent("password_changed", "user_id", user.ID)
	writeJSON(w, http.StatusOK, h.toUserResponse(*user))
}

func (h *Handlers) toUserResponse(user directorydomain.User) userResponse {
	resp := userResponse{
		ID:                 user.ID,
		Username:           user.Username,
		Name:               user.Name,
		Role:               string(user.Role),
		Status:             string(user.Status),
		LeaderID:           user.LeaderID,
		MustChangePassword: h.Accounts.MustChangePassword(user),
	}
	if user.SuspensionEndDate != nil {
		end := clock.FormatDate(user.SuspensionEndDate)
		resp.SuspensionEndDate = &end
	}
	return resp
}
