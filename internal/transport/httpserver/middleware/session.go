package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"care-hub-go/internal/config"
	"care-hub-go/internal/domain/directory"
	"care-hub-go/internal/domain/session"
	"care-hub-go/pkg/logger"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const userIDValue = "user_id"

type contextKey int

const userKey contextKey = iota

type CurrentIdentity interface {
	Current(ctx context.Context) (*directory.User, error)
}

// SessionAuth binds the browser to the active identity slot through a signed
// cookie holding the user id.
type SessionAuth struct {
	store    sessions.Store
	name     string
	identity CurrentIdentity
	log      logger.Logger
}

func NewSessionAuth(cfg config.SessionConfig, identity CurrentIdentity, log logger.Logger) *SessionAuth {
	secret := []byte(cfg.CookieSecret)
	if len(secret) == 0 {
		log.Warn("auth: SESSION_COOKIE_SECRET not set, cookies will not survive a restart")
		secret = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionAuth{store: store, name: cfg.CookieName, identity: identity, log: log}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.store.Get(r, a.name)
		if err != nil {
			unauthorized(w)
			return
		}
		userID, _ := sess.Values[userIDValue].(string)
		if userID == "" {
			unauthorized(w)
			return
		}

		user, err := a.identity.Current(r.Context())
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				a.log.InternalError("auth: load session failed", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			unauthorized(w)
			return
		}
		if user.ID != userID {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
	})
}

// Establish writes the cookie for user after a successful login.
func (a *SessionAuth) Establish(w http.ResponseWriter, r *http.Request, user directory.User) error {
	sess, _ := a.store.Get(r, a.name)
	sess.Values[userIDValue] = user.ID
	return sess.Save(r, w)
}

func (a *SessionAuth) Destroy(w http.ResponseWriter, r *http.Request) error {
	sess, _ := a.store.Get(r, a.name)
	delete(sess.Values, userIDValue)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized", "login required")
}

func WithUser(ctx context.Context, user directory.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (directory.User, bool) {
	user, ok := ctx.Value(userKey).(directory.User)
	if !ok || user.ID == "" {
		return directory.User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
