package httpserver

import (
	"net/http"
	"time"

	"care-hub-go/internal/config"
	"care-hub-go/internal/transport/httpserver/handler"
	authmw "care-hub-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, sessions *authmw.SessionAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Common.Health)
		r.Post("/auth/login", handlers.Auth.Login)
		r.Post("/auth/logout", handlers.Auth.Logout)

		r.Group(func(r chi.Router) {
			r.Use(sessions.Middleware)

			r.Get("/auth/me", handlers.Auth.Me)
			r.Post("/auth/password", handlers.Auth.ChangePassword)

			r.Get("/dashboard", handlers.Dashboard.Summary)
			r.Post("/polish", handlers.Common.Polish)

			r.Get("/users", handlers.Directory.ListUsers)
			r.Post("/users", handlers.Directory.CreateUser)
			r.Get("/users/next-username", handlers.Directory.NextUsername)
			r.Patch("/users/{userID}", handlers.Directory.UpdateUser)
			r.Get("/org-chart", handlers.Directory.OrgChart)

			r.Get("/beneficiaries", handlers.Care.ListBeneficiaries)
			r.Post("/beneficiaries", handlers.Care.CreateBeneficiary)
			r.Get("/beneficiaries/{beneficiaryID}", handlers.Care.GetBeneficiary)
			r.Patch("/beneficiaries/{beneficiaryID}", handlers.Care.UpdateBeneficiary)
			r.Put("/beneficiaries/{beneficiaryID}/assignment", handlers.Care.AssignVolunteer)

			r.Get("/requests", handlers.Workflow.ListRequests)
			r.Post("/requests", handlers.Workflow.SubmitRequest)
			r.Get("/requests/{requestID}/can-approve", handlers.Workflow.CanApprove)
			r.Post("/requests/{requestID}/decision", handlers.Workflow.DecideRequest)

			r.Get("/service-logs", handlers.Logs.ListEntries)
			r.Post("/service-logs", handlers.Logs.CreateEntry)
		})
	})

	return r
}
