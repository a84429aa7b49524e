package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tasknest/tasknest-go/internal/middleware"
)

// Routes groups the handlers and session settings mounted by NewRouter.
type Routes struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Tasks     *TaskHandler
	Dashboard *DashboardHandler

	Verifier   middleware.TokenVerifier
	CookieName string
	LoginPath  string
}

// NewRouter builds the HTTP router. API routes answer 401 without a session;
// the dashboard redirects to the login page instead.
func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/auth/register", rt.Auth.HandleRegister)
	r.Post("/auth/login", rt.Auth.HandleLogin)
	r.Post("/auth/logout", rt.Auth.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(rt.Verifier, rt.CookieName, middleware.RejectUnauthorized))
		r.Get("/auth/me", rt.Profile.HandleGetMe)
		r.Put("/auth/me", rt.Profile.HandleUpdateMe)

		r.Get("/tasks", rt.Tasks.HandleList)
		r.Post("/tasks", rt.Tasks.HandleCreate)
		r.Delete("/tasks", rt.Tasks.HandleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(rt.Verifier, rt.CookieName, middleware.RedirectTo(rt.LoginPath)))
		r.Get("/dashboard", rt.Dashboard.HandleDashboard)
	})

	return r
}
