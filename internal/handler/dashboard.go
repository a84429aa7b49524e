package handler

import (
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest-go/internal/middleware"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/service"
)

// DashboardHandler serves the signed-in landing view.
type DashboardHandler struct {
	profiles *service.ProfileService
	tasks    *service.TaskService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(profiles *service.ProfileService, tasks *service.TaskService) *DashboardHandler {
	return &DashboardHandler{profiles: profiles, tasks: tasks}
}

// HandleDashboard handles GET /dashboard requests.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	user, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeProfileError(w, r, err)
		return
	}

	tasks, err := h.tasks.List(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "loading dashboard tasks failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.DashboardResponse{User: user, Tasks: tasks})
}
