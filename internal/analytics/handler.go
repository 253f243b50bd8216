package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/shared/server/middleware"
	"resumevar-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the per-user dashboard.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.dashboard)
}

// RegisterAdminRoutes attaches the aggregate dashboard. The group must
// already carry the admin-dashboard guard.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/dashboard", h.adminDashboard)
}

func (h *Handler) dashboard(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	counters, err := h.Svc.Dashboard(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	respond.OK(c, gin.H{"counters": counters})
}

func (h *Handler) adminDashboard(c *gin.Context) {
	summary, err := h.Svc.AdminDashboard(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	respond.OK(c, summary)
}
