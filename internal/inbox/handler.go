package inbox

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/server/middleware"
	"resumevar-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated contact form.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.submit(KindContact))
}

// RegisterRoutes attaches the authenticated intake forms. Demo bookings and
// download requests are tier features.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/book-demo", middleware.RequireCapability(session.CapBookDemo), h.submit(KindDemo))
	rg.POST("/request-download", middleware.RequireCapability(session.CapRequestDownload), h.submit(KindDownload))
}

// RegisterModerationRoutes attaches the back-office listing and moderation
// routes. The group must already carry the moderate-inbox guard.
func (h *Handler) RegisterModerationRoutes(rg *gin.RouterGroup) {
	rg.GET("/demos", h.list(KindDemo))
	rg.PATCH("/demos/:id", h.moderate(KindDemo))
	rg.GET("/contacts", h.list(KindContact))
	rg.PATCH("/contacts/:id", h.moderate(KindContact))
	rg.GET("/download-requests", h.list(KindDownload))
	rg.PATCH("/download-requests/:id", h.moderate(KindDownload))
}

type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
}

func (h *Handler) submit(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}

		entry, errs := h.Svc.Submit(c.Request.Context(), kind, Submission{
			Subject: middleware.UserIDFromContext(c),
			Name:    req.Name,
			Email:   req.Email,
			Company: req.Company,
			Message: req.Message,
		})
		if len(errs) > 0 {
			if _, failed := errs["_"]; failed {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save submission", nil)
				return
			}
			respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "submission has validation errors", errs)
			return
		}
		respond.Created(c, gin.H{"id": entry.ID, "status": entry.Status})
	}
}

func (h *Handler) list(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := h.Svc.List(c.Request.Context(), kind)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list entries", nil)
			return
		}
		respond.OK(c, gin.H{"entries": entries})
	}
}

func (h *Handler) moderate(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
		status, ok := ParseStatus(req.Status)
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown status", nil)
			return
		}

		entry, err := h.Svc.Moderate(c.Request.Context(), kind, c.Param("id"), status, middleware.UserIDFromContext(c))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				respond.StatusError(c, http.StatusNotFound)
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update entry", nil)
			return
		}
		respond.OK(c, gin.H{"entry": entry})
	}
}
