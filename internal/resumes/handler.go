package resumes

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

// RegisterRoutes attaches the resume generation and application routes to an
// authenticated group. Capability guards are per route since generation,
// viewing, and applying sit behind different plan tiers.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-resume", middleware.RequireCapability(session.CapGenerateResume), h.generate)
	rg.GET("/user-generated-resumes", middleware.RequireCapability(session.CapViewJobs), h.listMine)
	rg.GET("/resumes/:id/text", middleware.RequireCapability(session.CapViewJobs), h.text)
	rg.POST("/mark_applied/:id", middleware.RequireCapability(session.CapApplyJobs), h.markApplied)
}

// RegisterModerationRoutes attaches the posting moderation routes. The group
// must already carry the moderate-jobs guard.
func (h *Handler) RegisterModerationRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/jobs/:id", h.remove)
	rg.DELETE("/jobs/expire/:id", h.expire)
	rg.PATCH("/jobs/report/:id", h.report)
	rg.PATCH("/jobs/verify/:id", h.verify)
}

type generateRequest struct {
	JobDescription string `json:"job_description"`
	CompanyName    string `json:"company_name"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	userID := middleware.UserIDFromContext(c)
	rec, data, err := h.Svc.Generate(c.Request.Context(), userID, req.CompanyName, req.JobDescription)
	if err != nil {
		if errors.Is(err, ErrNoResume) {
			respond.Error(c, http.StatusConflict, "conflict", "no stored resume to generate from", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate resume", nil)
		return
	}

	c.Header("X-Resume-Id", rec.ID)
	c.Header("Content-Disposition", `attachment; filename="`+pdfFileName(rec.Company)+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) listMine(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	records, err := h.Svc.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list generated resumes", nil)
		return
	}
	respond.OK(c, gin.H{"resumes": records})
}

func (h *Handler) text(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	allowAny := middleware.RoleFromContext(c).Has(session.CapModerateJobs)
	text, err := h.Svc.Text(c.Request.Context(), userID, c.Param("id"), allowAny)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to extract resume text", nil)
		return
	}
	respond.OK(c, gin.H{"text": text})
}

func (h *Handler) markApplied(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	rec, err := h.Svc.MarkApplied(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to mark applied", nil)
		return
	}
	respond.OK(c, gin.H{"resume": rec})
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove posting", nil)
		return
	}
	respond.OK(c, gin.H{"removed": true})
}

func (h *Handler) expire(c *gin.Context) {
	rec, err := h.Svc.Expire(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to expire posting", nil)
		return
	}
	respond.OK(c, gin.H{"resume": rec})
}

func (h *Handler) report(c *gin.Context) {
	rec, err := h.Svc.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to report posting", nil)
		return
	}
	respond.OK(c, gin.H{"resume": rec})
}

func (h *Handler) verify(c *gin.Context) {
	rec, err := h.Svc.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to verify posting", nil)
		return
	}
	respond.OK(c, gin.H{"resume": rec})
}
