package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/drafts"
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

// RegisterRoutes attaches the public identity route.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
}

// RegisterAdminRoutes attaches the back-office user management routes. The
// group must already carry the manage-users guard.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
	rg.POST("/create-user", h.create)
	rg.POST("/update-user", h.update)
	rg.POST("/remove-user", h.remove)
}

func (h *Handler) me(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"firstname": user.Firstname,
		"lastname":  user.Lastname,
		"role":      user.Role,
		"points":    user.Points,
	})
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list users", nil)
		return
	}
	respond.OK(c, gin.H{"users": users})
}

// createRequest mirrors the admin form payload. Validation runs through the
// same draft checklist the UI uses so both paths reject identically.
type createRequest struct {
	Firstname       string         `json:"firstname"`
	Lastname        string         `json:"lastname"`
	Username        string         `json:"username"`
	Password        string         `json:"password"`
	Role            string         `json:"role"`
	Points          int            `json:"points"`
	BonusPoints     int            `json:"bonus_points"`
	CompleteChange  bool           `json:"complete_change"`
	VerifiedApplier bool           `json:"verified_applier"`
	Resume          *drafts.Resume `json:"resume"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	draft := draftFromRequest(req, drafts.ModeCreate)
	if !draft.Validate() {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "user has validation errors", draft.Errors)
		return
	}

	id, err := h.Svc.CreateFromDraft(c.Request.Context(), draft.UserSnapshot())
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			respond.Error(c, http.StatusConflict, "conflict", "username already taken", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
		return
	}
	respond.Created(c, gin.H{"id": id})
}

type updateRequest struct {
	ID string `json:"id"`
	createRequest
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id is required", nil)
		return
	}

	draft := draftFromRequest(req.createRequest, drafts.ModeUpdate)
	if !draft.Validate() {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "user has validation errors", draft.Errors)
		return
	}

	err := h.Svc.UpdateFromDraft(c.Request.Context(), req.ID, draft.UserSnapshot())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update user", nil)
		return
	}
	respond.OK(c, gin.H{"updated": true})
}

func (h *Handler) remove(c *gin.Context) {
	var req struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "id is required", nil)
		return
	}
	if err := h.Svc.Remove(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.StatusError(c, http.StatusNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove user", nil)
		return
	}
	respond.OK(c, gin.H{"removed": true})
}

func draftFromRequest(req createRequest, mode drafts.Mode) *drafts.Draft {
	d := &drafts.Draft{
		Kind: drafts.KindUser,
		Mode: mode,
		Account: drafts.Account{
			Firstname:      req.Firstname,
			Lastname:       req.Lastname,
			Username:       req.Username,
			Password:       req.Password,
			Role:           session.ParseRole(req.Role),
			Points:         req.Points,
			BonusPoints:    req.BonusPoints,
			CompleteChange: req.CompleteChange,
		},
		Errors: map[string]string{},
	}
	if req.Resume != nil {
		d.Resume = *req.Resume
	}
	if req.VerifiedApplier && d.Account.Role == session.RoleApplier {
		d.Account.VerifiedApplier = true
	}
	return d
}
