package drafts

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/shared/server/middleware"
	"resumevar-backend/internal/shared/server/respond"
)

// UserSubmitter persists a finished account draft.
type UserSubmitter interface {
	CreateFromDraft(ctx context.Context, snap UserSnapshot) (string, error)
	UpdateFromDraft(ctx context.Context, targetID string, snap UserSnapshot) error
}

// ResumeSubmitter persists a finished resume draft.
type ResumeSubmitter interface {
	SaveFromDraft(ctx context.Context, subject string, snap ResumeSnapshot) (string, error)
}

type Handler struct {
	Store   *Store
	Users   UserSubmitter
	Resumes ResumeSubmitter
}

func NewHandler(store *Store, users UserSubmitter, resumes ResumeSubmitter) *Handler {
	return &Handler{Store: store, Users: users, Resumes: resumes}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/drafts", h.begin)
	rg.GET("/drafts/:id", h.get)
	rg.PATCH("/drafts/:id", h.patch)
	rg.POST("/drafts/:id/submit", h.submit)
	rg.DELETE("/drafts/:id", h.discard)
}

type beginRequest struct {
	Kind     Kind     `json:"kind"`
	Mode     Mode     `json:"mode"`
	TargetID string   `json:"target_id"`
	Account  *Account `json:"account"`
	Resume   *Resume  `json:"resume"`
}

func (h *Handler) begin(c *gin.Context) {
	var req beginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Kind != KindResume && req.Kind != KindUser {
		respond.Error(c, http.StatusBadRequest, "validation_error", "kind must be resume or user", nil)
		return
	}
	if req.Mode == "" {
		req.Mode = ModeCreate
	}
	if req.Mode != ModeCreate && req.Mode != ModeUpdate {
		respond.Error(c, http.StatusBadRequest, "validation_error", "mode must be create or update", nil)
		return
	}
	if req.Mode == ModeUpdate && req.TargetID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "target_id is required in update mode", nil)
		return
	}

	subject := middleware.UserIDFromContext(c)
	draft := h.Store.Begin(subject, req.Kind, req.Mode, func(d *Draft) {
		d.TargetID = req.TargetID
		if req.Account != nil {
			d.Account = *req.Account
		}
		if req.Resume != nil {
			d.Resume = *req.Resume
		}
		if len(d.Resume.Experience) == 0 {
			d.AddExperience()
		}
	})
	respond.Created(c, draft)
}

func (h *Handler) get(c *gin.Context) {
	subject := middleware.UserIDFromContext(c)
	draft, err := h.Store.Get(subject, c.Param("id"))
	if err != nil {
		respond.StatusError(c, http.StatusNotFound)
		return
	}
	respond.OK(c, draft)
}

type patchRequest struct {
	Op        string `json:"op"`
	Path      string `json:"path"`
	Value     string `json:"value"`
	Index     int    `json:"index"`
	RespIndex int    `json:"responsibility_index"`
}

func (h *Handler) patch(c *gin.Context) {
	var req patchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	subject := middleware.UserIDFromContext(c)
	err := h.Store.Mutate(subject, c.Param("id"), func(d *Draft) error {
		switch req.Op {
		case "set":
			return d.Apply(req.Path, req.Value)
		case "add_experience":
			d.AddExperience()
			return nil
		case "remove_experience":
			return d.RemoveExperience(req.Index)
		case "add_responsibility":
			return d.AddResponsibility(req.Index)
		case "remove_responsibility":
			return d.RemoveResponsibility(req.Index, req.RespIndex)
		default:
			return errors.New("unknown op")
		}
	})
	switch {
	case errors.Is(err, ErrNotFound):
		respond.StatusError(c, http.StatusNotFound)
		return
	case errors.Is(err, ErrSubmitting):
		respond.Error(c, http.StatusConflict, "conflict", "a submit is in flight for this draft", nil)
		return
	case err != nil:
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	draft, err := h.Store.Get(subject, c.Param("id"))
	if err != nil {
		respond.StatusError(c, http.StatusNotFound)
		return
	}
	respond.OK(c, draft)
}

func (h *Handler) submit(c *gin.Context) {
	subject := middleware.UserIDFromContext(c)
	draft, err := h.Store.BeginSubmit(subject, c.Param("id"))
	switch {
	case errors.Is(err, ErrNotFound):
		respond.StatusError(c, http.StatusNotFound)
		return
	case errors.Is(err, ErrSubmitting):
		respond.Error(c, http.StatusConflict, "conflict", "a submit is in flight for this draft", nil)
		return
	}

	// Validation errors keep the draft alive with a fresh error map; no
	// persistence call is made.
	if !draft.Validate() {
		h.Store.EndSubmit(draft.ID, false, draft.Errors)
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "draft has validation errors", draft.Errors)
		return
	}

	ctx := c.Request.Context()
	switch draft.Kind {
	case KindUser:
		snap := draft.UserSnapshot()
		if draft.Mode == ModeUpdate {
			err = h.Users.UpdateFromDraft(ctx, draft.TargetID, snap)
		} else {
			_, err = h.Users.CreateFromDraft(ctx, snap)
		}
	default:
		_, err = h.Resumes.SaveFromDraft(ctx, subject, draft.ResumeSnapshot())
	}
	if err != nil {
		h.Store.EndSubmit(draft.ID, false, nil)
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to persist draft", nil)
		return
	}

	h.Store.EndSubmit(draft.ID, true, nil)
	respond.OK(c, gin.H{"submitted": true})
}

func (h *Handler) discard(c *gin.Context) {
	subject := middleware.UserIDFromContext(c)
	h.Store.Discard(subject, c.Param("id"))
	c.Status(http.StatusNoContent)
}
