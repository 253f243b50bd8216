package authn

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/server/middleware"
	"resumevar-backend/internal/shared/server/respond"
	"resumevar-backend/internal/users"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches routes reachable without a session.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/signup", h.signup)
}

// RegisterRoutes attaches routes requiring an authenticated session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.logout)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	token, user, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrBadCredentials) {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid username or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to log in", nil)
		return
	}

	respond.OK(c, gin.H{
		"token":     token,
		"role":      user.Role,
		"firstname": user.Firstname,
	})
}

// signupRequest is the public account form. Responsibilities arrive as a
// single text blob on this surface; it is split into the canonical list
// before validation.
type signupRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Recaptcha string `json:"recaptcha"`
	Resume    struct {
		Name       string           `json:"name"`
		JobTitle   string           `json:"job_title"`
		Contact    drafts.Contact   `json:"contact"`
		Education  drafts.Education `json:"education"`
		Experience []struct {
			Company          string `json:"company"`
			Location         string `json:"location"`
			StartDate        string `json:"start_date"`
			EndDate          string `json:"end_date"`
			JobTitle         string `json:"job_title"`
			Environment      string `json:"environment"`
			Responsibilities string `json:"responsibilities"`
		} `json:"experience"`
	} `json:"resume"`
}

func (h *Handler) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	draft := &drafts.Draft{
		Kind:   drafts.KindUser,
		Mode:   drafts.ModeCreate,
		Signup: true,
		Account: drafts.Account{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Username:  req.Username,
			Password:  req.Password,
			Role:      session.RoleUser,
		},
		Resume: drafts.Resume{
			Name:      req.Resume.Name,
			JobTitle:  req.Resume.JobTitle,
			Contact:   req.Resume.Contact,
			Education: req.Resume.Education,
		},
		Errors: map[string]string{},
	}
	for _, exp := range req.Resume.Experience {
		draft.Resume.Experience = append(draft.Resume.Experience, drafts.Experience{
			Company:          exp.Company,
			Location:         exp.Location,
			StartDate:        exp.StartDate,
			EndDate:          exp.EndDate,
			JobTitle:         exp.JobTitle,
			Environment:      exp.Environment,
			Responsibilities: drafts.SplitResponsibilities(exp.Responsibilities),
		})
	}

	if !draft.Validate() {
		respond.Error(c, http.StatusUnprocessableEntity, "validation_error", "signup has validation errors", draft.Errors)
		return
	}

	token, err := h.Svc.Signup(c.Request.Context(), draft.UserSnapshot(), req.Recaptcha)
	if err != nil {
		switch {
		case errors.Is(err, ErrRecaptchaFailed):
			respond.Error(c, http.StatusBadRequest, "validation_error", "recaptcha verification failed", nil)
		case errors.Is(err, users.ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "conflict", "username already taken", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign up", nil)
		}
		return
	}

	respond.Created(c, gin.H{"token": token})
}

func (h *Handler) logout(c *gin.Context) {
	h.Svc.Logout(middleware.UserIDFromContext(c))
	respond.OK(c, gin.H{"loggedOut": true})
}
