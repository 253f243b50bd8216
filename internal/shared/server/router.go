package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/analytics"
	"resumevar-backend/internal/authn"
	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/inbox"
	"resumevar-backend/internal/resumes"
	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/config"
	"resumevar-backend/internal/shared/server/middleware"
	"resumevar-backend/internal/shared/server/respond"
	"resumevar-backend/internal/users"
)

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config    config.Config
	Sessions  *session.Store
	Authn     *authn.Handler
	Google    *authn.GoogleService // nil when Google auth is not configured
	Users     *users.Handler
	Resumes   *resumes.Handler
	Inbox     *inbox.Handler
	Analytics *analytics.Handler
	Drafts    *drafts.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.Authn.RegisterPublicRoutes(api)
	deps.Inbox.RegisterPublicRoutes(api)
	if deps.Google != nil {
		deps.Google.RegisterRoutes(api)
	}

	authed := api.Group("", middleware.Auth(deps.Sessions))
	deps.Authn.RegisterRoutes(authed)
	deps.Users.RegisterRoutes(authed)
	deps.Resumes.RegisterRoutes(authed)
	deps.Inbox.RegisterRoutes(authed)
	deps.Analytics.RegisterRoutes(authed)
	deps.Drafts.RegisterRoutes(authed)

	manage := authed.Group("", middleware.RequireCapability(session.CapManageUsers))
	deps.Users.RegisterAdminRoutes(manage)

	jobsMod := authed.Group("", middleware.RequireCapability(session.CapModerateJobs))
	deps.Resumes.RegisterModerationRoutes(jobsMod)

	inboxMod := authed.Group("", middleware.RequireCapability(session.CapModerateInbox))
	deps.Inbox.RegisterModerationRoutes(inboxMod)

	adminDash := authed.Group("", middleware.RequireCapability(session.CapViewAdminDashboard))
	deps.Analytics.RegisterAdminRoutes(adminDash)

	return r
}

// rateLimits keeps the credential endpoints on a tighter bucket than the
// rest of the API.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"AUTH":    {Rate: 1, Burst: 10},
			"DEFAULT": {Rate: 20, Burst: 40},
		},
		GroupFor: func(c *gin.Context) string {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/auth/") {
				return "AUTH"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
