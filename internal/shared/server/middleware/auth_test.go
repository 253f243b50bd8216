package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/session"
	"resumevar-backend/internal/shared/auth"
)

func newAuthRouter(t *testing.T, sessions *session.Store) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": UserIDFromContext(c),
			"role":    RoleFromContext(c),
		})
	})
	r.GET("/admin", Auth(sessions), RequireCapability(session.CapManageUsers), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func issueToken(t *testing.T, sub, role string, sessions *session.Store) string {
	t.Helper()
	exp := time.Now().Add(time.Hour)
	token, err := auth.SignJWT(auth.Claims{Sub: sub, Role: role, Exp: exp.Unix()})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if sessions != nil {
		sessions.Set(sub, token, exp)
	}
	return token
}

func TestAuthRejectsMissingOrMalformedHeader(t *testing.T) {
	r := newAuthRouter(t, session.NewStore())

	for _, header := range []string{"", "Basic abc", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status %d, want 401", header, w.Code)
		}
	}
}

func TestAuthAcceptsRegisteredToken(t *testing.T) {
	sessions := session.NewStore()
	r := newAuthRouter(t, sessions)
	token := issueToken(t, "user-1", "admin", sessions)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsTokenAfterLogout(t *testing.T) {
	sessions := session.NewStore()
	r := newAuthRouter(t, sessions)
	token := issueToken(t, "user-1", "user", sessions)

	sessions.Clear("user-1")

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401 after logout", w.Code)
	}
}

func TestAuthRejectsSupersededToken(t *testing.T) {
	sessions := session.NewStore()
	r := newAuthRouter(t, sessions)
	oldToken := issueToken(t, "user-1", "user", sessions)

	// A later login replaces the registered token for the subject.
	sessions.Set("user-1", "replacement-token", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401 for superseded token", w.Code)
	}
}

func TestRequireCapability(t *testing.T) {
	sessions := session.NewStore()
	r := newAuthRouter(t, sessions)

	adminToken := issueToken(t, "admin-1", "admin", sessions)
	userToken := issueToken(t, "user-2", "tier3", sessions)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin status %d, want 200", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("tier3 status %d, want 403", w.Code)
	}
}
