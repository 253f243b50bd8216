package authn

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/session"
	"resumevar-backend/internal/users"
)

type allowRecaptcha struct{ called bool }

func (a *allowRecaptcha) Verify(_ context.Context, _ string) error {
	a.called = true
	return nil
}

func newTestRouter(t *testing.T, recaptcha RecaptchaVerifier) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userSvc := users.NewService(users.NewMemoryRepo())
	svc := NewService(userSvc, session.NewStore(), time.Hour, recaptcha)
	h := NewHandler(svc)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterPublicRoutes(api)
	return r, svc
}

func signupBody() map[string]any {
	return map[string]any{
		"firstname": "Jordan",
		"lastname":  "Reyes",
		"username":  "jordan@example.com",
		"password":  "password123",
		"recaptcha": "tok",
		"resume": map[string]any{
			"name":      "Jordan Reyes",
			"job_title": "Backend Engineer",
			"contact":   map[string]any{"phone": "555-0100", "email": "jordan@example.com"},
			"education": map[string]any{"degree": "BSc", "university": "State", "gpa": "3.8"},
			"experience": []map[string]any{{
				"company":          "Initech",
				"location":         "Austin, TX",
				"start_date":       "2022-01",
				"end_date":         "2024-06",
				"job_title":        "Engineer",
				"environment":      "Go",
				"responsibilities": "Built the billing pipeline\nLed on-call",
			}},
		},
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignupThenLogin(t *testing.T) {
	recaptcha := &allowRecaptcha{}
	r, svc := newTestRouter(t, recaptcha)

	w := postJSON(t, r, "/api/v1/auth/signup", signupBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status %d body %s", w.Code, w.Body.String())
	}
	if !recaptcha.called {
		t.Fatal("recaptcha verifier was not consulted")
	}

	var created struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Token == "" {
		t.Fatalf("no token in %s", w.Body.String())
	}

	w = postJSON(t, r, "/api/v1/auth/login", map[string]any{
		"username": "jordan@example.com",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d body %s", w.Code, w.Body.String())
	}

	// The stored responsibilities blob was split into the canonical list.
	user, err := svc.Users.Repo.GetByUsername(context.Background(), "jordan@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got := len(user.Resume.Experience[0].Responsibilities); got != 2 {
		t.Fatalf("responsibilities %d, want 2", got)
	}
}

func TestSignupValidationErrors(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	body := signupBody()
	body["username"] = "not-an-email"
	body["password"] = "short"

	w := postJSON(t, r, "/api/v1/auth/signup", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422", w.Code)
	}

	var resp struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.Details["username"] != "Username must be a valid email address" {
		t.Fatalf("details %v", resp.Error.Details)
	}
	if resp.Error.Details["password"] != "Password must be at least 8 characters" {
		t.Fatalf("details %v", resp.Error.Details)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	if w := postJSON(t, r, "/api/v1/auth/signup", signupBody()); w.Code != http.StatusCreated {
		t.Fatalf("first signup status %d", w.Code)
	}
	if w := postJSON(t, r, "/api/v1/auth/signup", signupBody()); w.Code != http.StatusConflict {
		t.Fatalf("second signup status %d, want 409", w.Code)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := postJSON(t, r, "/api/v1/auth/login", map[string]any{
		"username": "nobody@example.com",
		"password": "whatever1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
}

func TestLogoutClearsSession(t *testing.T) {
	_, svc := newTestRouter(t, nil)
	ctx := context.Background()

	snap := drafts.UserSnapshot{
		Firstname: "Jordan",
		Username:  "jordan@example.com",
		Password:  "password123",
		Role:      session.RoleUser,
	}
	if _, err := svc.Users.CreateFromDraft(ctx, snap); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, user, err := svc.Login(ctx, "jordan@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := svc.Sessions.Get(user.ID); !ok {
		t.Fatal("no session registered after login")
	}

	svc.Logout(user.ID)
	if _, ok := svc.Sessions.Get(user.ID); ok {
		t.Fatal("session survived logout")
	}
}
