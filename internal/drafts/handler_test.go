package drafts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeResumeSubmitter struct {
	saved   []ResumeSnapshot
	failing bool
}

func (f *fakeResumeSubmitter) SaveFromDraft(_ context.Context, subject string, snap ResumeSnapshot) (string, error) {
	if f.failing {
		return "", fmt.Errorf("store down")
	}
	f.saved = append(f.saved, snap)
	return subject, nil
}

type fakeUserSubmitter struct {
	created []UserSnapshot
	updated map[string]UserSnapshot
}

func (f *fakeUserSubmitter) CreateFromDraft(_ context.Context, snap UserSnapshot) (string, error) {
	f.created = append(f.created, snap)
	return "new-id", nil
}

func (f *fakeUserSubmitter) UpdateFromDraft(_ context.Context, targetID string, snap UserSnapshot) error {
	if f.updated == nil {
		f.updated = map[string]UserSnapshot{}
	}
	f.updated[targetID] = snap
	return nil
}

func newDraftRouter(resumes *fakeResumeSubmitter, users *fakeUserSubmitter) (*gin.Engine, *Store) {
	gin.SetMode(gin.TestMode)
	store := NewStore()
	h := NewHandler(store, users, resumes)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", "user-1")
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func beginResumeDraft(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]any{"kind": "resume"})
	if w.Code != http.StatusCreated {
		t.Fatalf("begin status %d body %s", w.Code, w.Body.String())
	}
	var draft Draft
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if draft.ID == "" {
		t.Fatal("no draft id")
	}
	return draft.ID
}

func TestBeginSeedsEmptyExperience(t *testing.T) {
	r, store := newDraftRouter(&fakeResumeSubmitter{}, &fakeUserSubmitter{})

	id := beginResumeDraft(t, r)
	draft, err := store.Get("user-1", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(draft.Resume.Experience) != 1 {
		t.Fatalf("experience entries %d, want 1", len(draft.Resume.Experience))
	}
}

func TestBeginRejectsUnknownKind(t *testing.T) {
	r, _ := newDraftRouter(&fakeResumeSubmitter{}, &fakeUserSubmitter{})

	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts", map[string]any{"kind": "job"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
}

func TestPatchSetAndStructuralOps(t *testing.T) {
	r, store := newDraftRouter(&fakeResumeSubmitter{}, &fakeUserSubmitter{})
	id := beginResumeDraft(t, r)

	sets := map[string]string{
		"name":                "Jordan Reyes",
		"contact.email":       "jordan@example.com",
		"experience.0.company": "Initech",
	}
	for path, value := range sets {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/drafts/"+id, map[string]any{
			"op": "set", "path": path, "value": value,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("set %s status %d body %s", path, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodPatch, "/api/v1/drafts/"+id, map[string]any{"op": "add_experience"})
	if w.Code != http.StatusOK {
		t.Fatalf("add_experience status %d", w.Code)
	}

	draft, err := store.Get("user-1", id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if draft.Resume.Name != "Jordan Reyes" || draft.Resume.Experience[0].Company != "Initech" {
		t.Fatalf("patched draft %+v", draft.Resume)
	}
	if len(draft.Resume.Experience) != 2 {
		t.Fatalf("experience entries %d, want 2", len(draft.Resume.Experience))
	}

	w = doJSON(t, r, http.MethodPatch, "/api/v1/drafts/"+id, map[string]any{
		"op": "set", "path": "experience.9.company", "value": "x",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range set status %d, want 400", w.Code)
	}
}

func TestSubmitValidationErrorsKeepDraft(t *testing.T) {
	r, store := newDraftRouter(&fakeResumeSubmitter{}, &fakeUserSubmitter{})
	id := beginResumeDraft(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts/"+id+"/submit", nil)
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
	if resp.Error.Details["name"] == "" {
		t.Fatalf("expected a name error, details %v", resp.Error.Details)
	}

	// A failed submit leaves the draft editable.
	if _, err := store.Get("user-1", id); err != nil {
		t.Fatalf("draft gone after failed submit: %v", err)
	}
	w = doJSON(t, r, http.MethodPatch, "/api/v1/drafts/"+id, map[string]any{
		"op": "set", "path": "name", "value": "Jordan Reyes",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch after failed submit status %d", w.Code)
	}
}

func TestSubmitResumeDraft(t *testing.T) {
	resumes := &fakeResumeSubmitter{}
	r, store := newDraftRouter(resumes, &fakeUserSubmitter{})
	id := beginResumeDraft(t, r)

	fill := map[string]string{
		"name":                          "Jordan Reyes",
		"job_title":                     "Backend Engineer",
		"contact.phone":                 "555-0100",
		"contact.email":                 "jordan@example.com",
		"education.degree":              "BSc",
		"education.university":          "State",
		"education.gpa":                 "3.8",
		"experience.0.company":          "Initech",
		"experience.0.location":         "Austin, TX",
		"experience.0.start_date":       "2022-01",
		"experience.0.end_date":         "2024-06",
		"experience.0.job_title":        "Engineer",
		"experience.0.environment":      "Go",
		"experience.0.responsibilities.0": "Built the billing pipeline",
	}
	for path, value := range fill {
		w := doJSON(t, r, http.MethodPatch, "/api/v1/drafts/"+id, map[string]any{
			"op": "set", "path": path, "value": value,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("set %s status %d body %s", path, w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/drafts/"+id+"/submit", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("submit status %d body %s", w.Code, w.Body.String())
	}
	if len(resumes.saved) != 1 {
		t.Fatalf("saved snapshots %d, want 1", len(resumes.saved))
	}
	if resumes.saved[0].Experience[0].Company != "Initech" {
		t.Fatalf("snapshot %+v", resumes.saved[0])
	}

	// A successful submit retires the draft.
	if _, err := store.Get("user-1", id); err == nil {
		t.Fatal("draft survived successful submit")
	}
}

func TestDraftsAreScopedToSubject(t *testing.T) {
	r, store := newDraftRouter(&fakeResumeSubmitter{}, &fakeUserSubmitter{})
	id := beginResumeDraft(t, r)

	if _, err := store.Get("other-user", id); err == nil {
		t.Fatal("draft readable by a different subject")
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/drafts/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner get status %d", w.Code)
	}
}

func TestDiscard(t *testing.T) {
	r, store := newDraftRouter(&fakeResumeSubmitter{}, &fakeUserSubmitter{})
	id := beginResumeDraft(t, r)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/drafts/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("discard status %d", w.Code)
	}
	if _, err := store.Get("user-1", id); err == nil {
		t.Fatal("draft survived discard")
	}
}
