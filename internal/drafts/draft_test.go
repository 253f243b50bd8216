package drafts

import (
	"encoding/json"
	"strings"
	"testing"

	"resumevar-backend/internal/session"
)

func validResumeDraft() *Draft {
	return &Draft{
		Kind: KindResume,
		Mode: ModeCreate,
		Resume: Resume{
			Name:      "Ada Lovelace",
			JobTitle:  "Software Engineer",
			Contact:   Contact{Phone: "555-0100", Email: "ada@example.com"},
			Education: Education{Degree: "BSc", University: "State", GPA: "3.9"},
			Experience: []Experience{{
				Company:          "Analytical Engines",
				Location:         "London",
				StartDate:        "2021-01-01",
				EndDate:          "2023-01-01",
				JobTitle:         "Engineer",
				Environment:      "Go, Postgres",
				Responsibilities: []string{"Built the number mill"},
			}},
		},
		Errors: map[string]string{},
	}
}

func validUserDraft() *Draft {
	d := validResumeDraft()
	d.Kind = KindUser
	d.Account = Account{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Username:  "ada@example.com",
		Password:  "longenough",
		Role:      session.RoleUser,
	}
	return d
}

func TestValidDraftPassesValidation(t *testing.T) {
	d := validUserDraft()
	if !d.Validate() {
		t.Fatalf("expected valid draft, errors: %v", d.Errors)
	}
	if len(d.Errors) != 0 {
		t.Fatalf("error map must be empty, got %v", d.Errors)
	}
}

func TestSingleMissingFieldBlocksSubmitWithOnlyThatError(t *testing.T) {
	d := validUserDraft()
	d.Resume.Education.GPA = ""

	if d.Validate() {
		t.Fatal("expected invalid draft")
	}
	if len(d.Errors) != 1 {
		t.Fatalf("expected exactly one error, got %v", d.Errors)
	}
	if _, ok := d.Errors["education.gpa"]; !ok {
		t.Fatalf("expected education.gpa error, got %v", d.Errors)
	}
}

func TestEndBeforeStartProducesSpecificMessage(t *testing.T) {
	d := validResumeDraft()
	d.Resume.Experience[0].StartDate = "2023-01-01"
	d.Resume.Experience[0].EndDate = "2022-01-01"

	d.Validate()
	msg := d.Errors["experience.0.end_date"]
	if !strings.Contains(msg, "before start") {
		t.Fatalf("expected end-before-start message, got %q", msg)
	}
}

func TestValidateReplacesErrorMapWholesale(t *testing.T) {
	d := validResumeDraft()
	d.Errors["experience.9.company"] = "stale"

	d.Validate()
	if _, ok := d.Errors["experience.9.company"]; ok {
		t.Fatal("stale error survived a validation pass")
	}
}

func TestRemoveExperienceClearsStaleErrorPaths(t *testing.T) {
	d := validResumeDraft()
	d.AddExperience() // second, empty entry at index 1

	d.Validate()
	if _, ok := d.Errors["experience.1.company"]; !ok {
		t.Fatalf("expected errors on the empty entry, got %v", d.Errors)
	}

	if err := d.RemoveExperience(1); err != nil {
		t.Fatalf("RemoveExperience: %v", err)
	}
	if len(d.Resume.Experience) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(d.Resume.Experience))
	}
	for key := range d.Errors {
		if strings.HasPrefix(key, "experience.") {
			t.Fatalf("stale experience error after removal: %q", key)
		}
	}

	if !d.Validate() {
		t.Fatalf("remaining entry should validate, errors: %v", d.Errors)
	}
}

func TestApplyExperienceIsCopyOnWrite(t *testing.T) {
	d := validResumeDraft()
	before := d.Resume.Experience

	if err := d.Apply("experience.0.company", "Babbage & Co"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if before[0].Company != "Analytical Engines" {
		t.Fatal("earlier slice observed the write")
	}
	if d.Resume.Experience[0].Company != "Babbage & Co" {
		t.Fatal("write lost")
	}
}

func TestApplyResponsibilityIsCopyOnWrite(t *testing.T) {
	d := validResumeDraft()
	before := d.Resume.Experience[0].Responsibilities

	if err := d.Apply("experience.0.responsibilities.0", "Rewired the mill"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if before[0] != "Built the number mill" {
		t.Fatal("earlier slice observed the write")
	}
}

func TestApplyRejectsBadPaths(t *testing.T) {
	d := validResumeDraft()
	for _, path := range []string{"experience.5.company", "experience.0.bogus", "contact.fax", "nope", "experience.0.responsibilities.7"} {
		if err := d.Apply(path, "x"); err == nil {
			t.Errorf("Apply(%q) must fail", path)
		}
	}
}

func TestRoleChangeResetsVerifiedApplier(t *testing.T) {
	d := validUserDraft()
	if err := d.Apply("role", "applier"); err != nil {
		t.Fatalf("Apply role: %v", err)
	}
	if err := d.Apply("verified_applier", "true"); err != nil {
		t.Fatalf("Apply verified_applier: %v", err)
	}
	if !d.Account.VerifiedApplier {
		t.Fatal("verified_applier should be set for applier")
	}

	if err := d.Apply("role", "tier2"); err != nil {
		t.Fatalf("Apply role: %v", err)
	}
	if d.Account.VerifiedApplier {
		t.Fatal("verified_applier must reset when role leaves applier")
	}
}

func TestVerifiedApplierIgnoredForNonApplier(t *testing.T) {
	d := validUserDraft()
	if err := d.Apply("verified_applier", "true"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if d.Account.VerifiedApplier {
		t.Fatal("verified_applier must stay false for non-applier roles")
	}
}

func TestSnapshotTrimsAndFiltersResponsibilities(t *testing.T) {
	d := validResumeDraft()
	d.Resume.Name = "  Ada Lovelace  "
	d.Resume.Experience[0].Responsibilities = []string{" kept ", "", "   "}

	snap := d.ResumeSnapshot()
	if snap.Name != "Ada Lovelace" {
		t.Fatalf("name not trimmed: %q", snap.Name)
	}
	got := snap.Experience[0].Responsibilities
	if len(got) != 1 || got[0] != "kept" {
		t.Fatalf("responsibilities not cleaned: %v", got)
	}
}

func TestUpdateSnapshotOmitsEmptyPassword(t *testing.T) {
	d := validUserDraft()
	d.Mode = ModeUpdate
	d.Account.Password = ""

	if !d.Validate() {
		t.Fatalf("update draft with empty password must validate, errors: %v", d.Errors)
	}
	data, err := json.Marshal(d.UserSnapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"password"`) {
		t.Fatalf("password key must be omitted, got %s", data)
	}
}

func TestJoinSplitResponsibilities(t *testing.T) {
	list := SplitResponsibilities("one\n\n  two \nthree")
	if len(list) != 3 || list[1] != "two" {
		t.Fatalf("split: %v", list)
	}
	if got := JoinResponsibilities([]string{" one ", "", "two"}); got != "one\ntwo" {
		t.Fatalf("join: %q", got)
	}
}
