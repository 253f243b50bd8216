package drafts

import (
	"strings"

	"resumevar-backend/internal/session"
)

// ResumeSnapshot is the cleaned, immutable form of a resume draft: every
// string trimmed, blank responsibilities filtered out.
type ResumeSnapshot struct {
	Name       string       `json:"name"`
	JobTitle   string       `json:"job_title"`
	Contact    Contact      `json:"contact"`
	Education  Education    `json:"education"`
	Experience []Experience `json:"experience"`
}

// UserSnapshot is the cleaned form of an account draft. Password is empty
// when the draft left it untouched on update; marshalling omits it rather
// than sending an empty string.
type UserSnapshot struct {
	Firstname       string         `json:"firstname"`
	Lastname        string         `json:"lastname"`
	Username        string         `json:"username"`
	Password        string         `json:"password,omitempty"`
	Role            session.Role   `json:"role"`
	Points          int            `json:"points"`
	BonusPoints     int            `json:"bonus_points"`
	CompleteChange  bool           `json:"complete_change"`
	VerifiedApplier bool           `json:"verified_applier"`
	Resume          ResumeSnapshot `json:"resume"`
}

// ResumeSnapshot builds the cleaned resume payload. Call only after Validate
// reported success.
func (d *Draft) ResumeSnapshot() ResumeSnapshot {
	snap := ResumeSnapshot{
		Name:     strings.TrimSpace(d.Resume.Name),
		JobTitle: strings.TrimSpace(d.Resume.JobTitle),
		Contact: Contact{
			Phone: strings.TrimSpace(d.Resume.Contact.Phone),
			Email: strings.TrimSpace(d.Resume.Contact.Email),
		},
		Education: Education{
			Degree:     strings.TrimSpace(d.Resume.Education.Degree),
			University: strings.TrimSpace(d.Resume.Education.University),
			GPA:        strings.TrimSpace(d.Resume.Education.GPA),
		},
	}
	for _, exp := range d.Resume.Experience {
		cleaned := Experience{
			Company:     strings.TrimSpace(exp.Company),
			Location:    strings.TrimSpace(exp.Location),
			StartDate:   strings.TrimSpace(exp.StartDate),
			EndDate:     strings.TrimSpace(exp.EndDate),
			JobTitle:    strings.TrimSpace(exp.JobTitle),
			Environment: strings.TrimSpace(exp.Environment),
		}
		for _, r := range exp.Responsibilities {
			if trimmed := strings.TrimSpace(r); trimmed != "" {
				cleaned.Responsibilities = append(cleaned.Responsibilities, trimmed)
			}
		}
		snap.Experience = append(snap.Experience, cleaned)
	}
	return snap
}

// UserSnapshot builds the cleaned account payload.
func (d *Draft) UserSnapshot() UserSnapshot {
	role := d.Account.Role
	verified := d.Account.VerifiedApplier
	if role != session.RoleApplier {
		verified = false
	}
	return UserSnapshot{
		Firstname:       strings.TrimSpace(d.Account.Firstname),
		Lastname:        strings.TrimSpace(d.Account.Lastname),
		Username:        strings.TrimSpace(d.Account.Username),
		Password:        strings.TrimSpace(d.Account.Password),
		Role:            role,
		Points:          d.Account.Points,
		BonusPoints:     d.Account.BonusPoints,
		CompleteChange:  d.Account.CompleteChange,
		VerifiedApplier: verified,
		Resume:          d.ResumeSnapshot(),
	}
}

// JoinResponsibilities flattens the canonical list for single-text surfaces.
func JoinResponsibilities(items []string) string {
	var kept []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, "\n")
}

// SplitResponsibilities expands a single-text blob into the canonical list.
func SplitResponsibilities(blob string) []string {
	var out []string
	for _, line := range strings.Split(blob, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
