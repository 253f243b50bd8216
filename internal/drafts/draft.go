// Package drafts holds server-side form drafts for the signup, admin user,
// and resume editors. A draft is mutated field-by-field through path-scoped
// updates, validated as a whole on submit, and handed off as a cleaned
// snapshot only when every rule passes.
package drafts

import (
	"fmt"
	"strconv"
	"strings"

	"resumevar-backend/internal/session"
	"resumevar-backend/internal/validation"
)

// Kind selects which checklist applies on submit.
type Kind string

const (
	// KindResume is a bare resume draft.
	KindResume Kind = "resume"
	// KindUser is an account draft with an embedded resume.
	KindUser Kind = "user"
)

// Mode distinguishes create from edit. Edit relaxes the password rule and
// omits an untouched password from the snapshot.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Contact is the resume contact sub-record.
type Contact struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Education is the resume education sub-record.
type Education struct {
	Degree     string `json:"degree"`
	University string `json:"university"`
	GPA        string `json:"gpa"`
}

// Experience is one work-experience entry. Responsibilities is the canonical
// shape; surfaces that edit a single text blob join and split on newlines at
// the API boundary.
type Experience struct {
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	JobTitle         string   `json:"job_title"`
	Environment      string   `json:"environment"`
	Responsibilities []string `json:"responsibilities"`
}

// Resume is the nested resume draft.
type Resume struct {
	Name       string       `json:"name"`
	JobTitle   string       `json:"job_title"`
	Contact    Contact      `json:"contact"`
	Education  Education    `json:"education"`
	Experience []Experience `json:"experience"`
}

// Account carries the admin/signup account fields.
type Account struct {
	Firstname       string       `json:"firstname"`
	Lastname        string       `json:"lastname"`
	Username        string       `json:"username"`
	Password        string       `json:"password"`
	Role            session.Role `json:"role"`
	Points          int          `json:"points"`
	BonusPoints     int          `json:"bonus_points"`
	CompleteChange  bool         `json:"complete_change"`
	VerifiedApplier bool         `json:"verified_applier"`
}

// Draft is one in-progress form. Zero value is not usable; construct through
// the Store.
type Draft struct {
	ID      string `json:"id"`
	Subject string `json:"-"`
	// TargetID names the persisted record being edited in update mode.
	TargetID string            `json:"target_id,omitempty"`
	Kind     Kind              `json:"kind"`
	Mode     Mode              `json:"mode"`
	Signup   bool              `json:"signup"`
	Account  Account           `json:"account"`
	Resume   Resume            `json:"resume"`
	Errors   map[string]string `json:"errors"`

	submitting bool
}

// Apply sets a single field addressed by a dotted path: a top-level key,
// contact.<key>, education.<key>, experience.<i>.<key>, or
// experience.<i>.responsibilities.<j>. The experience slice is copied before
// index mutation so earlier snapshots never observe the write.
func (d *Draft) Apply(path, value string) error {
	parts := strings.Split(path, ".")
	switch parts[0] {
	case "contact":
		if len(parts) != 2 {
			return fmt.Errorf("invalid path %q", path)
		}
		switch parts[1] {
		case "phone":
			d.Resume.Contact.Phone = value
		case "email":
			d.Resume.Contact.Email = value
		default:
			return fmt.Errorf("unknown contact field %q", parts[1])
		}
		return nil
	case "education":
		if len(parts) != 2 {
			return fmt.Errorf("invalid path %q", path)
		}
		switch parts[1] {
		case "degree":
			d.Resume.Education.Degree = value
		case "university":
			d.Resume.Education.University = value
		case "gpa":
			d.Resume.Education.GPA = value
		default:
			return fmt.Errorf("unknown education field %q", parts[1])
		}
		return nil
	case "experience":
		return d.applyExperience(parts, value, path)
	}

	if len(parts) != 1 {
		return fmt.Errorf("invalid path %q", path)
	}
	switch parts[0] {
	case "name":
		d.Resume.Name = value
	case "job_title":
		d.Resume.JobTitle = value
	case "firstname":
		d.Account.Firstname = value
	case "lastname":
		d.Account.Lastname = value
	case "username":
		d.Account.Username = value
	case "password":
		d.Account.Password = value
	case "role":
		d.setRole(session.ParseRole(value))
	case "points":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("points must be numeric")
		}
		d.Account.Points = n
	case "bonus_points":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("bonus_points must be numeric")
		}
		d.Account.BonusPoints = n
	case "complete_change":
		d.Account.CompleteChange = parseBool(value)
	case "verified_applier":
		d.setVerifiedApplier(parseBool(value))
	default:
		return fmt.Errorf("unknown field %q", parts[0])
	}
	return nil
}

func (d *Draft) applyExperience(parts []string, value, path string) error {
	if len(parts) < 3 {
		return fmt.Errorf("invalid path %q", path)
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 || i >= len(d.Resume.Experience) {
		return fmt.Errorf("experience index out of range in %q", path)
	}

	next := make([]Experience, len(d.Resume.Experience))
	copy(next, d.Resume.Experience)
	exp := next[i]

	switch parts[2] {
	case "company":
		exp.Company = value
	case "location":
		exp.Location = value
	case "start_date":
		exp.StartDate = value
	case "end_date":
		exp.EndDate = value
	case "job_title":
		exp.JobTitle = value
	case "environment":
		exp.Environment = value
	case "responsibilities":
		if len(parts) != 4 {
			return fmt.Errorf("invalid path %q", path)
		}
		j, err := strconv.Atoi(parts[3])
		if err != nil || j < 0 || j >= len(exp.Responsibilities) {
			return fmt.Errorf("responsibility index out of range in %q", path)
		}
		resp := make([]string, len(exp.Responsibilities))
		copy(resp, exp.Responsibilities)
		resp[j] = value
		exp.Responsibilities = resp
	default:
		return fmt.Errorf("unknown experience field %q", parts[2])
	}

	next[i] = exp
	d.Resume.Experience = next
	return nil
}

// AddExperience appends an empty entry with one blank responsibility.
func (d *Draft) AddExperience() {
	next := make([]Experience, len(d.Resume.Experience), len(d.Resume.Experience)+1)
	copy(next, d.Resume.Experience)
	d.Resume.Experience = append(next, Experience{Responsibilities: []string{""}})
}

// RemoveExperience drops the entry at index i, preserving order of the rest,
// and drops every recorded error under the old numbering. Stale paths must
// not survive a removal.
func (d *Draft) RemoveExperience(i int) error {
	if i < 0 || i >= len(d.Resume.Experience) {
		return fmt.Errorf("experience index %d out of range", i)
	}
	next := make([]Experience, 0, len(d.Resume.Experience)-1)
	next = append(next, d.Resume.Experience[:i]...)
	next = append(next, d.Resume.Experience[i+1:]...)
	d.Resume.Experience = next
	d.clearExperienceErrors()
	return nil
}

// AddResponsibility appends a blank responsibility to experience i.
func (d *Draft) AddResponsibility(i int) error {
	if i < 0 || i >= len(d.Resume.Experience) {
		return fmt.Errorf("experience index %d out of range", i)
	}
	next := make([]Experience, len(d.Resume.Experience))
	copy(next, d.Resume.Experience)
	resp := make([]string, len(next[i].Responsibilities), len(next[i].Responsibilities)+1)
	copy(resp, next[i].Responsibilities)
	next[i].Responsibilities = append(resp, "")
	d.Resume.Experience = next
	return nil
}

// RemoveResponsibility drops responsibility j from experience i.
func (d *Draft) RemoveResponsibility(i, j int) error {
	if i < 0 || i >= len(d.Resume.Experience) {
		return fmt.Errorf("experience index %d out of range", i)
	}
	exp := d.Resume.Experience[i]
	if j < 0 || j >= len(exp.Responsibilities) {
		return fmt.Errorf("responsibility index %d out of range", j)
	}
	next := make([]Experience, len(d.Resume.Experience))
	copy(next, d.Resume.Experience)
	resp := make([]string, 0, len(exp.Responsibilities)-1)
	resp = append(resp, exp.Responsibilities[:j]...)
	resp = append(resp, exp.Responsibilities[j+1:]...)
	next[i].Responsibilities = resp
	d.Resume.Experience = next
	d.clearExperienceErrors()
	return nil
}

func (d *Draft) clearExperienceErrors() {
	for key := range d.Errors {
		if strings.HasPrefix(key, "experience.") {
			delete(d.Errors, key)
		}
	}
}

func (d *Draft) setRole(role session.Role) {
	d.Account.Role = role
	// verified_applier is only meaningful for appliers.
	if role != session.RoleApplier {
		d.Account.VerifiedApplier = false
	}
}

func (d *Draft) setVerifiedApplier(v bool) {
	if v && d.Account.Role != session.RoleApplier {
		v = false
	}
	d.Account.VerifiedApplier = v
}

// Validate runs the full checklist for the draft's kind and mode and replaces
// the error map wholesale, so errors for removed fields never linger. It
// returns true when the draft is submittable.
func (d *Draft) Validate() bool {
	errs := make(map[string]string)
	vctx := validation.Context{IsUpdate: d.Mode == ModeUpdate, Signup: d.Signup}

	if d.Kind == KindUser {
		put(errs, "firstname", validation.Validate("firstname", d.Account.Firstname, vctx))
		put(errs, "lastname", validation.Validate("lastname", d.Account.Lastname, vctx))
		put(errs, "username", validation.Validate("username", d.Account.Username, vctx))
		put(errs, "password", validation.Validate("password", d.Account.Password, vctx))
	}

	put(errs, "name", validation.Validate("name", d.Resume.Name, vctx))
	put(errs, "job_title", validation.Validate("job_title", d.Resume.JobTitle, vctx))
	put(errs, "contact.phone", validation.Validate("phone", d.Resume.Contact.Phone, vctx))
	put(errs, "contact.email", validation.Validate("email", d.Resume.Contact.Email, vctx))
	put(errs, "education.degree", validation.Validate("degree", d.Resume.Education.Degree, vctx))
	put(errs, "education.university", validation.Validate("university", d.Resume.Education.University, vctx))
	put(errs, "education.gpa", validation.Validate("gpa", d.Resume.Education.GPA, vctx))

	for i, exp := range d.Resume.Experience {
		prefix := fmt.Sprintf("experience.%d.", i)
		put(errs, prefix+"company", validation.Validate("company", exp.Company, vctx))
		put(errs, prefix+"location", validation.Validate("location", exp.Location, vctx))
		put(errs, prefix+"start_date", validation.Validate("start_date", exp.StartDate, vctx))
		put(errs, prefix+"end_date", validation.ValidateEndDate(exp.StartDate, exp.EndDate))
		put(errs, prefix+"job_title", validation.Validate("job_title", exp.JobTitle, vctx))
		put(errs, prefix+"environment", validation.Validate("environment", exp.Environment, vctx))
		put(errs, prefix+"responsibilities", validation.ValidateResponsibilities(exp.Responsibilities))
	}

	d.Errors = errs
	return len(errs) == 0
}

// clone deep-copies the draft so callers can read or validate it without
// holding the store lock. Experience entries, their responsibilities, and the
// error map share no memory with the original.
func (d *Draft) clone() *Draft {
	out := *d
	out.submitting = false
	if d.Resume.Experience != nil {
		out.Resume.Experience = make([]Experience, len(d.Resume.Experience))
		for i, exp := range d.Resume.Experience {
			cloned := exp
			if exp.Responsibilities != nil {
				cloned.Responsibilities = make([]string, len(exp.Responsibilities))
				copy(cloned.Responsibilities, exp.Responsibilities)
			}
			out.Resume.Experience[i] = cloned
		}
	}
	out.Errors = make(map[string]string, len(d.Errors))
	for key, msg := range d.Errors {
		out.Errors[key] = msg
	}
	return &out
}

func put(errs map[string]string, key, msg string) {
	if msg != "" {
		errs[key] = msg
	}
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
