package resumes

import (
	"strings"

	"resumevar-backend/internal/drafts"
	"resumevar-backend/internal/resumes/render"
)

// composeDocument lays out a stored resume as a printable document. The
// company name is worked into the title line so each generated file reads as
// tailored to the posting it was made for.
func composeDocument(snap drafts.ResumeSnapshot, company string) *render.Document {
	doc := &render.Document{}

	doc.AddHeading(snap.Name, 18)
	title := snap.JobTitle
	if company = strings.TrimSpace(company); company != "" {
		title = title + " Candidate for " + company
	}
	doc.AddText(title, 12)
	doc.AddText(contactLine(snap.Contact), 10)

	doc.AddGap(8)
	doc.AddHeading("Education", 13)
	doc.AddText(snap.Education.Degree, 11)
	eduDetail := snap.Education.University
	if gpa := strings.TrimSpace(snap.Education.GPA); gpa != "" {
		eduDetail = eduDetail + ", GPA " + gpa
	}
	doc.AddText(eduDetail, 11)

	doc.AddGap(8)
	doc.AddHeading("Experience", 13)
	for _, exp := range snap.Experience {
		doc.AddGap(4)
		doc.AddHeading(exp.JobTitle+", "+exp.Company, 11)
		doc.AddText(dateLocationLine(exp), 10)
		for _, resp := range exp.Responsibilities {
			doc.AddBullet(resp, 11)
		}
		if env := strings.TrimSpace(exp.Environment); env != "" {
			doc.AddText("Environment: "+env, 10)
		}
	}

	return doc
}

func contactLine(c drafts.Contact) string {
	parts := make([]string, 0, 2)
	if email := strings.TrimSpace(c.Email); email != "" {
		parts = append(parts, email)
	}
	if phone := strings.TrimSpace(c.Phone); phone != "" {
		parts = append(parts, phone)
	}
	return strings.Join(parts, " | ")
}

func dateLocationLine(exp drafts.Experience) string {
	dates := strings.TrimSpace(exp.StartDate)
	if end := strings.TrimSpace(exp.EndDate); end != "" {
		dates = dates + " to " + end
	}
	if loc := strings.TrimSpace(exp.Location); loc != "" {
		if dates != "" {
			return loc + " | " + dates
		}
		return loc
	}
	return dates
}
