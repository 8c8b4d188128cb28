package resumes

import (
	"time"

	"resume-builder/resume/document"
)

// Template selects the rendering style of a resume.
type Template string

const (
	TemplateModern  Template = "modern"
	TemplateClassic Template = "classic"
	TemplateATS     Template = "ats"

	DefaultTitle = "Untitled Resume"
)

// Valid reports whether t is a known template.
func (t Template) Valid() bool {
	switch t {
	case TemplateModern, TemplateClassic, TemplateATS:
		return true
	}
	return false
}

// Resume is a stored resume record owned by a user.
type Resume struct {
	ID       string
	UserID   string
	Title    string
	Template Template
	Data     document.Document
	// HiddenSections holds free-form print flags, unrelated to the
	// document's own hiddenSections list.
	HiddenSections map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
