package resumes

import (
	"time"

	"resume-builder/resume/document"
)

// writeRequest is the body of POST, PUT and PATCH. Absent and null fields
// decode to nil.
type writeRequest struct {
	Title          *string           `json:"title" validate:"omitempty,max=255"`
	Template       *Template         `json:"template"`
	Data           document.Document `json:"data"`
	HiddenSections map[string]any    `json:"hidden_sections"`
}

type resumeResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Template       Template          `json:"template"`
	Data           document.Document `json:"data"`
	HiddenSections map[string]any    `json:"hidden_sections"`
	Created        time.Time         `json:"created"`
	Updated        time.Time         `json:"updated"`
}

type listResponse struct {
	Items []resumeResponse `json:"items"`
}

func toResponse(r Resume) resumeResponse {
	hidden := r.HiddenSections
	if hidden == nil {
		hidden = map[string]any{}
	}
	return resumeResponse{
		ID:             r.ID,
		Title:          r.Title,
		Template:       r.Template,
		Data:           nonNilDoc(r.Data),
		HiddenSections: hidden,
		Created:        r.CreatedAt,
		Updated:        r.UpdatedAt,
	}
}
