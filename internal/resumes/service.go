package resumes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/validation"
	"resume-builder/resume/document"
)

// Input carries the client-writable fields of a resume. Nil means the field
// was not sent.
type Input struct {
	Title          *string
	Template       *Template
	Data           document.Document
	HiddenSections map[string]any
}

// Service orchestrates resume persistence and document normalization.
type Service struct {
	Repo Repo
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

// Create stores a new resume whose document is built by the create rules.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Resume, error) {
	title, template, err := resolveMeta(in, DefaultTitle, TemplateModern)
	if err != nil {
		return Resume{}, err
	}
	now := s.clock()
	res := Resume{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          title,
		Template:       template,
		Data:           s.normalizer(userID).Create(in.Data),
		HiddenSections: hiddenOrEmpty(in.HiddenSections),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, err
	}
	s.saved("create", res)
	return res, nil
}

// Get returns one of the user's resumes.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	return s.Repo.Get(ctx, userID, id)
}

// List returns the user's resumes newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Replace overwrites every client-writable field. Omitted metadata falls back
// to defaults; an omitted document re-derives the stored one.
func (s *Service) Replace(ctx context.Context, userID, id string, in Input) (Resume, error) {
	existing, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	title, template, err := resolveMeta(in, DefaultTitle, TemplateModern)
	if err != nil {
		return Resume{}, err
	}
	existing.Title = title
	existing.Template = template
	existing.Data = s.normalizer(userID).Update(in.Data, existing.Data)
	existing.HiddenSections = hiddenOrEmpty(in.HiddenSections)
	return s.update(ctx, "update", existing)
}

// Patch changes only the fields that were sent. The document is renormalized
// only when a new one is provided.
func (s *Service) Patch(ctx context.Context, userID, id string, in Input) (Resume, error) {
	existing, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	title, template, err := resolveMeta(in, existing.Title, existing.Template)
	if err != nil {
		return Resume{}, err
	}
	existing.Title = title
	existing.Template = template
	if in.Data != nil {
		existing.Data = s.normalizer(userID).Update(in.Data, existing.Data)
	}
	if in.HiddenSections != nil {
		existing.HiddenSections = in.HiddenSections
	}
	return s.update(ctx, "patch", existing)
}

// Delete removes one of the user's resumes.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	telemetry.Info("resume.deleted", map[string]any{"user_id": userID, "resume_id": id})
	return nil
}

func (s *Service) update(ctx context.Context, op string, res Resume) (Resume, error) {
	res.UpdatedAt = s.clock()
	if err := s.Repo.Update(ctx, res); err != nil {
		return Resume{}, err
	}
	s.saved(op, res)
	return res, nil
}

func (s *Service) normalizer(userID string) document.Normalizer {
	return document.Normalizer{OnCoerce: func(c document.Coercion) {
		metrics.IncDocumentCoercion(string(c))
		telemetry.Debug("document.coerced", map[string]any{"user_id": userID, "kind": string(c)})
	}}
}

func (s *Service) saved(op string, res Resume) {
	metrics.IncResumeSaved(op)
	telemetry.Info("resume.saved", map[string]any{
		"op":        op,
		"user_id":   res.UserID,
		"resume_id": res.ID,
	})
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now().UTC()
}

func resolveMeta(in Input, defTitle string, defTemplate Template) (string, Template, error) {
	title := defTitle
	if in.Title != nil {
		title = validation.SanitizeText(*in.Title)
		if title == "" {
			title = DefaultTitle
		}
	}
	template := defTemplate
	if in.Template != nil {
		template = Template(strings.ToLower(strings.TrimSpace(string(*in.Template))))
		if !template.Valid() {
			return "", "", fmt.Errorf("%w: unknown template %q", ErrInvalidInput, string(*in.Template))
		}
	}
	return title, template, nil
}

func hiddenOrEmpty(h map[string]any) map[string]any {
	if h == nil {
		return map[string]any{}
	}
	return h
}
