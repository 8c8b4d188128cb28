package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/resume/document"
)

func strPtr(s string) *string { return &s }

func tplPtr(t Template) *Template { return &t }

func newTestService() *Service {
	svc := NewService(NewMemoryRepo())
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return svc
}

func TestCreateDefaultsAndNormalizes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, "u1", Input{
		Data: document.Document{
			"layout":     map[string]any{"left": []any{"skills"}, "right": []any{}},
			"experience": []any{map[string]any{"title": "Engineer"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, res.Title)
	assert.Equal(t, TemplateModern, res.Template)
	assert.Equal(t, map[string]any{}, res.HiddenSections)
	assert.Equal(t, document.DefaultLayout(), res.Data["layout"])
	assert.Equal(t, map[string]any{"link": "linkedin"}, res.Data["header"])
	entry := res.Data["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, document.DefaultEntrySettings(), entry["settings"])
}

func TestCreateSanitizesTitleAndRejectsUnknownTemplate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, "u1", Input{Title: strPtr("<b>Senior</b> CV"), Template: tplPtr("ATS")})
	require.NoError(t, err)
	assert.Equal(t, "Senior CV", res.Title)
	assert.Equal(t, TemplateATS, res.Template)

	_, err = svc.Create(ctx, "u1", Input{Template: tplPtr("fancy")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOwnershipIsolation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	res, err := svc.Create(ctx, "owner", Input{})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "intruder", res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Replace(ctx, "intruder", res.ID, Input{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "intruder", res.ID), ErrNotFound)

	items, err := svc.List(ctx, "intruder", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "u1", Input{Title: strPtr("first")})
	require.NoError(t, err)
	second, err := svc.Create(ctx, "u1", Input{Title: strPtr("second")})
	require.NoError(t, err)

	items, err := svc.List(ctx, "u1", 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)

	page, err := svc.List(ctx, "u1", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, first.ID, page[0].ID)
}

func TestReplaceUsesUpdateRules(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	res, err := svc.Create(ctx, "u1", Input{Title: strPtr("mine"), Template: tplPtr(TemplateClassic)})
	require.NoError(t, err)

	updated, err := svc.Replace(ctx, "u1", res.ID, Input{
		Data: document.Document{
			"layout":          map[string]any{"left": []any{"skills"}, "right": []any{"header"}},
			"hiddenSections":  []any{"skills", "awards"},
			"visibleSections": map[string]any{"skills": true, "foo": false},
			"design":          "bold",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultTitle, updated.Title, "PUT resets omitted metadata")
	assert.Equal(t, TemplateModern, updated.Template)
	assert.Equal(t, map[string]any{"left": []any{"skills"}, "right": []any{"header"}}, updated.Data["layout"])
	visible := updated.Data["visibleSections"].(map[string]any)
	assert.Equal(t, true, visible["skills"])
	assert.Equal(t, false, visible["awards"])
	assert.NotContains(t, visible, "foo")
	assert.Equal(t, document.DefaultDesign(), updated.Data["design"])
	assert.True(t, updated.UpdatedAt.After(res.CreatedAt))
	assert.Equal(t, res.CreatedAt, updated.CreatedAt)
}

func TestPatchKeepsUnsentFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	res, err := svc.Create(ctx, "u1", Input{
		Title:          strPtr("mine"),
		Template:       tplPtr(TemplateClassic),
		Data:           document.Document{"summary": "hello"},
		HiddenSections: map[string]any{"photo": true},
	})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, "u1", res.ID, Input{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", patched.Title)
	assert.Equal(t, TemplateClassic, patched.Template)
	assert.Equal(t, res.Data, patched.Data)
	assert.Equal(t, map[string]any{"photo": true}, patched.HiddenSections)

	patched, err = svc.Patch(ctx, "u1", res.ID, Input{Data: document.Document{"summary": "new"}})
	require.NoError(t, err)
	assert.Equal(t, "new", patched.Data["summary"])
	assert.Contains(t, patched.Data, "visibleSections")
}

func TestCoercionsAreCounted(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	res, err := svc.Create(ctx, "u1", Input{})
	require.NoError(t, err)

	before := testutil.ToFloat64(coercionCounter("malformed_layout"))
	_, err = svc.Patch(ctx, "u1", res.ID, Input{Data: document.Document{"layout": "broken"}})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(coercionCounter("malformed_layout")))
}
