package document

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVisibilityBaselineFromHidden(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sections := Sections()

	for i := 0; i < 50; i++ {
		var hidden []any
		hiddenSet := map[string]bool{}
		for _, s := range sections {
			if rng.Intn(2) == 0 {
				hidden = append(hidden, s)
				hiddenSet[s] = true
			}
		}

		gotHidden, visible := NormalizeVisibility(hidden, nil)
		if hidden == nil {
			assert.Empty(t, gotHidden)
		} else {
			assert.Equal(t, hidden, gotHidden)
		}
		require.Len(t, visible, len(sections))
		for _, s := range sections {
			assert.Equal(t, !hiddenSet[s], visible[s], s)
		}
	}
}

func TestNormalizeVisibilityOverrides(t *testing.T) {
	hidden, visible := NormalizeVisibility(
		[]any{"skills"},
		map[string]any{
			"skills":  true,
			"summary": false,
			"photos":  false,
			"header":  "no",
		},
	)

	assert.Equal(t, []any{"skills"}, hidden, "hidden list is not recomputed")
	assert.Equal(t, true, visible["skills"])
	assert.Equal(t, false, visible["summary"])
	assert.Equal(t, true, visible["header"])
	assert.NotContains(t, visible, "photos")
	assert.Len(t, visible, 20)
}

func TestNormalizeVisibilityMalformedHidden(t *testing.T) {
	hidden, visible := NormalizeVisibility("skills", nil)
	assert.Equal(t, []any{}, hidden)
	for _, s := range Sections() {
		assert.Equal(t, true, visible[s])
	}
}

func TestNormalizeVisibilityReportsIgnoredKeys(t *testing.T) {
	var got []Coercion
	normalizeVisibility(nil, map[string]any{"photos": true, "skills": 1.0, "summary": false}, func(c Coercion) {
		got = append(got, c)
	})
	assert.Equal(t, []Coercion{UnknownVisibilityKey, UnknownVisibilityKey}, got)
}
