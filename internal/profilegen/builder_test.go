package profilegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/ignite-quest/internal/model"
)

func TestNewRequestEmbedsInputsVerbatim(t *testing.T) {
	cases := []struct {
		name    string
		passion string
	}{
		{"Riya", "building things"},
		{"  Spaced  Name ", "punctuation: <b>bold</b> & \"quotes\""},
		{"अनन्या", "multi\nline\npassion"},
	}
	for _, tc := range cases {
		req := NewRequest(tc.name, tc.passion)
		assert.Contains(t, req.Prompt, tc.name)
		assert.Contains(t, req.Prompt, tc.passion)
	}
}

func TestNewRequestEnumeratesExactlyTheFiveClasses(t *testing.T) {
	req := NewRequest("Riya", "building things")

	for _, c := range model.QuestClasses {
		assert.Equal(t, 1, strings.Count(req.Prompt, string(c)), "class %q", c)
	}
	assert.Len(t, model.QuestClasses, 5)
}

func TestNewRequestStatsAndBio(t *testing.T) {
	req := NewRequest("Riya", "building things")

	assert.Contains(t, req.Prompt, "(0-100)")
	for _, stat := range []string{"Innovation", "Resilience", "Leadership", "Risk-Taking"} {
		assert.Contains(t, req.Prompt, stat)
	}
	assert.Contains(t, req.Prompt, "max 40 words")
}

func TestProfileSchemaRequiredFields(t *testing.T) {
	s := ProfileSchema()

	require.Equal(t, "OBJECT", s.Type)
	assert.ElementsMatch(t, []string{"questClass", "stats", "bio"}, s.Required)
	assert.Equal(t, "STRING", s.Properties["questClass"].Type)
	assert.Equal(t, "STRING", s.Properties["bio"].Type)

	stats := s.Properties["stats"]
	require.NotNil(t, stats)
	assert.Equal(t, "OBJECT", stats.Type)
	assert.ElementsMatch(t, []string{"innovation", "resilience", "leadership", "riskTaking"}, stats.Required)
	for _, f := range stats.Required {
		assert.Equal(t, "NUMBER", stats.Properties[f].Type)
	}
}
