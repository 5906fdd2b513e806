package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "diacritics and spaces", input: "Revisão e Normalização", want: "revisao-e-normalizacao"},
		{name: "surrounding whitespace", input: "  Books  ", want: "books"},
		{name: "punctuation dropped", input: "C++ & Go!", want: "c-go"},
		{name: "hyphen runs", input: "--a -- b--", want: "a-b"},
		{name: "spanish", input: "Revisión y normalización", want: "revision-y-normalizacion"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSlug(tt.input))
		})
	}
}

func TestNormalizeSlugIsIdempotent(t *testing.T) {
	inputs := []string{"Revisão e Normalização", "Sistemas  Distribuídos", "a--b", " -x- ", "ÇÃO"}
	for _, input := range inputs {
		once := NormalizeSlug(input)
		assert.Equal(t, once, NormalizeSlug(once), "input %q", input)
		assert.Regexp(t, `^([a-z0-9]+(-[a-z0-9]+)*)?$`, once)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Books", DisplayName("books", "en"))
	assert.Equal(t, "Livros", DisplayName(" Books ", "pt"))
	assert.Equal(t, "Revisión y normalización", DisplayName("Review and Standardization", "es"))
	assert.Equal(t, "Machine Learning", DisplayName("machine-learning", "en"))
	assert.Equal(t, "Data Pipelines", DisplayName("data pipelines", "pt"))
	assert.Equal(t, "Machine Learning", DisplayName("MACHINE learning", "en"))
	assert.Equal(t, "Deep Learning", DisplayName("dEEP-LEARNING", "pt"))
	assert.Equal(t, "Books", DisplayName("Livros", "en"))
}

func TestCanonicalSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Revisão e Normalização", want: "review-and-standardization"},
		{input: "review-and-standardization", want: "review-and-standardization"},
		{input: "Revisión y normalización", want: "review-and-standardization"},
		{input: "Livros", want: "books"},
		{input: "Indexadores", want: "indexers"},
		{input: "Sistemas", want: "systems"},
		{input: "Data Pipelines", want: "data-pipelines"},
		{input: "  ", want: ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalSlug(tt.input), "input %q", tt.input)
	}
	assert.Equal(t, "revisao-e-normalizacao", NormalizeSlug("Revisão e Normalização"))
}

func TestAllSlugsSorted(t *testing.T) {
	assert.Equal(t, []string{"books", "indexers", "review-and-standardization", "systems"}, AllSlugs())
}

func TestMapToSlugs(t *testing.T) {
	got := MapToSlugs([]string{"Livros", "  ", "Revisão e normalização"})
	assert.Equal(t, map[string]string{
		"Livros":                 "livros",
		"Revisão e normalização": "revisao-e-normalizacao",
	}, got)
	assert.Equal(t, "sistemas", ToURLSlug("Sistemas"))
}
