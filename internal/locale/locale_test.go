package locale

import (
	"reflect"
	"testing"
)

func TestIsValid(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{input: "pt", want: true},
		{input: "en", want: true},
		{input: "es", want: true},
		{input: "PT", want: false},
		{input: "fr", want: false},
		{input: "", want: false},
	}

	for _, tc := range cases {
		if got := IsValid(tc.input); got != tc.want {
			t.Fatalf("IsValid(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "pt", want: LanguagePortuguese},
		{input: "pt-BR", want: LanguagePortuguese},
		{input: "EN_us", want: LanguageEnglish},
		{input: " es-419 ", want: LanguageSpanish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.input); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "pt-BR,pt;q=0.9,en;q=0.8", want: LanguagePortuguese},
		{input: "fr-FR,fr;q=0.9,es;q=0.5", want: LanguageSpanish},
		{input: "en;q=0.3,es;q=0.9", want: LanguageSpanish},
		{input: "de-DE", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := FromAcceptLanguage(tc.input); got != tc.want {
			t.Fatalf("FromAcceptLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPreferenceFor(t *testing.T) {
	pref := PreferenceFor("en")
	if pref.Locale != LanguageEnglish {
		t.Fatalf("expected locale %q, got %q", LanguageEnglish, pref.Locale)
	}
	if pref.HTMLLang != "en-US" {
		t.Fatalf("expected html lang en-US, got %q", pref.HTMLLang)
	}
	if pref.OGLocale != "en_US" {
		t.Fatalf("expected og locale en_US, got %q", pref.OGLocale)
	}

	fallback := PreferenceFor("fr")
	if fallback.Locale != LanguagePortuguese || fallback.HTMLLang != "pt-BR" {
		t.Fatalf("expected portuguese fallback, got %+v", fallback)
	}
}

func TestFallbackHierarchy(t *testing.T) {
	order := []string{"pt", "en", "es"}

	cases := []struct {
		name      string
		preferred string
		enabled   bool
		want      []string
	}{
		{name: "preferred moves first", preferred: "en", enabled: true, want: []string{"en", "pt", "es"}},
		{name: "already first", preferred: "pt", enabled: true, want: []string{"pt", "en", "es"}},
		{name: "last moves first", preferred: "es", enabled: true, want: []string{"es", "pt", "en"}},
		{name: "disabled", preferred: "es", enabled: false, want: []string{"es"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FallbackHierarchy(tc.preferred, order, tc.enabled)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("FallbackHierarchy(%q) = %v, want %v", tc.preferred, got, tc.want)
			}
		})
	}

	if !reflect.DeepEqual(order, []string{"pt", "en", "es"}) {
		t.Fatalf("configured order mutated: %v", order)
	}
}

func TestPick(t *testing.T) {
	texts := map[string]string{"pt": "Livros", "en": "Books"}
	if got := Pick("en-US", texts, "x"); got != "Books" {
		t.Fatalf("Pick(en) = %q, want %q", got, "Books")
	}
	if got := Pick("es", texts, "x"); got != "Livros" {
		t.Fatalf("Pick(es) = %q, want %q", got, "Livros")
	}
	if got := Pick("es", nil, "x"); got != "x" {
		t.Fatalf("Pick(es, nil) = %q, want %q", got, "x")
	}
}
