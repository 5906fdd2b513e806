package locale

// Pick returns the text registered for code, falling back to the default
// locale and then to fallback.
func Pick(code string, texts map[string]string, fallback string) string {
	if normalized := Normalize(code); normalized != "" {
		if text := texts[normalized]; text != "" {
			return text
		}
	}
	if text := texts[Default]; text != "" {
		return text
	}
	return fallback
}
