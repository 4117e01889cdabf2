package locale

// Pick returns the text matching the request language, defaulting to Indonesian.
func Pick(language, english, indonesian string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return indonesian
	}
	if indonesian != "" {
		return indonesian
	}
	return english
}
