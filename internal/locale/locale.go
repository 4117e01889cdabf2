package locale

import "strings"

const (
	LanguageIndonesian = "id"
	LanguageEnglish    = "en"
)

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
}

// NormalizeLanguage maps a language tag to "id" or "en". The site's own switcher
// sends upper-case "ID"/"EN".
func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "id") || strings.HasPrefix(trimmed, "in") {
		return LanguageIndonesian
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

func LanguageFromCountryCode(code string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return ""
	}
	if trimmed == "ID" {
		return LanguageIndonesian
	}
	return LanguageEnglish
}

func LanguageFromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(part)
		if idx := strings.Index(tag, ";"); idx >= 0 {
			tag = tag[:idx]
		}
		if language := NormalizeLanguage(tag); language != "" {
			return language
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageEnglish {
		return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en-US"}
	}
	return Preference{Language: LanguageIndonesian, Locale: "id_ID", HTMLLang: "id-ID"}
}
