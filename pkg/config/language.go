package config

import "strings"

// Message languages.
const (
	LanguageAuto    = "auto"
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// localeVars are read in gettext order; the first non-empty one decides.
var localeVars = []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"}

// ResolveLanguage returns the language to print messages in. An explicit
// setting wins; "auto" picks Russian for a ru* locale and English otherwise.
func (c *Config) ResolveLanguage(getenv func(string) string) string {
	switch lang := strings.ToLower(c.Language); lang {
	case LanguageEnglish, LanguageRussian:
		return lang
	}
	for _, name := range localeVars {
		value := getenv(name)
		if value == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(value), LanguageRussian) {
			return LanguageRussian
		}
		return LanguageEnglish
	}
	return LanguageEnglish
}
