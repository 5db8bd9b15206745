package dataset

import "golang.org/x/text/language"

// Locale is a language the viewer ships strings for.
type Locale struct {
	Code string       `json:"code"`
	Name string       `json:"name"`
	Tag  language.Tag `json:"-"`
}

// DefaultLocale is used when no valid locale was requested or stored.
const DefaultLocale = "en"

// Locales lists the supported locales in selector order. Codes follow the
// data directory names, which are not always BCP 47 (jp, tw, br, mx).
var Locales = []Locale{
	{"en", "English", language.English},
	{"zh", "简体中文", language.SimplifiedChinese},
	{"tw", "繁體中文", language.TraditionalChinese},
	{"fr", "Français", language.French},
	{"de", "Deutsch", language.German},
	{"hi", "हिंदी", language.Hindi},
	{"it", "Italiano", language.Italian},
	{"jp", "日本語", language.Japanese},
	{"ko", "한국어", language.Korean},
	{"ms", "Bahasa Melayu", language.Malay},
	{"pl", "Polski", language.Polish},
	{"ru", "Русский", language.Russian},
	{"es", "Español", language.Spanish},
	{"mx", "Español (México)", language.MustParse("es-MX")},
	{"tr", "Türkçe", language.Turkish},
	{"vi", "Tiếng Việt", language.Vietnamese},
	{"br", "Português (Brasil)", language.BrazilianPortuguese},
}

// LookupLocale returns the locale with the given code.
func LookupLocale(code string) (Locale, bool) {
	for _, l := range Locales {
		if l.Code == code {
			return l, true
		}
	}
	return Locale{}, false
}

// IsLocale reports whether code is a supported locale.
func IsLocale(code string) bool {
	_, ok := LookupLocale(code)
	return ok
}

// ResolveLocale picks the locale to show: the query parameter, then the
// stored preference, then DefaultLocale. Unknown codes are skipped.
func ResolveLocale(query, stored string) string {
	if IsLocale(query) {
		return query
	}
	if IsLocale(stored) {
		return stored
	}
	return DefaultLocale
}
