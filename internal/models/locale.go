package models

import "strings"

// Locale selects the language for prompts and fallback content.
type Locale string

const (
	LocaleVI Locale = "vi"
	LocaleEN Locale = "en"
)

// ResolveLocale maps a raw header value (e.g. "en-US,en;q=0.9") onto the two
// supported locales. Anything that does not ask for English is Vietnamese.
func ResolveLocale(raw string) Locale {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "en") {
		return LocaleEN
	}
	return LocaleVI
}
