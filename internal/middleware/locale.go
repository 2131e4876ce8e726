package middleware

import (
	"context"
	"net/http"

	"studymate-backend/internal/models"
)

type contextKey string

const LocaleKey contextKey = "locale"

// Locale resolves the response language from the X-Locale header, falling
// back to Accept-Language, and attaches it to the request context.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Locale")
		if raw == "" {
			raw = r.Header.Get("Accept-Language")
		}
		ctx := context.WithValue(r.Context(), LocaleKey, models.ResolveLocale(raw))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLocale extracts the locale from request context, defaulting to
// Vietnamese.
func GetLocale(ctx context.Context) models.Locale {
	if l, ok := ctx.Value(LocaleKey).(models.Locale); ok {
		return l
	}
	return models.LocaleVI
}
