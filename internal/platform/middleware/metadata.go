package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"anamnesis/pkg/requestcontext"
)

// ClientMetadata extracts client IP, User-Agent and a coarse platform label
// ("android", "ios", "web", "unknown") into the request context.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua := r.Header.Get("User-Agent")
		ctx := requestcontext.WithClientMetadata(r.Context(), ClientIPFromRequest(r), ua, ClientPlatform(ua))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientPlatform classifies a User-Agent string.
func ClientPlatform(userAgent string) string {
	if strings.TrimSpace(userAgent) == "" {
		return "unknown"
	}
	ua := useragent.New(userAgent)
	if ua.Bot() {
		return "bot"
	}
	osName := strings.ToLower(ua.OS() + " " + ua.Platform())
	switch {
	case strings.Contains(osName, "android"):
		return "android"
	case strings.Contains(osName, "iphone"), strings.Contains(osName, "ipad"), strings.Contains(osName, "ios"):
		return "ios"
	}
	if name, _ := ua.Browser(); name != "" && ua.Mozilla() != "" {
		return "web"
	}
	return "unknown"
}

// ClientIPFromRequest extracts the real client IP, honouring proxy headers.
func ClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}
	return "unknown"
}
