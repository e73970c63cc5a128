// Package logger provides structured logging for the llmops console client.
package logger

import (
	"log/slog"
	"strings"
)

// Key fragments whose values are never written verbatim.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apikey",
	"credential",
	"authorization",
	"cookie",
}

// Value schemes that are masked to "<scheme> <first 3>...<last 3>".
var sensitiveValueSchemes = []string{
	"Bearer ",
	"Basic ",
}

const redactedValue = "***REDACTED***"

func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		for _, scheme := range sensitiveValueSchemes {
			if strings.HasPrefix(strVal, scheme) {
				return slog.String(a.Key, maskValue(strVal, scheme))
			}
		}
		if strVal != "" && IsSensitiveKey(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	return a
}

// maskValue keeps prefix plus the first and last three characters of the rest.
func maskValue(value, prefix string) string {
	body := value[len(prefix):]
	if len(body) <= 6 {
		return prefix + "***"
	}
	return prefix + body[:3] + "..." + body[len(body)-3:]
}

// RedactString masks a credential for display, e.g. in command output.
func RedactString(value string) string {
	for _, scheme := range sensitiveValueSchemes {
		if strings.HasPrefix(value, scheme) {
			return maskValue(value, scheme)
		}
	}
	return maskValue(value, "")
}

// IsSensitiveKey checks if a key name suggests sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
