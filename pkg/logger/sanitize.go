package logger

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaskIdentity masks an identity for logging (e.g., "t******")
func MaskIdentity(identity string) string {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "[empty]"
	}

	first, size := utf8.DecodeRuneInString(identity)
	rest := utf8.RuneCountInString(identity[size:])
	return string(first) + strings.Repeat("*", rest)
}

// ParseLevel maps a LOG_LEVEL value to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
