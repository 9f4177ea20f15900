package utils

import (
	"fmt"
	"net/url"
	"strings"

	apperrors "github.com/Kosench/go-link-tracker/internal/errors"
)

// ValidateTargetURL проверяет целевой URL. Схема не обязательна:
// она хранится как есть и нормализуется в момент редиректа.
func ValidateTargetURL(rawURL string) error {
	if rawURL == "" {
		return apperrors.NewValidationError("url", "URL cannot be empty")
	}

	if len(rawURL) > 2048 {
		return apperrors.NewValidationError("url", "URL is too long (max 2048 characters)")
	}

	candidate := rawURL
	if !HasHTTPScheme(candidate) {
		// Явно указанную чужую схему не маскируем подстановкой https://
		if strings.Contains(candidate, "://") {
			return apperrors.NewValidationError("url", "URL must start with http:// or https://")
		}
		candidate = "https://" + candidate
	}

	parsedURL, err := url.Parse(candidate)
	if err != nil {
		return apperrors.NewValidationError("url", fmt.Sprintf("invalid URL format: %v", err))
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return apperrors.NewValidationError("url", "URL must start with http:// or https://")
	}

	if parsedURL.Host == "" {
		return apperrors.NewValidationError("url", "URL must contain a valid host")
	}

	return nil
}

// HasHTTPScheme сообщает, начинается ли URL с http:// или https://
func HasHTTPScheme(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// NormalizeTargetURL подставляет https:// к целям, сохраненным без схемы
func NormalizeTargetURL(rawURL string) string {
	target := strings.TrimSpace(rawURL)
	if !HasHTTPScheme(target) {
		target = "https://" + target
	}
	return target
}

// NormalizeAlias убирает слеши и окружающие пробелы из сегмента пути
func NormalizeAlias(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "/", ""))
}

func SanitizeInput(input string) string {
	// Удаляем управляющие символы и обрезаем пробелы
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1 // удаляем символ
		}
		return r
	}, input)

	return strings.TrimSpace(result)
}
