package validation

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MaxProjectNameLength        = 200
	MaxProjectDescriptionLength = 5000
	MaxExternalLinkLength       = 500
	MaxTagsCount                = 50
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateExternalLink проверяет ссылку на репозиторий или задеплоенный проект.
// Пустая ссылка допустима и означает очистку поля.
func ValidateExternalLink(fieldName string, link *string) error {
	if link == nil || *link == "" {
		return nil
	}

	linkStr := strings.TrimSpace(*link)
	if err := ValidateLength(fieldName, linkStr, 0, MaxExternalLinkLength); err != nil {
		return err
	}

	parsedURL, err := url.Parse(linkStr)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL", fieldName)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s must start with http:// or https://", fieldName)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must contain a host", fieldName)
	}
	return nil
}

// ValidateTags ограничивает количество и длину features/addons.
func ValidateTags(fieldName string, tags []string) error {
	if len(tags) > MaxTagsCount {
		return fmt.Errorf("%s: no more than %d items allowed", fieldName, MaxTagsCount)
	}
	for _, tag := range tags {
		if err := ValidateLength(fieldName, tag, 0, 100); err != nil {
			return err
		}
	}
	return nil
}
