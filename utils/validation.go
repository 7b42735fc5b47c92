package utils

import (
	"fmt"

	"html"
	"regexp"
	"strings"
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")

	jsEventRegex := regexp.MustCompile(`on\w+="[^"]*"`)
	sanitized = jsEventRegex.ReplaceAllString(sanitized, "")

	dataUriRegex := regexp.MustCompile(`data:[^;]+;base64,[^"']+`)
	sanitized = dataUriRegex.ReplaceAllString(sanitized, "")

	return sanitized
}

// ValidateName checks if the name is valid and safe
func ValidateName(name string) (bool, string) {
	if name == "" {
		return true, "" // Name is optional
	}

	name = SanitizeString(name)

	if len(strings.TrimSpace(name)) < 2 {
		return false, "Name must be at least 2 characters long"
	}

	if matched, _ := regexp.MatchString(`[0-9!@#$%^&*(),.?":{}|<>]`, name); matched {
		return false, "Name cannot contain numbers or special characters"
	}

	return true, ""
}

// FormatPhoneNumber formats and validates an Indian phone number
func FormatPhoneNumber(phone string) (string, error) {
	// Remove all non-digit characters
	phone = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)

	// Remove leading '0' or '+91' if present
	if strings.HasPrefix(phone, "0") {
		phone = phone[1:]
	}
	if strings.HasPrefix(phone, "91") && len(phone) > 10 {
		phone = phone[2:]
	}

	if len(phone) != 10 {
		return "", fmt.Errorf("phone number must be exactly 10 digits")
	}

	if phone[0] < '6' || phone[0] > '9' {
		return "", fmt.Errorf("phone number must start with 6, 7, 8, or 9")
	}

	return phone, nil
}
