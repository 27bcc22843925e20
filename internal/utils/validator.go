package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/intervue/auth-service/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates an email address
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePassword enforces the password policy: at least 8 characters with
// an uppercase letter, a lowercase letter, a digit, and a special character.
// bcrypt silently truncates at 72 bytes, so longer passwords are rejected
// outright with a clear message.
func ValidatePassword(password string) error {
	if len(password) > 72 {
		return fmt.Errorf("%w: must be 72 characters or fewer", domain.ErrPasswordPolicy)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char) || char == ' ':
			hasSpecial = true
		}
	}

	var missing []string
	if len(password) < 8 {
		missing = append(missing, "at least 8 characters")
	}
	if !hasUpper {
		missing = append(missing, "an uppercase letter")
	}
	if !hasLower {
		missing = append(missing, "a lowercase letter")
	}
	if !hasDigit {
		missing = append(missing, "a digit")
	}
	if !hasSpecial {
		missing = append(missing, "a special character")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: must contain %s", domain.ErrPasswordPolicy, strings.Join(missing, ", "))
	}

	return nil
}

// SanitizeEmail sanitizes an email address
func SanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
