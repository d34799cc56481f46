package storage

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validEmail checks the basic shape of an email address
func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// sanitizeEmail trims and lowercases an email address
func sanitizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
