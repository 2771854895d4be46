package auth

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\s\-()]{6,19}$`)
)

func ValidEmail(s string) bool { return emailRe.MatchString(s) }

func ValidPhone(s string) bool { return phoneRe.MatchString(s) }
