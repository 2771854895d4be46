package password

import (
	"strings"
	"unicode"
)

// Advisory strength buckets shown next to the password field while typing.
const (
	LevelWeak   = "weak"
	LevelGood   = "good"
	LevelStrong = "strong"
)

const MinLength = 6

// Strength is the advisory score for a candidate password. Score counts one
// point each for length >= 6, a letter, a digit, and a special character
// (bonus only; never required by the submission policy).
type Strength struct {
	Score   int
	Level   string
	Missing []string
}

// Message renders the strength the way the console displays it.
func (s Strength) Message() string {
	switch s.Level {
	case LevelStrong:
		return "Strong password"
	case LevelGood:
		return "Good password. Missing: " + strings.Join(s.Missing, ", ")
	default:
		return "Weak password. Needs: " + strings.Join(s.Missing, ", ")
	}
}

func CheckStrength(pw string) Strength {
	var st Strength
	if len(pw) >= MinLength {
		st.Score++
	} else {
		st.Missing = append(st.Missing, "at least 6 characters")
	}
	if hasLetter(pw) {
		st.Score++
	} else {
		st.Missing = append(st.Missing, "letters")
	}
	if hasDigit(pw) {
		st.Score++
	} else {
		st.Missing = append(st.Missing, "numbers")
	}
	if hasSpecial(pw) {
		st.Score++
	}

	switch {
	case st.Score >= 3:
		st.Level = LevelStrong
	case st.Score >= 2:
		st.Level = LevelGood
	default:
		st.Level = LevelWeak
	}
	return st
}

// Validate enforces the submission-time policy: non-empty, matching
// confirmation, length >= 6, at least one letter and one digit. It is
// independent of the advisory score above.
func Validate(pw, confirm string) error {
	if pw == "" || confirm == "" {
		return ErrFieldsRequired
	}
	if pw != confirm {
		return ErrMismatch
	}
	if len(pw) < MinLength {
		return ErrTooShort
	}
	if !hasLetter(pw) || !hasDigit(pw) {
		return ErrNeedsLetterAndDigit
	}
	return nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

func hasSpecial(s string) bool {
	return strings.ContainsAny(s, `!@#$%^&*(),.?":{}|<>`)
}
