package password

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckStrength_Scores(t *testing.T) {
	cases := []struct {
		pw    string
		score int
		level string
	}{
		{"", 0, LevelWeak},
		{"abc", 1, LevelWeak},         // letters only
		{"123", 1, LevelWeak},         // digits only
		{"abc123", 3, LevelStrong},    // length + letters + digits
		{"abcdef", 2, LevelGood},      // length + letters
		{"abc12!", 4, LevelStrong},    // everything
		{"ab1!", 3, LevelStrong},      // short but letter+digit+special
		{"!!!!!!", 2, LevelGood},      // length + special
	}
	for _, c := range cases {
		got := CheckStrength(c.pw)
		if got.Score != c.score {
			t.Errorf("CheckStrength(%q).Score = %d, want %d", c.pw, got.Score, c.score)
		}
		if got.Level != c.level {
			t.Errorf("CheckStrength(%q).Level = %s, want %s", c.pw, got.Level, c.level)
		}
	}
}

// Score must be monotonically non-decreasing as more criteria are satisfied.
func TestCheckStrength_Monotonic(t *testing.T) {
	steps := []string{"a", "abcdef", "abcde1", "abcde1!"}
	prev := -1
	for _, pw := range steps {
		s := CheckStrength(pw).Score
		if s < prev {
			t.Fatalf("score decreased: %q scored %d after %d", pw, s, prev)
		}
		prev = s
	}
}

func TestCheckStrength_MissingList(t *testing.T) {
	st := CheckStrength("abc")
	msg := st.Message()
	if !strings.Contains(msg, "at least 6 characters") || !strings.Contains(msg, "numbers") {
		t.Errorf("missing list not surfaced: %q", msg)
	}
	if strings.Contains(msg, "letters") {
		t.Errorf("letters wrongly reported missing: %q", msg)
	}
}

func TestValidate_Policy(t *testing.T) {
	cases := []struct {
		name    string
		pw      string
		confirm string
		want    error
	}{
		{"empty", "", "", ErrFieldsRequired},
		{"mismatch", "abc123", "abc124", ErrMismatch},
		{"short", "ab1", "ab1", ErrTooShort},
		{"letters only despite length", "abcdef", "abcdef", ErrNeedsLetterAndDigit},
		{"digits only", "123456", "123456", ErrNeedsLetterAndDigit},
		{"valid", "abc123", "abc123", nil},
		{"valid without special", "secret1", "secret1", nil},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.pw, c.confirm)
			if !errors.Is(err, c.want) {
				t.Fatalf("Validate(%q, %q) = %v, want %v", c.pw, c.confirm, err, c.want)
			}
		})
	}
}

// The policy is independent of the advisory score: a password can bucket
// "good" on score and still be rejected at submission.
func TestValidate_IndependentOfScore(t *testing.T) {
	if CheckStrength("abcdef").Level != LevelGood {
		t.Fatal("expected abcdef to score in the good bucket")
	}
	if err := Validate("abcdef", "abcdef"); !errors.Is(err, ErrNeedsLetterAndDigit) {
		t.Fatalf("abcdef must be rejected at submission, got %v", err)
	}
}
