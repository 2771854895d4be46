package password

import "errors"

var (
	ErrFieldsRequired      = errors.New("all password fields are required")
	ErrMismatch            = errors.New("passwords do not match")
	ErrTooShort            = errors.New("password must be at least 6 characters long")
	ErrNeedsLetterAndDigit = errors.New("password must contain at least one letter and one number")
)
