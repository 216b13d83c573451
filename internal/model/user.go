package model

import (
	"fmt"
	"net/mail"
	"time"
)

// User represents an account with a profile.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	PasswordHash string  `json:"-"`
	DisplayName  string  `json:"display_name"`
	BirthDate    *string `json:"birth_date,omitempty"`
	AvatarMime   string  `json:"avatar_mime,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePassword checks that a password meets the minimum requirements.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// ValidateEmail checks that an email address is well-formed.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// BirthDateFormat is the accepted birth date layout.
const BirthDateFormat = "2006-01-02"

// ValidateBirthDate checks that a birth date string is a valid date.
// The empty string is accepted (birth date is optional).
func ValidateBirthDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(BirthDateFormat, date); err != nil {
		return fmt.Errorf("birth date must be in YYYY-MM-DD format")
	}
	return nil
}
