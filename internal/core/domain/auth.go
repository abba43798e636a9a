package domain

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmail       = errors.New("please enter a valid email")
	ErrPasswordRequired   = errors.New("password is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrNameRequired       = errors.New("full name is required")
	ErrPhoneRequired      = errors.New("phone number is required")
	ErrInvalidPhone       = errors.New("phone must be 10 digits")
	ErrInvalidOTP         = errors.New("please enter a valid 6-digit OTP")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	MinPasswordLen = 6
	OTPLength      = 6
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	otpRegex   = regexp.MustCompile(`^\d{6}$`)
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if err := validateEmail(c.Email); err != nil {
		return err
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Number   string `json:"number"`
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	number := strings.TrimSpace(r.Number)
	if number == "" {
		return ErrPhoneRequired
	}
	if !phoneRegex.MatchString(number) {
		return ErrInvalidPhone
	}
	return validatePassword(r.Password)
}

type RegistrationVerification struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (v RegistrationVerification) Validate() error {
	if err := validateEmail(v.Email); err != nil {
		return err
	}
	return ValidateOTP(v.OTP)
}

type PasswordReset struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (p PasswordReset) Validate() error {
	if strings.TrimSpace(p.Email) == "" {
		return ErrEmailRequired
	}
	if err := ValidateOTP(p.OTP); err != nil {
		return err
	}
	return validatePassword(p.NewPassword)
}

// SanitizeOTP keeps digits only and truncates to the OTP length, mirroring
// what the input field accepts.
func SanitizeOTP(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == OTPLength {
				break
			}
		}
	}
	return b.String()
}

func ValidateOTP(otp string) error {
	if !otpRegex.MatchString(otp) {
		return ErrInvalidOTP
	}
	return nil
}

func ValidateEmailOnly(email string) error {
	return validateEmail(email)
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(pw string) error {
	if pw == "" {
		return ErrPasswordRequired
	}
	if utf8.RuneCountInString(pw) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}
