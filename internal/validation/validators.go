// Package validation holds the field checks applied to registration and
// profile input before it reaches the user service.
package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
)

var (
	ErrNameRequired    = errors.New("name must not be empty")
	ErrNameInvalid     = errors.New("name may only contain letters and spaces")
	ErrEmailRequired   = errors.New("email must not be empty")
	ErrEmailInvalid    = errors.New("email format is invalid")
	ErrPhoneRequired   = errors.New("phone must not be empty")
	ErrPhoneInvalid    = errors.New("phone must be 8 or 9 digits")
	ErrPasswordWeak    = errors.New("password needs at least 8 characters, one uppercase letter and one digit")
	ErrAddressRequired = errors.New("shipping address must not be empty")
)

func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	if !nameRe.MatchString(name) {
		return ErrNameInvalid
	}
	return nil
}

func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailRe.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func Phone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return ErrPhoneRequired
	}
	if !phoneRe.MatchString(phone) || len(phone) < 8 || len(phone) > 9 {
		return ErrPhoneInvalid
	}
	return nil
}

// Password requires length >= 8, one uppercase letter and one digit.
func Password(password string) error {
	if len(password) < 8 {
		return ErrPasswordWeak
	}
	hasUpper, hasDigit := false, false
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasDigit {
		return ErrPasswordWeak
	}
	return nil
}

func ShippingAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressRequired
	}
	return nil
}
