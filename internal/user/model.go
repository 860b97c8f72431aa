package user

import (
	"regexp"
	"time"
	"unicode"
)

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID        uint      `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Local mobile numbers: a leading zero followed by nine digits.
var phonePattern = regexp.MustCompile(`^0\d{9}$`)

func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidPassword requires at least eight characters with at least one
// letter and one digit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
