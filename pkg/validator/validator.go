package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidatePhone acepta números con o sin prefijo internacional,
// ignorando espacios, guiones y paréntesis.
func ValidatePhone(phone string) bool {
	cleanPhone := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)

	return phoneRegex.MatchString(cleanPhone)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6
}

type DireccionInput struct {
	Calle  string
	Ciudad string
	Estado string
}

func ValidateDireccion(d DireccionInput) (bool, string) {
	if d.Calle == "" || d.Ciudad == "" || d.Estado == "" {
		return false, "Todos los campos de dirección son obligatorios"
	}
	if len(strings.TrimSpace(d.Calle)) < 5 {
		return false, "La dirección debe tener al menos 5 caracteres"
	}
	if len(strings.TrimSpace(d.Ciudad)) < 2 {
		return false, "La ciudad debe tener al menos 2 caracteres"
	}
	if len(strings.TrimSpace(d.Estado)) < 2 {
		return false, "El estado debe tener al menos 2 caracteres"
	}
	return true, ""
}

func FormatPhone(phone string) string {
	cleanPhone := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)

	return cleanPhone
}
