package validation

import (
	"errors"
	"strings"
	"unicode"
)

// ErrCityEmpty is returned when a city is empty or whitespace-only after trim.
var ErrCityEmpty = errors.New("city is required")

// ErrCityTooShort is returned when a city name is below the minimum length.
var ErrCityTooShort = errors.New("city too short")

// ErrCityTooLong is returned when a city name exceeds the maximum length.
var ErrCityTooLong = errors.New("city too long")

// ErrCityInvalidChars is returned when a city name contains disallowed characters.
var ErrCityInvalidChars = errors.New("city contains invalid characters")

// DefaultMaxCityLength applies when ValidateCity is called with maxLen 0.
const DefaultMaxCityLength = 100

// ValidateCity trims the input, enforces length bounds (minLen, maxLen in runes;
// maxLen 0 means DefaultMaxCityLength) and restricts to letters (Unicode), digits,
// space, comma, hyphen, period and apostrophe. Returns the trimmed name.
func ValidateCity(input string, minLen, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxCityLength
	}
	s := strings.TrimSpace(input)
	r := []rune(s)
	n := len(r)
	if n == 0 {
		return "", ErrCityEmpty
	}
	if minLen > 0 && n < minLen {
		return "", ErrCityTooShort
	}
	if n > maxLen {
		return "", ErrCityTooLong
	}
	for _, c := range r {
		if !isAllowedCityRune(c) {
			return "", ErrCityInvalidChars
		}
	}
	return s, nil
}

func isAllowedCityRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsNumber(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '.', '\'':
		return true
	}
	return false
}
