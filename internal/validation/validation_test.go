package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateCity_EmptyAndWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"tab", "\t"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCity(tc.input, 1, 100)
			if !errors.Is(err, ErrCityEmpty) {
				t.Errorf("error = %v, want ErrCityEmpty", err)
			}
		})
	}
}

func TestValidateCity_TooShort(t *testing.T) {
	_, err := ValidateCity("x", 2, 100)
	if !errors.Is(err, ErrCityTooShort) {
		t.Errorf("error = %v, want ErrCityTooShort", err)
	}
}

func TestValidateCity_TooLong(t *testing.T) {
	if _, err := ValidateCity(strings.Repeat("a", 11), 1, 10); !errors.Is(err, ErrCityTooLong) {
		t.Errorf("error = %v, want ErrCityTooLong", err)
	}
	if _, err := ValidateCity(strings.Repeat("a", DefaultMaxCityLength+1), 0, 0); !errors.Is(err, ErrCityTooLong) {
		t.Errorf("error = %v, want ErrCityTooLong with default max", err)
	}
}

func TestValidateCity_InvalidChars(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"slash", "tor/onto"},
		{"ampersand", "Toronto&appid=x"},
		{"question", "Toronto?"},
		{"newline", "Tor\nonto"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCity(tc.input, 1, 100)
			if !errors.Is(err, ErrCityInvalidChars) {
				t.Errorf("error = %v, want ErrCityInvalidChars", err)
			}
		})
	}
}

func TestValidateCity_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Toronto", "Toronto"},
		{"  Kitchener ", "Kitchener"},
		{"St. John's", "St. John's"},
		{"Ottawa,CA", "Ottawa,CA"},
		{"Trois-Rivières", "Trois-Rivières"},
		{"Montréal", "Montréal"},
	}
	for _, tc := range tests {
		got, err := ValidateCity(tc.input, 1, 100)
		if err != nil {
			t.Errorf("ValidateCity(%q) error = %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ValidateCity(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
