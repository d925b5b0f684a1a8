package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func decodeEntry(t *testing.T, raw string) ForecastEntry {
	t.Helper()
	var e ForecastEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("Unmarshal(%s): %v", raw, err)
	}
	return e
}

func TestForecastEntry_Accessors(t *testing.T) {
	e := decodeEntry(t, `{"dt_txt":"2025-10-18 12:00:00","main":{"temp":293.15,"humidity":40},"weather":[{"description":"clear sky"},{"description":"haze"}]}`)

	if got, err := e.Timestamp(); err != nil || got != "2025-10-18 12:00:00" {
		t.Errorf("Timestamp() = %q, %v", got, err)
	}
	if got, err := e.TempKelvin(); err != nil || got != 293.15 {
		t.Errorf("TempKelvin() = %v, %v", got, err)
	}
	if got, err := e.FirstDescription(); err != nil || got != "clear sky" {
		t.Errorf("FirstDescription() = %q, %v", got, err)
	}
}

func TestForecastEntry_DecodesWithBadFieldTypes(t *testing.T) {
	// Type errors surface only when the field is read.
	e := decodeEntry(t, `{"dt_txt":"2025-10-18 09:00:00","main":"n/a","weather":{"description":1}}`)
	if _, err := e.Timestamp(); err != nil {
		t.Errorf("Timestamp() error = %v", err)
	}
	if _, err := e.TempKelvin(); err == nil {
		t.Error("TempKelvin() expected error for string main")
	}
	if _, err := e.FirstDescription(); err == nil {
		t.Error("FirstDescription() expected error for object weather")
	}
}

func TestForecastEntry_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		read func(ForecastEntry) error
	}{
		{"absent dt_txt", `{}`, func(e ForecastEntry) error { _, err := e.Timestamp(); return err }},
		{"null dt_txt", `{"dt_txt":null}`, func(e ForecastEntry) error { _, err := e.Timestamp(); return err }},
		{"absent main", `{}`, func(e ForecastEntry) error { _, err := e.TempKelvin(); return err }},
		{"null main", `{"main":null}`, func(e ForecastEntry) error { _, err := e.TempKelvin(); return err }},
		{"absent temp", `{"main":{}}`, func(e ForecastEntry) error { _, err := e.TempKelvin(); return err }},
		{"null temp", `{"main":{"temp":null}}`, func(e ForecastEntry) error { _, err := e.TempKelvin(); return err }},
		{"absent weather", `{}`, func(e ForecastEntry) error { _, err := e.FirstDescription(); return err }},
		{"empty weather", `{"weather":[]}`, func(e ForecastEntry) error { _, err := e.FirstDescription(); return err }},
		{"absent description", `{"weather":[{}]}`, func(e ForecastEntry) error { _, err := e.FirstDescription(); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.read(decodeEntry(t, tt.raw)); !errors.Is(err, ErrMissingField) {
				t.Errorf("error = %v, want ErrMissingField", err)
			}
		})
	}
}

func TestDailySummaryLine_String(t *testing.T) {
	l := DailySummaryLine{Date: "2025-10-18", TempC: -0.04, Description: "Snow"}
	if got, want := l.String(), "2025-10-18 | -0.0°C | Snow"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
