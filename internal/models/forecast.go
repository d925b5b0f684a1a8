package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kjstillabower/forecast-summary/internal/units"
)

// ForecastPayload is the decoded body of the 5-day/3-hour forecast endpoint.
// List is nil when the "list" key is absent from the response.
type ForecastPayload struct {
	List []ForecastEntry `json:"list"`
	City *ForecastCity   `json:"city,omitempty"`
}

// ForecastCity is the optional city block returned alongside the entries.
type ForecastCity struct {
	Name     string `json:"name"`
	Country  string `json:"country"`
	Timezone int    `json:"timezone"`
}

// ForecastEntry is one 3-hour forecast sample. Fields stay raw until read
// through the accessors, so a bad value only matters for entries that are used.
type ForecastEntry struct {
	DtTxt   json.RawMessage `json:"dt_txt"`
	Main    json.RawMessage `json:"main"`
	Weather json.RawMessage `json:"weather"`
}

type entryMain struct {
	Temp *float64 `json:"temp"` // Kelvin
}

type weatherCondition struct {
	Description *string `json:"description"`
}

// ErrMissingField is returned by the accessors when a key is absent or null.
var ErrMissingField = errors.New("missing field")

// Timestamp returns dt_txt, e.g. "2025-10-18 12:00:00".
func (e ForecastEntry) Timestamp() (string, error) {
	var s *string
	if err := decodeField("dt_txt", e.DtTxt, &s); err != nil {
		return "", err
	}
	if s == nil {
		return "", fmt.Errorf("%w: dt_txt", ErrMissingField)
	}
	return *s, nil
}

// TempKelvin returns main.temp.
func (e ForecastEntry) TempKelvin() (float64, error) {
	var m *entryMain
	if err := decodeField("main", e.Main, &m); err != nil {
		return 0, err
	}
	if m == nil {
		return 0, fmt.Errorf("%w: main", ErrMissingField)
	}
	if m.Temp == nil {
		return 0, fmt.Errorf("%w: main.temp", ErrMissingField)
	}
	return *m.Temp, nil
}

// FirstDescription returns weather[0].description.
func (e ForecastEntry) FirstDescription() (string, error) {
	var conditions []weatherCondition
	if err := decodeField("weather", e.Weather, &conditions); err != nil {
		return "", err
	}
	if len(conditions) == 0 {
		return "", fmt.Errorf("%w: weather[0]", ErrMissingField)
	}
	if conditions[0].Description == nil {
		return "", fmt.Errorf("%w: weather[0].description", ErrMissingField)
	}
	return *conditions[0].Description, nil
}

func decodeField(name string, raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// DailySummaryLine is one rendered row of a daily summary.
type DailySummaryLine struct {
	Date        string
	TempC       float64
	Description string
}

func (l DailySummaryLine) String() string {
	return l.Date + " | " + units.FormatCelsius(l.TempC) + "°C | " + l.Description
}
