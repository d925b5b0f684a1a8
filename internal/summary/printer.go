// Package summary renders the noon-per-day summary of a forecast payload.
package summary

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kjstillabower/forecast-summary/internal/models"
	"github.com/kjstillabower/forecast-summary/internal/units"
)

// NoonTime is the only time of day that produces a summary line.
const NoonTime = "12:00:00"

// ErrMalformedEntry is returned when the payload lacks a key the summary needs.
var ErrMalformedEntry = errors.New("malformed forecast entry")

// Printer writes daily summaries to out.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintDailySummary writes the header for city followed by one line per date,
// taken from the first entry of that date at exactly 12:00:00. It stops at the
// first malformed entry; lines already written stay written.
func (p *Printer) PrintDailySummary(city string, payload models.ForecastPayload) (int, error) {
	if _, err := fmt.Fprintf(p.out, "\nWeather forecast for %s (Daily Summary):\n", city); err != nil {
		return 0, err
	}
	written := 0
	err := eachDailySummary(payload, func(line models.DailySummaryLine) error {
		if _, err := fmt.Fprintln(p.out, line.String()); err != nil {
			return err
		}
		written++
		return nil
	})
	return written, err
}

// DailySummaries returns the lines PrintDailySummary would write, without the
// header. On a malformed entry it returns the lines collected so far.
func DailySummaries(payload models.ForecastPayload) ([]models.DailySummaryLine, error) {
	var lines []models.DailySummaryLine
	err := eachDailySummary(payload, func(line models.DailySummaryLine) error {
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

func eachDailySummary(payload models.ForecastPayload, emit func(models.DailySummaryLine) error) error {
	if payload.List == nil {
		return fmt.Errorf("%w: payload has no list", ErrMalformedEntry)
	}
	seenDates := make(map[string]struct{})
	for i, entry := range payload.List {
		date, clock, err := splitDtTxt(entry)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrMalformedEntry, i, err)
		}
		if clock != NoonTime {
			continue
		}
		if _, seen := seenDates[date]; seen {
			continue
		}
		seenDates[date] = struct{}{}

		line, err := summarize(date, entry)
		if err != nil {
			return fmt.Errorf("%w: entry %d: %v", ErrMalformedEntry, i, err)
		}
		if err := emit(line); err != nil {
			return err
		}
	}
	return nil
}

func splitDtTxt(entry models.ForecastEntry) (date, clock string, err error) {
	dtTxt, err := entry.Timestamp()
	if err != nil {
		return "", "", err
	}
	fields := strings.Fields(dtTxt)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("dt_txt %q is not \"date time\"", dtTxt)
	}
	return fields[0], fields[1], nil
}

func summarize(date string, entry models.ForecastEntry) (models.DailySummaryLine, error) {
	tempK, err := entry.TempKelvin()
	if err != nil {
		return models.DailySummaryLine{}, err
	}
	description, err := entry.FirstDescription()
	if err != nil {
		return models.DailySummaryLine{}, err
	}
	return models.DailySummaryLine{
		Date:        date,
		TempC:       units.KelvinToCelsius(tempK),
		Description: capitalizeFirst(description),
	}, nil
}

// capitalizeFirst upper-cases the first rune of s and leaves the rest as is.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
