package billing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidClock indicates a clock time that is not a valid HH:MM value.
var ErrInvalidClock = errors.New("invalid clock time")

var minutesPerHour = decimal.NewFromInt(60)

// ParseClock converts an "HH:MM" wall-clock time into minutes since midnight.
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes since midnight as zero-padded "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// NormalizeClock zero-pads a valid clock time so clock strings sort in time
// order. Malformed values are returned unchanged.
func NormalizeClock(value string) string {
	minute, err := ParseClock(value)
	if err != nil {
		return value
	}
	return FormatClock(minute)
}

// HoursBetween returns the elapsed hours between two minute-of-day values,
// rounded half-up to two decimals. Spans that are zero or negative yield zero;
// an end before the start is not treated as crossing midnight.
func HoursBetween(startMinute, endMinute int) decimal.Decimal {
	diff := endMinute - startMinute
	if diff <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(diff)).Div(minutesPerHour).Round(2)
}

// ElapsedHours returns the hours between two "HH:MM" clock times.
// Malformed input counts as zero elapsed time.
func ElapsedHours(start, end string) decimal.Decimal {
	startMinute, err := ParseClock(start)
	if err != nil {
		return decimal.Zero
	}
	endMinute, err := ParseClock(end)
	if err != nil {
		return decimal.Zero
	}
	return HoursBetween(startMinute, endMinute)
}
