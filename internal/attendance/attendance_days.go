package attendance

import (
	"strings"
	"time"

	attendanceerrors "go-hrms/internal/attendance/errors"

	"github.com/shopspring/decimal"
)

// DaysInMonth is the calendar length of month in year.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func ValidPeriod(month, year int) bool {
	return month >= 1 && month <= 12 && year >= 2000 && year <= 2100
}

// ParsePayableDays accepts whole or fractional days. Blank, non-numeric,
// negative or over-long values are rejected.
func ParsePayableDays(raw string, totalDays int) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, attendanceerrors.ErrInvalidPayableDays
	}

	days, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, attendanceerrors.ErrInvalidPayableDays.WithDetails(map[string]string{"value": raw})
	}
	if days.IsNegative() || days.GreaterThan(decimal.NewFromInt(int64(totalDays))) {
		return decimal.Zero, attendanceerrors.ErrInvalidPayableDays.WithDetails(map[string]string{"value": raw})
	}
	return days, nil
}
