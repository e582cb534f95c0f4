package services

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidMonth = errors.New("invalid month")
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func MonthStart(value time.Time, location *time.Location) time.Time {
	day := DateAtLocation(value, location)
	return day.AddDate(0, 0, 1-day.Day())
}

// ParseMonth reads a YYYY-MM value; an empty value means the month of now.
func ParseMonth(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	if raw == "" {
		return MonthStart(now, location), nil
	}
	month, err := time.ParseInLocation(monthLayout, raw, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidMonth, err)
	}
	return month, nil
}
