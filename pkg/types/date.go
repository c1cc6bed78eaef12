package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate возвращается при некорректном формате даты
var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

const dateLayout = "2006-01-02"

// Date календарная дата без времени и часового пояса
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate создает нормализованную дату (2025-06-31 -> 2025-07-01)
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарную дату момента t в его собственной локации
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate парсит строку "YYYY-MM-DD"
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// String возвращает дату в формате "YYYY-MM-DD"
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero возвращает true, если дата не задана
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// Weekday возвращает день недели
func (d Date) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

// Before возвращает true, если d строго раньше other
func (d Date) Before(other Date) bool {
	return d.midnightUTC().Before(other.midnightUTC())
}

// After возвращает true, если d строго позже other
func (d Date) After(other Date) bool {
	return d.midnightUTC().After(other.midnightUTC())
}

// DaysUntil возвращает количество дней от d до other (отрицательное, если other раньше)
func (d Date) DaysUntil(other Date) int {
	return int(other.midnightUTC().Sub(d.midnightUTC()).Hours() / 24)
}

// In возвращает момент времени hh:mm этой даты в локации loc
func (d Date) In(loc *time.Location, hour, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, hour, minute, 0, 0, loc)
}

func (d Date) midnightUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
