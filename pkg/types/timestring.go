package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени
var ErrInvalidTimeString = errors.New("invalid time string format")

// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
var ErrTimeOverflow = errors.New("time string overflows the day")

const minutesPerDay = 24 * 60

// TimeString время суток в формате "HH:MM" (24-часовой формат)
type TimeString string

// NewTimeString создает TimeString из времени (часы и минуты в локации t)
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString парсит строку "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Validate проверяет формат "HH:MM"
func (t TimeString) Validate() error {
	_, err := t.parse()
	return err
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Minutes возвращает количество минут с начала суток.
// Для некорректной строки возвращает -1.
func (t TimeString) Minutes() int {
	m, err := t.parse()
	if err != nil {
		return -1
	}
	return m
}

// Hour возвращает часы
func (t TimeString) Hour() int {
	return t.Minutes() / 60
}

// Minute возвращает минуты
func (t TimeString) Minute() int {
	return t.Minutes() % 60
}

// AddMinutes сдвигает время на n минут в пределах суток
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.parse()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(m + n)
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

func (t TimeString) parse() (int, error) {
	parts := strings.Split(string(t), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}

	return h*60 + m, nil
}
