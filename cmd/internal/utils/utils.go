package utils

import (
	"errors"
	"reflect"
	"strings"
	"time"
)

// DayLayout is the wire and storage format for calendar days.
const DayLayout = "2006-01-02"

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(time.RFC3339)
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// ToISODate formats a time as its "YYYY-MM-DD" calendar day.
func ToISODate(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ParseDay validates a "YYYY-MM-DD" day string.
func ParseDay(day string) (time.Time, error) {
	return time.Parse(DayLayout, day)
}

// NormalizeTimeOfDay brings a time-of-day string to "HH:MM:SS" granularity.
// Forms submit "HH:MM"; the backend stores seconds. An empty input stays
// empty (the caller maps it to an absent column).
func NormalizeTimeOfDay(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04:05"), nil
		}
	}
	return "", errors.New("invalid time of day, expected HH:MM or HH:MM:SS")
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
