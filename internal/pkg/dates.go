package pkg

import (
	"time"
)

const DayLayout = "2006-01-02"

// ParseDay interpreta uma string YYYY-MM-DD como um dia de calendário em UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// FormatDay formata o dia de calendário de t como YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// TruncateToDay descarta a parte de hora de t, preservando o dia em UTC.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTimestamp aceita ISO-8601 com fração de segundos e, na falta dela,
// o formato de segundos inteiros gravado por versões antigas do app.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// FormatTimestamp grava timestamps com fração de segundos, como o app móvel.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
