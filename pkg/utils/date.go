package utils

import "time"

// ParseDate interpreta uma data YYYY-MM-DD; vazio retorna o dia corrente em loc
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	if dateStr == "" {
		if loc == nil {
			loc = time.UTC
		}
		now := time.Now().In(loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Parse(time.DateOnly, dateStr)
}
