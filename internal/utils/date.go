package utils

import "time"

// Формат дат в ответах API
const DateLayout = "2006-01-02"

// Формат даты в запросах: месяц и день можно указывать без ведущего нуля (2025-6-1)
const RequestDateLayout = "2006-1-2"

// Рабочий день: понедельник-пятница, праздники не учитываются
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Сдвигаем дату назад, пока она приходится на выходной
func PreviousBusinessDay(d time.Time) time.Time {
	for !IsBusinessDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// StartOfDay отбрасывает время, оставляя календарную дату в часовом поясе t
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
