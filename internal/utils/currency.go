package utils

import (
	"errors"
	"math"
	"sort"
	"strconv"

	"tcmb_rates_api/internal/models"

	"github.com/shopspring/decimal"
)

var (
	// ErrMissingValue возвращается, если одной из котировок нет в публикации
	ErrMissingValue = errors.New("rate value is missing")
	// ErrZeroBase возвращается при делении на нулевой курс
	ErrZeroBase = errors.New("base rate is zero")
	// ErrNotFinite возвращается, если результат вычисления вышел за пределы float64
	ErrNotFinite = errors.New("result is not a finite number")
)

// Round округляет значение до places знаков после запятой.
// Округляется точное двоичное значение, половина к чётному: 39.12345 даёт 39.1234.
// NaN и бесконечности возвращаются без изменений.
func Round(value float64, places int32) float64 {
	if !IsFinite(value) {
		return value
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(value, 'f', 30, 64))
	if err != nil {
		return value
	}
	return d.RoundBank(places).InexactFloat64()
}

// IsFinite сообщает, что значение не NaN и не бесконечность
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// Считаем изменение курса в процентах, округлённое до 4 знаков
func PercentChange(start, end *float64) (float64, error) {
	if start == nil || end == nil {
		return 0, ErrMissingValue
	}
	if *start == 0 {
		return 0, ErrZeroBase
	}

	change := (*end - *start) / *start * 100
	if !IsFinite(change) {
		return 0, ErrNotFinite
	}
	return Round(change, 4), nil
}

// Конвертируем сумму через национальную валюту: продаём исходную валюту по курсу
// продажи и покупаем целевую по курсу покупки. Курс округляется до 4 знаков, сумма до 2.
func CalculateConversion(amount, sourceSelling, targetBuying float64) (rate, converted float64, err error) {
	if targetBuying == 0 {
		return 0, 0, ErrZeroBase
	}

	amountInDomestic := amount * sourceSelling
	converted = amountInDomestic / targetBuying
	rate = sourceSelling / targetBuying
	if !IsFinite(rate) || !IsFinite(converted) {
		return 0, 0, ErrNotFinite
	}

	return Round(rate, 4), Round(converted, 2), nil
}

// TopChanges считает изменение курса покупки для каждой валюты из списка и возвращает
// count валют с наибольшим изменением по модулю. Валюты без данных пропускаются.
func TopChanges(today, past *models.Publication, watchlist []string, count int) []models.ChangeRecord {
	changes := make([]models.ChangeRecord, 0, len(watchlist))

	for _, code := range watchlist {
		now := today.FindCurrency(code)
		before := past.FindCurrency(code)
		if now == nil || before == nil {
			continue
		}

		change, err := PercentChange(before.ForexBuying, now.ForexBuying)
		if err != nil {
			continue
		}

		changes = append(changes, models.ChangeRecord{
			Code:          now.Code,
			Start:         Round(*before.ForexBuying, 4),
			End:           Round(*now.ForexBuying, 4),
			ChangePercent: change,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return math.Abs(changes[i].ChangePercent) > math.Abs(changes[j].ChangePercent)
	})

	if count < 0 {
		count = 0
	}
	if len(changes) > count {
		changes = changes[:count]
	}
	return changes
}
