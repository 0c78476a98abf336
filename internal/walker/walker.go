package walker

import (
	"context"
	"errors"
	"strings"
	"time"

	"tcmb_rates_api/internal/external"
	"tcmb_rates_api/internal/models"
	"tcmb_rates_api/internal/utils"

	"github.com/sirupsen/logrus"
)

// ErrNoData возвращается, если за просмотренные дни не нашлось ни одной котировки
var ErrNoData = errors.New("no rate data found")

// Walker проходит по рабочим дням назад и собирает историю курса
type Walker struct {
	fetcher   external.Fetcher
	logger    *logrus.Logger
	now       func() time.Time
	extraDays int
}

// Создаём новый walker. extraDays ограничивает поиск при длинных праздниках:
// просматривается не больше target+extraDays календарных дней.
func New(fetcher external.Fetcher, logger *logrus.Logger, now func() time.Time, extraDays int) *Walker {
	if now == nil {
		now = time.Now
	}
	return &Walker{
		fetcher:   fetcher,
		logger:    logger,
		now:       now,
		extraDays: extraDays,
	}
}

// CollectHistory собирает до target точек истории, начиная с сегодняшнего дня.
// Выходные пропускаются без запроса к ЦБ. Результат упорядочен от старых к новым.
func (w *Walker) CollectHistory(ctx context.Context, code string, target int) ([]models.HistoryPoint, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	limit := target + w.extraDays

	var points []models.HistoryPoint
	current := utils.StartOfDay(w.now())

	for checked := 0; len(points) < target && checked < limit; checked++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if utils.IsBusinessDay(current) {
			if point, ok := w.pointFor(ctx, code, current); ok {
				points = append(points, point)
			}
		}

		current = current.AddDate(0, 0, -1)
	}

	if len(points) == 0 {
		w.logger.WithFields(logrus.Fields{
			"code":   code,
			"target": target,
		}).Info("No history collected")
		return nil, ErrNoData
	}

	// Обход шёл от новых к старым
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}

	w.logger.WithFields(logrus.Fields{
		"code":      code,
		"target":    target,
		"collected": len(points),
	}).Debug("History collected")

	return points, nil
}

// Точка истории на дату. В точке остаётся запрошенная дата, а не дата из публикации.
func (w *Walker) pointFor(ctx context.Context, code string, date time.Time) (models.HistoryPoint, bool) {
	quote := w.fetcher.Fetch(ctx, date).FindCurrency(code)
	if quote == nil || quote.ForexBuying == nil || quote.ForexSelling == nil {
		return models.HistoryPoint{}, false
	}
	if *quote.ForexBuying == 0 || *quote.ForexSelling == 0 {
		return models.HistoryPoint{}, false
	}

	return models.HistoryPoint{
		Date: date.Format(utils.DateLayout),
		Buy:  utils.Round(*quote.ForexBuying, 4),
		Sell: utils.Round(*quote.ForexSelling, 4),
	}, true
}
