package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tcmb_rates_api/internal/external"
	"tcmb_rates_api/internal/models"
	"tcmb_rates_api/internal/utils"
	"tcmb_rates_api/internal/walker"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"
)

// Значения по умолчанию для query-параметров
const (
	defaultDiffDays    = 7
	defaultHistoryDays = 10
	defaultTopDays     = 7
	defaultTopCount    = 5
)

// HistoryCollector собирает историю курса по рабочим дням
type HistoryCollector interface {
	CollectHistory(ctx context.Context, code string, target int) ([]models.HistoryPoint, error)
}

// Зависимости для обработчиков
type Handler struct {
	fetcher          external.Fetcher
	history          HistoryCollector
	logger           *logrus.Logger
	now              func() time.Time
	domesticCurrency string
	watchlist        []string
}

// Создаём новый экземпляр Handler. now должен возвращать время в часовом поясе сервиса.
func New(fetcher external.Fetcher, history HistoryCollector, logger *logrus.Logger, now func() time.Time, domesticCurrency string, watchlist []string) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		fetcher:          fetcher,
		history:          history,
		logger:           logger,
		now:              now,
		domesticCurrency: strings.ToUpper(domesticCurrency),
		watchlist:        watchlist,
	}
}

// @Summary Описание сервиса
// @Tags system
// @Produce json
// @Success 200 {object} models.ServiceInfo
// @Failure 403 {object} models.ErrorResponse
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, models.ServiceInfo{
		Message: "TCMB Kur API - /today, /currency?code=USD&date=2025-06-18",
		Endpoints: []string{
			"/today",
			"/currency?code=USD&date=YYYY-MM-DD",
			"/diff?code=USD&days=7",
			"/convert?from=USD&to=EUR&amount=100",
			"/history?code=USD&days=10",
			"/top-changes?days=7&count=5",
		},
	})
}

// @Summary Все курсы за сегодня
// @Description Публикация ЦБ Турции за текущий день в исходной структуре
// @Tags rates
// @Produce json
// @Success 200 {object} models.Publication
// @Failure 503 {object} models.ErrorResponse
// @Router /today [get]
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	pub := h.fetcher.Fetch(r.Context(), time.Time{})
	if pub == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Service unavailable", "Rate data could not be retrieved")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, pub)
}

// @Summary Курс валюты на дату
// @Description Если данных нет, возвращает 200 с полем error
// @Tags rates
// @Produce json
// @Param code query string true "Код валюты (например, USD)"
// @Param date query string false "Дата в формате YYYY-MM-DD, по умолчанию сегодня"
// @Success 200 {object} models.Quote
// @Failure 400 {object} models.ErrorResponse
// @Router /currency [get]
func (h *Handler) Currency(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requiredCode(w, r, "code")
	if !ok {
		return
	}

	var date time.Time
	dateParam := strings.TrimSpace(r.URL.Query().Get("date"))
	if dateParam != "" {
		parsed, err := time.ParseInLocation(utils.RequestDateLayout, dateParam, h.now().Location())
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "Validation error", "date must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	// Отсутствие данных здесь не меняет статус: клиенты API проверяют поле error
	pub := h.fetcher.Fetch(r.Context(), date)
	if pub == nil {
		h.writeJSONResponse(w, http.StatusOK, models.CurrencyErrorResponse{
			Error: "Rate data not found",
			Code:  code,
			Date:  dateParam,
		})
		return
	}

	quote := pub.FindCurrency(code)
	if quote == nil {
		h.writeJSONResponse(w, http.StatusOK, models.CurrencyErrorResponse{
			Error: fmt.Sprintf("%s rate not found", code),
			Code:  code,
			Date:  dateParam,
		})
		return
	}

	h.writeJSONResponse(w, http.StatusOK, quote)
}

// @Summary Изменение курса за период
// @Tags analytics
// @Produce json
// @Param code query string true "Код валюты"
// @Param days query int false "Количество дней" default(7)
// @Success 200 {object} models.DiffResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /diff [get]
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requiredCode(w, r, "code")
	if !ok {
		return
	}
	days, ok := h.intParam(w, r, "days", defaultDiffDays)
	if !ok {
		return
	}

	today := utils.StartOfDay(h.now())
	startDay := today.AddDate(0, 0, -days)

	todayPub, pastPub := h.fetchPair(r.Context(), today, startDay)
	todayInfo := todayPub.FindCurrency(code)
	pastInfo := pastPub.FindCurrency(code)

	if todayInfo == nil || pastInfo == nil {
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", "Currency data not available for given days")
		return
	}

	change, err := utils.PercentChange(pastInfo.ForexBuying, todayInfo.ForexBuying)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"code":       code,
			"start_date": startDay.Format(utils.DateLayout),
		}).Error("Failed to calculate change")
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal error", "Could not calculate change")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.DiffResponse{
		ChangeRecord: models.ChangeRecord{
			Code:          code,
			Start:         utils.Round(*pastInfo.ForexBuying, 4),
			End:           utils.Round(*todayInfo.ForexBuying, 4),
			ChangePercent: change,
		},
		StartDate: startDay.Format(utils.DateLayout),
		EndDate:   today.Format(utils.DateLayout),
	})
}

// @Summary Конвертация суммы между валютами
// @Description Конвертация через турецкую лиру по текущим курсам
// @Tags analytics
// @Produce json
// @Param from query string true "Исходная валюта"
// @Param to query string true "Целевая валюта"
// @Param amount query number true "Сумма"
// @Success 200 {object} models.ConvertResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	from, ok := h.requiredCode(w, r, "from")
	if !ok {
		return
	}
	to, ok := h.requiredCode(w, r, "to")
	if !ok {
		return
	}

	amountParam := strings.TrimSpace(r.URL.Query().Get("amount"))
	if amountParam == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Validation error", "amount is required")
		return
	}
	amount, err := strconv.ParseFloat(amountParam, 64)
	if err != nil || !utils.IsFinite(amount) {
		h.writeErrorResponse(w, http.StatusBadRequest, "Validation error", "amount must be a finite number")
		return
	}

	pub := h.fetcher.Fetch(r.Context(), time.Time{})
	if pub == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Service unavailable", "Rate data could not be retrieved")
		return
	}

	sourceSelling, ok := h.sideRate(pub, from, func(q *models.Quote) *float64 { return q.ForexSelling })
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", fmt.Sprintf("%s rate not found", from))
		return
	}
	targetBuying, ok := h.sideRate(pub, to, func(q *models.Quote) *float64 { return q.ForexBuying })
	if !ok {
		h.writeErrorResponse(w, http.StatusNotFound, "Not found", fmt.Sprintf("%s rate not found", to))
		return
	}

	rate, converted, err := utils.CalculateConversion(amount, sourceSelling, targetBuying)
	if err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"from": from,
			"to":   to,
		}).Error("Failed to convert amount")
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal error", "Could not calculate conversion")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"from":   from,
		"to":     to,
		"amount": amount,
		"rate":   rate,
	}).Debug("Amount converted")

	h.writeJSONResponse(w, http.StatusOK, models.ConvertResponse{
		From:      from,
		To:        to,
		Amount:    amount,
		Rate:      rate,
		Converted: converted,
	})
}

// @Summary История курса по рабочим дням
// @Tags analytics
// @Produce json
// @Param code query string true "Код валюты"
// @Param days query int false "Количество рабочих дней" default(10)
// @Success 200 {array} models.HistoryPoint
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	code, ok := h.requiredCode(w, r, "code")
	if !ok {
		return
	}
	days, ok := h.intParam(w, r, "days", defaultHistoryDays)
	if !ok {
		return
	}

	points, err := h.history.CollectHistory(r.Context(), code, days)
	if err != nil {
		if errors.Is(err, walker.ErrNoData) {
			h.writeErrorResponse(w, http.StatusNotFound, "Not found", "No data found")
			return
		}
		h.logger.WithError(err).WithField("code", code).Error("Failed to collect history")
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal error", "Failed to collect history")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, points)
}

// @Summary Валюты с наибольшим изменением курса
// @Tags analytics
// @Produce json
// @Param days query int false "Количество дней" default(7)
// @Param count query int false "Количество валют в ответе" default(5)
// @Success 200 {array} models.ChangeRecord
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /top-changes [get]
func (h *Handler) TopChanges(w http.ResponseWriter, r *http.Request) {
	days, ok := h.intParam(w, r, "days", defaultTopDays)
	if !ok {
		return
	}
	count, ok := h.intParam(w, r, "count", defaultTopCount)
	if !ok {
		return
	}

	today := utils.StartOfDay(h.now())
	startDay := utils.PreviousBusinessDay(today.AddDate(0, 0, -days))

	todayPub, pastPub := h.fetchPair(r.Context(), today, startDay)
	if todayPub == nil || pastPub == nil {
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "Service unavailable", "Rate data could not be retrieved")
		return
	}

	h.writeJSONResponse(w, http.StatusOK, utils.TopChanges(todayPub, pastPub, h.watchlist, count))
}

// Загружаем две публикации параллельно. Отсутствие данных не ошибка, поэтому группа ничего не возвращает.
func (h *Handler) fetchPair(ctx context.Context, today, past time.Time) (todayPub, pastPub *models.Publication) {
	var g errgroup.Group
	g.Go(func() error {
		todayPub = h.fetcher.Fetch(ctx, today)
		return nil
	})
	g.Go(func() error {
		pastPub = h.fetcher.Fetch(ctx, past)
		return nil
	})
	_ = g.Wait()

	return todayPub, pastPub
}

// Курс нужной стороны котировки. Национальная валюта в публикации не указана, её курс 1.
func (h *Handler) sideRate(pub *models.Publication, code string, side func(*models.Quote) *float64) (float64, bool) {
	if code == h.domesticCurrency {
		return 1.0, true
	}
	quote := pub.FindCurrency(code)
	if quote == nil {
		return 0, false
	}
	value := side(quote)
	if value == nil {
		return 0, false
	}
	return *value, true
}

// Обязательный код валюты из query, приведённый к верхнему регистру
func (h *Handler) requiredCode(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get(name)))
	if value == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "Validation error", name+" is required")
		return "", false
	}
	return value, true
}

// Целочисленный query-параметр со значением по умолчанию
func (h *Handler) intParam(w http.ResponseWriter, r *http.Request, name string, defaultValue int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Validation error", name+" must be an integer")
		return 0, false
	}
	return value, true
}

// Записываем JSON ответ
func (h *Handler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.WithError(err).Error("Failed to encode JSON response")
	}
}

// Записываем JSON ответ с ошибкой
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, error, message string) {
	response := models.ErrorResponse{
		Error:   error,
		Message: message,
	}

	h.writeJSONResponse(w, statusCode, response)
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Root).Methods("GET")
	router.HandleFunc("/today", h.Today).Methods("GET")
	router.HandleFunc("/currency", h.Currency).Methods("GET")
	router.HandleFunc("/diff", h.Diff).Methods("GET")
	router.HandleFunc("/convert", h.Convert).Methods("GET")
	router.HandleFunc("/history", h.History).Methods("GET")
	router.HandleFunc("/top-changes", h.TopChanges).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler).Methods("GET")
}
