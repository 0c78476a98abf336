package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"tcmb_rates_api/internal/metrics"
	"tcmb_rates_api/internal/models"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Сообщение для запросов в обход шлюза
const forbiddenMessage = "Access forbidden: Use via RapidAPI only."

// Chain оборачивает handler в middlewares. Первый в списке выполняется первым.
// В отличие от router.Use, обёртка срабатывает до маршрутизации, в том числе для неизвестных путей.
func Chain(h http.Handler, middlewares ...mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// Пропускаем только запросы, пришедшие через шлюз: заголовок header должен быть равен host
func GatewayMiddleware(header, host string, logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(header) != host {
				logger.WithFields(logrus.Fields{
					"url":         r.URL.String(),
					"remote_addr": r.RemoteAddr,
				}).Warn("Request rejected by gateway check")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{
					Error:   "Forbidden",
					Message: forbiddenMessage,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Логируем HTTP запросы
func LoggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Создаем wrapper для ResponseWriter чтобы перехватить статус код
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)
			logger.WithFields(logrus.Fields{
				"method":      r.Method,
				"url":         r.URL.String(),
				"status":      wrapped.statusCode,
				"duration":    duration.String(),
				"user_agent":  r.UserAgent(),
				"remote_addr": r.RemoteAddr,
			}).Info("HTTP request")
		})
	}
}

// Считаем запросы и время ответа
func MetricsMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			metrics.ObserveRequest(r.Method, wrapped.statusCode, time.Since(start))
		})
	}
}

// Для восстанавления от паник
func RecoveryMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.WithFields(logrus.Fields{
						"error":  err,
						"url":    r.URL.String(),
						"method": r.Method,
					}).Error("Panic recovered")

					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Разрешаем любые источники, методы и заголовки вместе с credentials.
// Источник отражается в ответе, так как "*" с credentials браузеры не принимают.
func CORSMiddleware() mux.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	})

	return c.Handler
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
