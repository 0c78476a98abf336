// @title TCMB Exchange Rates API
// @version 1.0
// @description Daily exchange rates of the Central Bank of the Republic of Turkey as JSON.
// @BasePath /
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "tcmb_rates_api/docs"
	"tcmb_rates_api/internal/config"
	"tcmb_rates_api/internal/external"
	"tcmb_rates_api/internal/handlers"
	"tcmb_rates_api/internal/logger"
	"tcmb_rates_api/internal/metrics"
	"tcmb_rates_api/internal/middleware"
	"tcmb_rates_api/internal/walker"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Текущая дата считается в часовом поясе сервиса
	now := func() time.Time { return time.Now().In(cfg.App.Location) }

	client := external.New(&cfg.External, cfg.App.Location, now, appLogger)
	historyWalker := walker.New(client, appLogger, now, cfg.App.HistoryExtraDays)
	handler := handlers.New(client, historyWalker, appLogger, now, cfg.App.DomesticCurrency, cfg.App.Watchlist)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	// Проверка шлюза стоит до маршрутизации, поэтому закрывает и неизвестные пути
	api := middleware.Chain(router,
		middleware.RecoveryMiddleware(appLogger),
		middleware.LoggingMiddleware(appLogger),
		middleware.MetricsMiddleware(),
		middleware.GatewayMiddleware(cfg.Gateway.Header, cfg.Gateway.Host, appLogger),
		middleware.CORSMiddleware(),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return serveHTTP(gctx, appLogger, &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      api,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}, cfg.App.ShutdownTimeout)
	})

	if cfg.Metrics.Addr != "" {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", metrics.Handler())

		g.Go(func() error {
			return serveHTTP(gctx, appLogger, &http.Server{
				Addr:              cfg.Metrics.Addr,
				Handler:           metricsMux,
				ReadHeaderTimeout: 5 * time.Second,
			}, cfg.App.ShutdownTimeout)
		})
	}

	appLogger.WithFields(logrus.Fields{
		"addr":     cfg.Server.Addr(),
		"upstream": cfg.External.BaseURL,
		"timezone": cfg.App.Location.String(),
	}).Info("Service started")

	return g.Wait()
}

// Запускаем сервер и останавливаем его при отмене контекста
func serveHTTP(ctx context.Context, logger *logrus.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			logger.WithError(err).WithField("addr", srv.Addr).Error("Server shutdown failed")
		}
	}()

	logger.WithField("addr", srv.Addr).Info("HTTP server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.WithField("addr", srv.Addr).Info("HTTP server stopped")
	return nil
}
