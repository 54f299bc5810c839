package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/plastinin/pdfcheck-web/internal/adapter/checker"
	"github.com/plastinin/pdfcheck-web/internal/adapter/http/handler"
	"github.com/plastinin/pdfcheck-web/internal/adapter/pdf"
	"github.com/plastinin/pdfcheck-web/internal/adapter/repository"
	"github.com/plastinin/pdfcheck-web/internal/config"
	"github.com/plastinin/pdfcheck-web/internal/session"
	"github.com/plastinin/pdfcheck-web/internal/usecase"
	"github.com/plastinin/pdfcheck-web/internal/web"
	"github.com/plastinin/pdfcheck-web/internal/widget"
	"github.com/plastinin/pdfcheck-web/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apphttp "github.com/plastinin/pdfcheck-web/internal/adapter/http"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	log := logger.Must(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("Starting pdfcheck web",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	// Контекст отменяется по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// История загрузок включается отдельно
	var history usecase.SubmissionRepository
	if cfg.Database.Enabled {
		dbPool, err := repository.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer dbPool.Close()
		history = repository.NewSubmissionRepository(dbPool)
		log.Info("Connected to PostgreSQL, submission history enabled")
	}

	// Клиент сервиса отчётов
	checkerClient := checker.NewClient(cfg.Backend, log)

	// Инициализируем use cases
	checkUC := usecase.NewCheckUseCase(checkerClient, pdf.NewInspector(), history, log)
	historyUC := usecase.NewHistoryUseCase(history, checkerClient)

	// Каждая сессия получает свой виджет
	sessions := session.NewStore(func() *widget.Widget {
		return widget.New(widget.Deps{
			Uploader: checkUC,
			Links:    checkUC,
			Renderer: web.Templates,
			Timeout:  cfg.Backend.Timeout,
			Logger:   log.Named("widget"),
		})
	}, cfg.Session.TTL, log)

	// Инициализируем handlers
	widgetHandler := handler.NewWidgetHandler(
		ctx,
		sessions,
		checkUC,
		cfg.Upload.MaxBytes(),
		cfg.Session.CookieSecure,
		log,
	)
	historyHandler := handler.NewHistoryHandler(historyUC, web.Templates, log)
	healthHandler := handler.NewHealthHandler(checkerClient, historyUC.Enabled(), log)

	// Создаём роутер
	router := apphttp.NewRouter(widgetHandler, historyHandler, healthHandler, log)

	// Создаём HTTP сервер
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("HTTP server starting", zap.String("addr", cfg.Server.Addr()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(gctx, cfg.Session.CleanupInterval)
	})

	g.Go(func() error {
		<-gctx.Done()

		log.Info("Shutting down server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Server error", zap.Error(err))
	}

	// Фоновые загрузки отменены вместе с ctx, дожидаемся их записи в историю
	widgetHandler.Wait()

	log.Info("Server stopped")
}
