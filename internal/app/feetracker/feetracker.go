// Package feetracker собирает приложение: хранилище, кеш, брокер, сервисы
// и HTTP-сервер с graceful shutdown.
package feetracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/fee-tracker/internal/cache"
	"github.com/magabrotheeeer/fee-tracker/internal/config"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/fee-tracker/internal/migrations"
	"github.com/magabrotheeeer/fee-tracker/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/fee-tracker/internal/services/auth"
	ledgerservice "github.com/magabrotheeeer/fee-tracker/internal/services/ledger"
	publicfeesservice "github.com/magabrotheeeer/fee-tracker/internal/services/publicfees"
	"github.com/magabrotheeeer/fee-tracker/internal/storage"
	"github.com/magabrotheeeer/fee-tracker/internal/storage/repository"
)

// App инкапсулирует HTTP-сервер и внешние соединения приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	events *rabbitmq.Publisher
}

// New создает приложение: подключается к PostgreSQL, применяет миграции,
// инициализирует Redis и, если настроен, RabbitMQ.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	// Брокер необязателен: без RABBIT_URL события мутаций не публикуются.
	var events *rabbitmq.Publisher
	var eventPublisher ledgerservice.EventPublisher
	if cfg.RabbitURL != "" {
		events, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			return nil, err
		}
		eventPublisher = events
	}

	repo := repository.New(db)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(repo, jwtMaker)
	ledgerService := ledgerservice.NewLedgerService(repo, cacheRedis, eventPublisher, logger)
	publicFeesService := publicfeesservice.NewPublicFeesService(repo, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.Env, db, authService, ledgerService, publicFeesService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		events: events,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до ошибки или отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if a.events != nil {
			a.events.Close()
		}
		_ = a.cache.Db.Close()
		_ = a.db.DB.Close()
		return err
	}
}
