package feetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fee-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fee-tracker/internal/http/handlers/auth/register"
	entryadd "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/entry/add"
	entrylist "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/entry/list"
	entrypayment "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/entry/payment"
	entryremove "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/entry/remove"
	groupcreate "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/group/create"
	grouplist "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/group/list"
	"github.com/magabrotheeeer/fee-tracker/internal/http/handlers/health"
	publicall "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/publicfees/all"
	publicfilter "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/publicfees/filter"
	userlist "github.com/magabrotheeeer/fee-tracker/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/fee-tracker/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/fee-tracker/internal/services/auth"
	ledgerservice "github.com/magabrotheeeer/fee-tracker/internal/services/ledger"
	publicfeesservice "github.com/magabrotheeeer/fee-tracker/internal/services/publicfees"
	"github.com/magabrotheeeer/fee-tracker/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, env string, db *storage.Storage, authService *authservice.AuthService, ledgerService *ledgerservice.LedgerService, publicFeesService *publicfeesservice.PublicFeesService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	// Открытые конечные точки
	r.Post("/users", register.New(logger, authService).ServeHTTP)
	r.Get("/users", userlist.New(logger, authService).ServeHTTP)
	r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

	// Мягкие маршруты групп: анонимный запрос получает 200 с сообщением,
	// а не 401.
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.OptionalJWTMiddleware(authService, logger))
		r.Get("/groups", grouplist.New(logger, ledgerService).ServeHTTP)
		r.Post("/groups", groupcreate.New(logger, ledgerService).ServeHTTP)
	})

	// Маршруты записей со строгой JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(authService, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/groups/{groupName}/entries", entrylist.New(logger, ledgerService).ServeHTTP)
		r.Post("/groups/{groupName}/entries", entryadd.New(logger, ledgerService).ServeHTTP)
		r.Delete("/groups/{groupName}/entries", entryremove.New(logger, ledgerService).ServeHTTP)
		r.Patch("/groups/{groupName}/entries/payment", entrypayment.New(logger, ledgerService).ServeHTTP)
	})

	// Публичная выдача без аутентификации
	r.Get("/public-fees", publicall.New(logger, publicFeesService).ServeHTTP)
	r.Get("/public-fees/filter", publicfilter.New(logger, publicFeesService).ServeHTTP)

	r.Get("/health", health.New(logger, db, env).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
