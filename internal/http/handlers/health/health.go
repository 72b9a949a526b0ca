// Package health реализует HTTP-обработчик проверки живости сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает HTTP-запросы проверки здоровья.
type Handler struct {
	log    *slog.Logger
	pinger Pinger
	env    string
}

// New создает новый Handler.
func New(log *slog.Logger, pinger Pinger, env string) *Handler {
	return &Handler{
		log:    log,
		pinger: pinger,
		env:    env,
	}
}

// ServeHTTP godoc
// @Summary Проверка здоровья
// @Description Проверяет доступность базы данных и возвращает состояние сервиса.
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "Сервис здоров"
// @Failure 500 {object} response.Response "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := h.pinger.Ping(r.Context()); err != nil {
		log.Error("database ping failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("database unavailable"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"database":    "connected",
		"environment": h.env,
	}))
}
