// Package all реализует публичный HTTP-обработчик полной выдачи взносов.
package all

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики публичной выдачи.
type Service interface {
	All(ctx context.Context) ([]models.PublicUserFees, error)
}

// Handler обрабатывает публичные HTTP-запросы полной выдачи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Публичная выдача взносов
// @Description Возвращает группы, записи и отметки оплат всех аккаунтов. Аутентификация не требуется.
// @Tags Public
// @Produce  json
// @Success 200 {object} response.Response "Состояние взносов всех аккаунтов"
// @Router /public-fees [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publicfees.all"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	fees, err := h.service.All(r.Context())
	if err != nil {
		log.Error("failed to build public fees", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch public fee status"))
		return
	}
	if fees == nil {
		fees = []models.PublicUserFees{}
	}

	log.Info("public fees fetched", slog.Int("accounts", len(fees)))
	render.JSON(w, r, response.OKWithMessage(fees, "Public fee status fetched successfully"))
}
