// Package list реализует HTTP-обработчик списка групп аккаунта.
//
// Маршрут мягкий: анонимный запрос получает 200 с пустым списком и
// сообщением, а не 401.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fee-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики списка групп.
type Service interface {
	ListGroups(ctx context.Context, userUID string) ([]string, error)
}

// Handler обрабатывает HTTP-запросы списка групп.
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
// @Summary Список групп аккаунта
// @Description Возвращает имена групп текущего аккаунта. Без токена отвечает 200 с пустым списком.
// @Tags Groups
// @Produce  json
// @Success 200 {object} response.Response "Имена групп"
// @Security BearerAuth
// @Router /groups [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Info("anonymous request")
		render.JSON(w, r, response.OKWithMessage([]string{}, "Not authenticated"))
		return
	}

	groups, err := h.service.ListGroups(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list groups", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch groups"))
		return
	}

	log.Info("groups listed", slog.Int("count", len(groups)))
	render.JSON(w, r, response.OKWithMessage(groups, "Groups fetched successfully"))
}
