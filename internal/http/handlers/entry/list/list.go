// Package list реализует HTTP-обработчик списка записей группы.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fee-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики списка записей.
type Service interface {
	ListEntries(ctx context.Context, userUID, groupName string) ([]models.Entry, error)
}

// Handler обрабатывает HTTP-запросы списка записей.
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
// @Summary Список записей группы
// @Description Возвращает записи группы с отметками оплат по месяцам. Несуществующая группа дает пустой список.
// @Tags Entries
// @Produce  json
// @Param groupName path string true "Имя группы"
// @Success 200 {object} response.Response "Записи группы"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Security BearerAuth
// @Router /groups/{groupName}/entries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	groupName := chi.URLParam(r, "groupName")

	entries, err := h.service.ListEntries(r.Context(), userUID, groupName)
	if err != nil {
		log.Error("failed to list entries", slog.String("group", groupName), sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch entries"))
		return
	}

	log.Info("entries listed", slog.String("group", groupName), slog.Int("count", len(entries)))
	render.JSON(w, r, response.OKWithMessage(entries, "Entries fetched successfully"))
}
