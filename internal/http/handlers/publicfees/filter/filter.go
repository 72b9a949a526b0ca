// Package filter реализует публичный HTTP-обработчик фильтра взносов.
//
// Некорректные query-параметры не считаются ошибкой: ответ 200 с пустой
// выдачей и сообщением.
package filter

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики фильтра публичной выдачи.
type Service interface {
	Filter(ctx context.Context, month int, paid bool, groupName string) ([]models.PublicUserFees, error)
}

// Handler обрабатывает публичные HTTP-запросы фильтра.
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
// @Summary Фильтр публичной выдачи
// @Description Оставляет только записи с отметкой месяца month, равной paid. Параметр group ограничивает выдачу одной группой.
// @Tags Public
// @Produce  json
// @Param month query int true "Месяц 1..12"
// @Param paid query bool true "Искомое значение отметки"
// @Param group query string false "Имя группы"
// @Success 200 {object} response.Response "Отфильтрованная выдача"
// @Router /public-fees/filter [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.publicfees.filter"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	month, err := strconv.Atoi(q.Get("month"))
	paidStr := q.Get("paid")
	if err != nil || month < 1 || month > models.MonthsInYear || (paidStr != "true" && paidStr != "false") {
		log.Info("invalid query params",
			slog.String("month", q.Get("month")),
			slog.String("paid", paidStr),
		)
		render.JSON(w, r, response.OKWithMessage([]models.PublicUserFees{}, "Invalid query params"))
		return
	}
	paid := paidStr == "true"
	groupName := q.Get("group")

	fees, err := h.service.Filter(r.Context(), month, paid, groupName)
	if err != nil {
		log.Error("failed to filter public fees", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to fetch public fee status"))
		return
	}
	if fees == nil {
		fees = []models.PublicUserFees{}
	}

	log.Info("public fees filtered",
		slog.Int("month", month),
		slog.Bool("paid", paid),
		slog.String("group", groupName),
		slog.Int("accounts", len(fees)),
	)
	render.JSON(w, r, response.OKWithMessage(fees, "Filtered fee status fetched successfully"))
}
