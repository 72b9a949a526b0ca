// Package payment реализует HTTP-обработчик отметки оплаты месяца.
package payment

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fee-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
)

// Request — входные данные для отметки оплаты. Month и Status указателями,
// чтобы отличать отсутствующее поле от нулевого значения.
type Request struct {
	EntryName string `json:"entryName" validate:"required"`
	Month     *int   `json:"month" validate:"required"`
	Status    *bool  `json:"status" validate:"required"`
}

// Service описывает интерфейс бизнес-логики отметок оплат.
type Service interface {
	SetPaymentStatus(ctx context.Context, userUID, groupName, entryName string, month int, paid bool) error
}

// Handler обрабатывает HTTP-запросы отметки оплаты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отметка оплаты месяца
// @Description Выставляет отметку одного месяца (1..12) у записи группы.
// @Tags Entries
// @Accept  json
// @Produce  json
// @Param groupName path string true "Имя группы"
// @Param request body Request true "Запись, месяц и новое значение отметки"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Отсутствующие поля или месяц вне 1..12"
// @Failure 404 {object} response.Response "Группа, запись или леджер не найдены"
// @Security BearerAuth
// @Router /groups/{groupName}/entries/payment [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.payment"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, _ := r.Context().Value(middlewarectx.UserUID).(string)
	groupName := chi.URLParam(r, "groupName")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.SetPaymentStatus(r.Context(), userUID, groupName, req.EntryName, *req.Month, *req.Status)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrValidation):
			log.Error("invalid month", slog.Int("month", *req.Month))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("month must be between 1 and 12"))
		case errors.Is(err, apperr.ErrNotFound):
			log.Error("entry not found", slog.String("group", groupName), slog.String("entry", req.EntryName))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group or entry not found"))
		default:
			log.Error("failed to update payment status", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update payment status"))
		}
		return
	}

	log.Info("payment status updated",
		slog.String("group", groupName),
		slog.String("entry", req.EntryName),
		slog.Int("month", *req.Month),
		slog.Bool("status", *req.Status),
	)
	render.JSON(w, r, response.OKWithMessage(nil, "Payment status updated successfully"))
}
