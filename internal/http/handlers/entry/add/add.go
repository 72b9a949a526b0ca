// Package add реализует HTTP-обработчик добавления записи в группу.
package add

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

// Request — входные данные для добавления записи.
type Request struct {
	EntryName string `json:"entryName" validate:"required"`
}

// Service описывает интерфейс бизнес-логики добавления записи.
type Service interface {
	AddEntry(ctx context.Context, userUID, groupName, entryName string) error
}

// Handler обрабатывает HTTP-запросы добавления записи.
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
// @Summary Добавление записи
// @Description Добавляет запись с двенадцатью неоплаченными месяцами в группу.
// @Tags Entries
// @Accept  json
// @Produce  json
// @Param groupName path string true "Имя группы"
// @Param request body Request true "Имя записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Отсутствует entryName"
// @Failure 404 {object} response.Response "Группа или леджер не найдены"
// @Failure 409 {object} response.Response "Запись уже существует"
// @Security BearerAuth
// @Router /groups/{groupName}/entries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.add"

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

	err := h.service.AddEntry(r.Context(), userUID, groupName, req.EntryName)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			log.Error("group not found", slog.String("group", groupName))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
		case errors.Is(err, apperr.ErrConflict):
			log.Error("entry already exists", slog.String("entry", req.EntryName))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("entry already exists"))
		default:
			log.Error("failed to add entry", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add entry"))
		}
		return
	}

	log.Info("entry added", slog.String("group", groupName), slog.String("entry", req.EntryName))
	render.JSON(w, r, response.OKWithMessage(map[string]string{"entryName": req.EntryName}, "Entry added successfully"))
}
