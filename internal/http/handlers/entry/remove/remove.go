// Package remove реализует HTTP-обработчик удаления записи из группы.
//
// Удаление несуществующей записи из существующей группы считается успехом.
package remove

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

// Request — входные данные для удаления записи.
type Request struct {
	EntryName string `json:"entryName" validate:"required"`
}

// Service описывает интерфейс бизнес-логики удаления записи.
type Service interface {
	RemoveEntry(ctx context.Context, userUID, groupName, entryName string) error
}

// Handler обрабатывает HTTP-запросы удаления записи.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.entry.remove"

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

	err := h.service.RemoveEntry(r.Context(), userUID, groupName, req.EntryName)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			log.Error("group not found", slog.String("group", groupName))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("group not found"))
			return
		}
		log.Error("failed to remove entry", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to remove entry"))
		return
	}

	log.Info("entry removed", slog.String("group", groupName), slog.String("entry", req.EntryName))
	render.JSON(w, r, response.OKWithMessage(nil, "Entry removed successfully"))
}
