// Package create реализует HTTP-обработчик создания группы.
//
// Маршрут мягкий: анонимный запрос, пустое имя и дубликат группы дают 200 с
// пояснительным сообщением вместо кода ошибки.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/fee-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
)

// Request — входные данные для создания группы.
type Request struct {
	GroupName string `json:"groupName"`
}

// Service описывает интерфейс бизнес-логики создания группы.
type Service interface {
	CreateGroup(ctx context.Context, userUID, groupName string) error
}

// Handler обрабатывает HTTP-запросы создания группы.
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
// @Summary Создание группы
// @Description Добавляет пустую группу в леджер аккаунта. Леджер создается при первой группе.
// @Tags Groups
// @Accept  json
// @Produce  json
// @Param request body Request true "Имя группы"
// @Success 200 {object} response.Response "Созданная группа или пояснительное сообщение"
// @Security BearerAuth
// @Router /groups [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.group.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Info("anonymous request")
		render.JSON(w, r, response.OKWithMessage(nil, "Not authenticated"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.JSON(w, r, response.OKWithMessage(nil, "Group name required"))
		return
	}
	if req.GroupName == "" {
		log.Info("empty group name")
		render.JSON(w, r, response.OKWithMessage(nil, "Group name required"))
		return
	}

	err := h.service.CreateGroup(r.Context(), userUID, req.GroupName)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			log.Info("group already exists", slog.String("group", req.GroupName))
			render.JSON(w, r, response.OKWithMessage(nil, fmt.Sprintf("Group %q already exists", req.GroupName)))
			return
		}
		log.Error("failed to create group", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create group"))
		return
	}

	log.Info("group created", slog.String("group", req.GroupName))
	render.JSON(w, r, response.OKWithMessage(map[string]string{"groupName": req.GroupName}, "Group created successfully"))
}
