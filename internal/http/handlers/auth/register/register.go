// Package register реализует HTTP-обработчик регистрации аккаунтов.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fee-tracker/internal/http/response"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/fee-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/fee-tracker/internal/models"
)

// Request — входные данные для регистрации
type Request struct {
	UserName string `json:"userName" validate:"required,max=50"`
	Login    string `json:"user" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, userName, login, rawPassword string) (*models.User, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация аккаунта
// @Description Создает аккаунт с уникальным логином. Пароль сохраняется только хэшем.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового аккаунта"
// @Success 201 {object} response.Response "Созданный аккаунт без пароля"
// @Failure 400 {object} response.Response "Некорректный JSON или отсутствующие поля"
// @Failure 409 {object} response.Response "Логин уже занят"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	user, err := h.service.Register(r.Context(), req.UserName, req.Login, req.Password)
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			log.Error("login already registered", slog.String("login", req.Login))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("user with this username/email already exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("user registered", slog.String("uid", user.UID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage(user, "User created successfully"))
}
