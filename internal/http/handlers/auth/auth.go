// Package auth реализует HTTP-обработчики входа администратора и смены пароля.
package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/publication-admin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/http/response"
)

// LoginRequest учётные данные администратора.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest смена пароля текущего администратора.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// Service описывает операции аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
	ChangePassword(ctx context.Context, adminID, current, next string) error
}

// Handler обрабатывает запросы аутентификации.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// Login выдаёт bearer-токен по логину и паролю.
//
// @Summary Вход администратора
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 429 {object} response.Response "Слишком много попыток"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.Login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req LoginRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.Fail(w, r, log, err, "login failed")
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	render.JSON(w, r, response.OK(map[string]any{
		"token": token,
	}))
}

// ChangePassword меняет пароль администратора из токена.
//
// @Summary Смена пароля администратора
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/change-password [post]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.ChangePassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	adminID, ok := middlewarectx.AdminFrom(r.Context())
	if !ok {
		log.Info("admin id not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req ChangePasswordRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		response.Fail(w, r, log, err, "could not change password")
		return
	}

	log.Info("password changed", slog.String("admin_id", adminID))
	render.JSON(w, r, response.OKWithMessage("password changed", nil))
}
