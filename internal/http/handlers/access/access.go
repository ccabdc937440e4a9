// Package access реализует HTTP-обработчики прав доступа подписчика.
package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Service описывает расчёт и изменение прав.
type Service interface {
	Get(ctx context.Context, userID int) (*models.Access, error)
	Update(ctx context.Context, userID int, req models.AccessUpdate) (*models.Access, error)
}

// Handler обрабатывает запросы /users/{userId}/access.
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

// Get возвращает текущие права подписчика.
//
// @Summary Права подписчика
// @Tags Access
// @Security BearerAuth
// @Produce json
// @Param userId path int true "ID подписчика"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId}/access [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.Get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	acc, err := h.service.Get(r.Context(), userID)
	if err != nil {
		response.Fail(w, r, log, err, "could not get access")
		return
	}
	render.JSON(w, r, response.OK(acc))
}

// Update применяет изменения прав и возвращает пересчитанные права.
//
// @Summary Изменить права подписчика
// @Tags Access
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "ID подписчика"
// @Param request body models.AccessUpdate true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId}/access [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.Update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	var req models.AccessUpdate
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}

	acc, err := h.service.Update(r.Context(), userID, req)
	if err != nil {
		response.Fail(w, r, log, err, "could not update access")
		return
	}

	log.Info("access updated", slog.Int("user_id", userID))
	render.JSON(w, r, response.OKWithMessage("access updated", acc))
}
