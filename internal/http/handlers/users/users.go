// Package users реализует HTTP-обработчики учётных записей подписчиков.
package users

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

// StatusRequest смена статуса учётной записи.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active new"`
}

// PaymentRequest отметка об оплате.
type PaymentRequest struct {
	Paid bool `json:"paid"`
}

// Service описывает операции над подписчиками.
type Service interface {
	List(ctx context.Context) ([]models.Subscriber, error)
	Get(ctx context.Context, id int) (*models.Subscriber, error)
	Create(ctx context.Context, in models.SubscriberInput) (int, error)
	Update(ctx context.Context, id int, in models.SubscriberInput) error
	SetStatus(ctx context.Context, id int, status string) error
	SetPaid(ctx context.Context, id int, paid bool) error
	Delete(ctx context.Context, id int) error
}

// Handler обрабатывает запросы /users.
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

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List возвращает всех подписчиков.
//
// @Summary Список подписчиков
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.List")

	list, err := h.service.List(r.Context())
	if err != nil {
		response.Fail(w, r, log, err, "could not list users")
		return
	}
	render.JSON(w, r, response.OK(list))
}

// Get возвращает подписчика по userId.
//
// @Summary Подписчик по ID
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param userId path int true "ID подписчика"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Get")

	id, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	sub, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Fail(w, r, log, err, "could not get user")
		return
	}
	render.JSON(w, r, response.OK(sub))
}

// Create заводит подписчика.
//
// @Summary Создать подписчика
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SubscriberInput true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 409 {object} response.Response "Уже существует"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Create")

	var in models.SubscriberInput
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	id, err := h.service.Create(r.Context(), in)
	if err != nil {
		response.Fail(w, r, log, err, "could not create user")
		return
	}

	log.Info("user created", slog.Int("id", id), slog.String("username", in.Username))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("user created", map[string]any{"id": id}))
}

// Update меняет профиль подписчика. Пустой пароль оставляет текущий.
//
// @Summary Изменить подписчика
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "ID подписчика"
// @Param request body models.SubscriberInput true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 409 {object} response.Response "Уже существует"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Update")

	id, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	var in models.SubscriberInput
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	if err := h.service.Update(r.Context(), id, in); err != nil {
		response.Fail(w, r, log, err, "could not update user")
		return
	}
	render.JSON(w, r, response.OKWithMessage("user updated", nil))
}

// SetStatus меняет статус учётной записи.
//
// @Summary Изменить статус подписчика
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "ID подписчика"
// @Param request body StatusRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId}/status [put]
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.SetStatus")

	id, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	var req StatusRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.SetStatus(r.Context(), id, req.Status); err != nil {
		response.Fail(w, r, log, err, "could not update status")
		return
	}
	render.JSON(w, r, response.OKWithMessage("status updated", nil))
}

// SetPaid меняет отметку об оплате.
//
// @Summary Отметить оплату
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param userId path int true "ID подписчика"
// @Param request body PaymentRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId}/payment [put]
func (h *Handler) SetPaid(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.SetPaid")

	id, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	var req PaymentRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.SetPaid(r.Context(), id, req.Paid); err != nil {
		response.Fail(w, r, log, err, "could not update payment")
		return
	}
	render.JSON(w, r, response.OKWithMessage("payment updated", nil))
}

// Delete удаляет подписчика вместе со всеми правами.
//
// @Summary Удалить подписчика
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param userId path int true "ID подписчика"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/users/{userId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.users.Delete")

	id, ok := request.IntParam(w, r, log, "userId")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, err, "could not delete user")
		return
	}

	log.Info("user deleted", slog.Int("id", id))
	render.JSON(w, r, response.OKWithMessage("user deleted", nil))
}
