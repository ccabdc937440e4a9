// Package issues реализует HTTP-обработчики текстовых выпусков журнала.
package issues

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
	issuesservice "github.com/magabrotheeeer/publication-admin/internal/services/issues"
)

// Service описывает операции над выпусками.
type Service interface {
	InitialData() issuesservice.InitialData
	Get(ctx context.Context, year, month int) (*models.Issue, error)
	Save(ctx context.Context, in issuesservice.Input) (*models.Issue, bool, error)
}

// Handler обрабатывает запросы /issues.
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

// InitialData отдаёт справочники формы: годы, месяцы и текущую дату.
//
// @Summary Данные формы выпуска
// @Tags Issues
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Router /api/admin/issues/initial-data [get]
func (h *Handler) InitialData(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OK(h.service.InitialData()))
}

// Get возвращает выпуск за {year}/{month} или пустое содержимое.
//
// @Summary Выпуск за месяц
// @Tags Issues
// @Security BearerAuth
// @Produce json
// @Param year path int true "Год"
// @Param month path int true "Месяц 1..12"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/issues/{year}/{month} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.issues.Get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	year, ok := request.IntParam(w, r, log, "year")
	if !ok {
		return
	}
	month, ok := request.IntParam(w, r, log, "month")
	if !ok {
		return
	}
	issue, err := h.service.Get(r.Context(), year, month)
	if err != nil {
		response.Fail(w, r, log, err, "could not get issue")
		return
	}
	render.JSON(w, r, response.OK(issue))
}

// Save создаёт или обновляет выпуск за месяц.
//
// @Summary Создать или обновить выпуск
// @Tags Issues
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body issuesservice.Input true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/issues [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.issues.Save"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var in issuesservice.Input
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	issue, created, err := h.service.Save(r.Context(), in)
	if err != nil {
		response.Fail(w, r, log, err, "could not save issue")
		return
	}

	log.Info("issue saved", slog.Int("issue_no", issue.IssueNo), slog.Bool("created", created))
	if created {
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OKWithMessage("issue created", issue))
		return
	}
	render.JSON(w, r, response.OKWithMessage("issue updated", issue))
}
