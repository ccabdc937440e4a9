// Package articles реализует HTTP-обработчики статей выпусков.
package articles

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
	articlesservice "github.com/magabrotheeeer/publication-admin/internal/services/articles"
)

// BulkDeleteRequest идентификаторы статей для удаления.
type BulkDeleteRequest struct {
	IDs []int `json:"ids" validate:"required,min=1,dive,min=1"`
}

// ScrollingRequest переключение бегущей строки.
type ScrollingRequest struct {
	Scrolling bool `json:"scrolling"`
}

// Service описывает операции над статьями.
type Service interface {
	List(ctx context.Context, page, limit int) (*models.ArticlePage, error)
	Get(ctx context.Context, id int) (*models.Article, error)
	Create(ctx context.Context, in articlesservice.Input) ([]int, error)
	Update(ctx context.Context, id int, in articlesservice.UpdateInput) error
	Delete(ctx context.Context, id int) error
	DeleteMany(ctx context.Context, ids []int) (int, error)
	SetScrolling(ctx context.Context, id int, scrolling bool) error
}

// Handler обрабатывает запросы /articles.
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

// List возвращает страницу статей по ?page&limit.
//
// @Summary Список статей
// @Tags Articles
// @Security BearerAuth
// @Produce json
// @Param page query int false "Страница, по умолчанию 1"
// @Param limit query int false "Размер страницы, по умолчанию 100"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.List")

	page, ok := request.QueryInt(w, r, log, "page", articlesservice.DefaultPage)
	if !ok {
		return
	}
	limit, ok := request.QueryInt(w, r, log, "limit", articlesservice.DefaultLimit)
	if !ok {
		return
	}
	p, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		response.Fail(w, r, log, err, "could not list articles")
		return
	}
	render.JSON(w, r, response.OK(p))
}

// Get возвращает статью.
//
// @Summary Статья по ID
// @Tags Articles
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.Get")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	a, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Fail(w, r, log, err, "could not get article")
		return
	}
	render.JSON(w, r, response.OK(a))
}

// Create делит текст выпуска на статьи по заголовкам h4.
//
// @Summary Создать статьи выпуска
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body articlesservice.Input true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.Create")

	var in articlesservice.Input
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	ids, err := h.service.Create(r.Context(), in)
	if err != nil {
		response.Fail(w, r, log, err, "could not create articles")
		return
	}

	log.Info("articles created", slog.Int("count", len(ids)), slog.Int("issue_no", in.IssueNo))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("articles created", map[string]any{
		"ids":   ids,
		"count": len(ids),
	}))
}

// Update меняет статью.
//
// @Summary Изменить статью
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param request body articlesservice.UpdateInput true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.Update")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	var in articlesservice.UpdateInput
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	if err := h.service.Update(r.Context(), id, in); err != nil {
		response.Fail(w, r, log, err, "could not update article")
		return
	}
	render.JSON(w, r, response.OKWithMessage("article updated", nil))
}

// Delete удаляет статью.
//
// @Summary Удалить статью
// @Tags Articles
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.Delete")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Fail(w, r, log, err, "could not delete article")
		return
	}
	render.JSON(w, r, response.OKWithMessage("article deleted", nil))
}

// DeleteMany удаляет статьи списком.
//
// @Summary Удалить статьи списком
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles/delete-bulk [post]
func (h *Handler) DeleteMany(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.DeleteMany")

	var req BulkDeleteRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	n, err := h.service.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		response.Fail(w, r, log, err, "could not delete articles")
		return
	}

	log.Info("articles deleted", slog.Int("count", n))
	render.JSON(w, r, response.OKWithMessage("articles deleted", map[string]any{"deleted": n}))
}

// SetScrolling включает или выключает статью в бегущей строке.
//
// @Summary Бегущая строка
// @Tags Articles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param request body ScrollingRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/articles/{id}/scrolling [patch]
func (h *Handler) SetScrolling(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.articles.SetScrolling")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	var req ScrollingRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.SetScrolling(r.Context(), id, req.Scrolling); err != nil {
		response.Fail(w, r, log, err, "could not update scrolling")
		return
	}
	render.JSON(w, r, response.OKWithMessage("scrolling updated", nil))
}
