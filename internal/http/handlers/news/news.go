// Package news реализует HTTP-обработчики PDF-выпусков одной серии новостей.
// Для каждой настроенной серии создаётся свой Handler.
package news

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/models"
	newsservice "github.com/magabrotheeeer/publication-admin/internal/services/news"
)

// SampleRequest переключение бесплатного образца.
type SampleRequest struct {
	ForSample bool `json:"forSample"`
}

// Service описывает операции над выпусками серии.
type Service interface {
	List(ctx context.Context, seriesPath string) ([]models.NewsIssue, error)
	Get(ctx context.Context, seriesPath string, id int) (*models.NewsIssue, error)
	Create(ctx context.Context, seriesPath string, u newsservice.Upload) (*models.NewsIssue, error)
	Update(ctx context.Context, seriesPath string, id int, u newsservice.Upload) (*models.NewsIssue, error)
	Delete(ctx context.Context, seriesPath string, id int) error
	SetSample(ctx context.Context, seriesPath string, id int, forSample bool) error
}

// Handler обрабатывает запросы /{path} одной серии.
type Handler struct {
	log      *slog.Logger
	service  Service
	series   string
	maxBytes int64
	validate *validator.Validate
}

// New создает Handler для серии с путём series.
func New(log *slog.Logger, service Service, series string, maxBytes int64) *Handler {
	return &Handler{
		log:      log.With(slog.String("series", series)),
		service:  service,
		series:   series,
		maxBytes: maxBytes,
		validate: validator.New(),
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// List возвращает выпуски серии, новые первыми.
//
// @Summary Выпуски серии
// @Tags News
// @Security BearerAuth
// @Produce json
// @Param series path string true "Путь серии, например news или russiannews"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/{series} [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.news.List")

	list, err := h.service.List(r.Context(), h.series)
	if err != nil {
		response.Fail(w, r, log, err, "could not list news")
		return
	}
	render.JSON(w, r, response.OK(list))
}

// Get возвращает выпуск по id.
//
// @Summary Выпуск серии
// @Tags News
// @Security BearerAuth
// @Produce json
// @Param series path string true "Путь серии, например news или russiannews"
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/{series}/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.news.Get")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	n, err := h.service.Get(r.Context(), h.series, id)
	if err != nil {
		response.Fail(w, r, log, err, "could not get news")
		return
	}
	render.JSON(w, r, response.OK(n))
}

// Create публикует выпуск из multipart-формы {month, year, forSample, pdfFile}.
//
// @Summary Опубликовать выпуск
// @Tags News
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param series path string true "Путь серии, например news или russiannews"
// @Param month formData int true "Месяц 1..12"
// @Param year formData int true "Год"
// @Param forSample formData bool false "Бесплатный образец"
// @Param pdfFile formData file true "PDF-файл"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 409 {object} response.Response "Уже существует"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/{series} [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.news.Create")

	u, file, ok := h.upload(w, r, log)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	n, err := h.service.Create(r.Context(), h.series, u)
	if err != nil {
		response.Fail(w, r, log, err, "could not create news")
		return
	}

	log.Info("news created", slog.Int("id", n.ID), slog.String("pdf", n.PDFLink))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("news created", n))
}

// Update меняет выпуск, файл в форме необязателен.
//
// @Summary Изменить выпуск
// @Tags News
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param series path string true "Путь серии, например news или russiannews"
// @Param id path int true "ID записи"
// @Param month formData int true "Месяц 1..12"
// @Param year formData int true "Год"
// @Param forSample formData bool false "Бесплатный образец"
// @Param pdfFile formData file false "PDF-файл"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 409 {object} response.Response "Уже существует"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/{series}/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.news.Update")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	u, file, ok := h.upload(w, r, log)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	n, err := h.service.Update(r.Context(), h.series, id, u)
	if err != nil {
		response.Fail(w, r, log, err, "could not update news")
		return
	}
	render.JSON(w, r, response.OKWithMessage("news updated", n))
}

// Delete удаляет выпуск и его файл.
//
// @Summary Удалить выпуск
// @Tags News
// @Security BearerAuth
// @Produce json
// @Param series path string true "Путь серии, например news или russiannews"
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/{series}/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.news.Delete")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), h.series, id); err != nil {
		response.Fail(w, r, log, err, "could not delete news")
		return
	}

	log.Info("news deleted", slog.Int("id", id))
	render.JSON(w, r, response.OKWithMessage("news deleted", nil))
}

// SetSample переключает признак бесплатного образца.
//
// @Summary Признак образца
// @Tags News
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param series path string true "Путь серии, например news или russiannews"
// @Param id path int true "ID записи"
// @Param request body SampleRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/{series}/{id}/sample [patch]
func (h *Handler) SetSample(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.news.SetSample")

	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	var req SampleRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.SetSample(r.Context(), h.series, id, req.ForSample); err != nil {
		response.Fail(w, r, log, err, "could not update sample flag")
		return
	}
	render.JSON(w, r, response.OKWithMessage("sample flag updated", nil))
}

// upload разбирает форму выпуска. Возвращённый файл закрывает вызывающий.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request, log *slog.Logger) (newsservice.Upload, multipart.File, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		log.Info("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid upload or file too large"))
		return newsservice.Upload{}, nil, false
	}

	var u newsservice.Upload
	fields := []struct {
		name string
		dst  *int
	}{{"month", &u.Month}, {"year", &u.Year}}
	for _, f := range fields {
		v, err := strconv.Atoi(r.FormValue(f.name))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field "+f.name+" must be a number"))
			return newsservice.Upload{}, nil, false
		}
		*f.dst = v
	}
	u.ForSample = request.FormBool(r.FormValue("forSample"))

	file, header, err := r.FormFile("pdfFile")
	switch {
	case err == nil:
		u.File = file
		u.Filename = header.Filename
		return u, file, true
	case errors.Is(err, http.ErrMissingFile):
		return u, nil, true
	default:
		log.Info("failed to read pdf file", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read pdf file"))
		return newsservice.Upload{}, nil, false
	}
}
