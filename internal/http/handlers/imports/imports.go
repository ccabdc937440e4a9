// Package imports реализует HTTP-обработчик загрузки таблиц Excel.
package imports

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Service описывает загрузку таблицы.
type Service interface {
	Import(ctx context.Context, t models.ImportType, r io.Reader) (*models.ImportResult, error)
}

// Handler обрабатывает POST /excel-import.
type Handler struct {
	log      *slog.Logger
	service  Service
	maxBytes int64
}

// New создает Handler. maxBytes ограничивает размер multipart-тела.
func New(log *slog.Logger, service Service, maxBytes int64) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maxBytes: maxBytes,
	}
}

// ServeHTTP godoc
// @Summary Загрузка Excel-файла
// @Tags Import
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param importType formData string true "Тип загрузки: 1, 2, 3, 4, 41, 5, 6, 7, 8"
// @Param file formData file true "Книга Excel"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/excel-import [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.imports.ServeHTTP"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		log.Info("failed to parse multipart form", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid upload or file too large"))
		return
	}

	importType := models.ImportType(r.FormValue("importType"))
	if importType == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("field importType is a required field"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Info("file is missing", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("field file is a required field"))
		return
	}
	defer file.Close()

	log.Info("import started",
		slog.String("import_type", string(importType)),
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	res, err := h.service.Import(r.Context(), importType, file)
	if err != nil {
		response.Fail(w, r, log, err, "import failed")
		return
	}

	render.JSON(w, r, response.OKWithMessage(
		fmt.Sprintf("Successfully imported %d records", res.RowsImported), res))
}
