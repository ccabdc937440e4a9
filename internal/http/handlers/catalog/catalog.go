// Package catalog реализует HTTP-обработчики справочников продуктов,
// производителей и стран.
package catalog

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
	catalogservice "github.com/magabrotheeeer/publication-admin/internal/services/catalog"
)

// DisplayRequest показ записи справочника в отчётах.
type DisplayRequest struct {
	ID      int  `json:"id" validate:"required,min=1"`
	Display bool `json:"display"`
}

// Service описывает операции над справочниками.
type Service interface {
	Products(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, in catalogservice.ProductInput) (int, error)
	SetProductDisplay(ctx context.Context, id int, display bool) error
	Companies(ctx context.Context) ([]models.Company, error)
	CreateCompany(ctx context.Context, in catalogservice.CompanyInput) (int, error)
	SetCompanyDisplay(ctx context.Context, id int, display bool) error
	Countries(ctx context.Context) ([]models.Country, error)
}

// Handler обрабатывает запросы /products, /companies и /countries.
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

// Products GET /products.
//
// @Summary Список продуктов
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/products [get]
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.Products")
	list, err := h.service.Products(r.Context())
	if err != nil {
		response.Fail(w, r, log, err, "could not list products")
		return
	}
	render.JSON(w, r, response.OK(list))
}

// CreateProduct POST /products.
//
// @Summary Создать продукт
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body catalogservice.ProductInput true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/products [post]
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.CreateProduct")
	var in catalogservice.ProductInput
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	id, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		response.Fail(w, r, log, err, "could not create product")
		return
	}
	log.Info("product created", slog.Int("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("product created", map[string]any{"id": id}))
}

// SetProductDisplay PUT /products/display.
//
// @Summary Показ продукта
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DisplayRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/products/display [put]
func (h *Handler) SetProductDisplay(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.SetProductDisplay")
	var req DisplayRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.SetProductDisplay(r.Context(), req.ID, req.Display); err != nil {
		response.Fail(w, r, log, err, "could not update display")
		return
	}
	render.JSON(w, r, response.OKWithMessage("display updated", nil))
}

// Companies GET /companies.
//
// @Summary Список производителей
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/companies [get]
func (h *Handler) Companies(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.Companies")
	list, err := h.service.Companies(r.Context())
	if err != nil {
		response.Fail(w, r, log, err, "could not list companies")
		return
	}
	render.JSON(w, r, response.OK(list))
}

// CreateCompany POST /companies.
//
// @Summary Создать производителя
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body catalogservice.CompanyInput true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/companies [post]
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.CreateCompany")
	var in catalogservice.CompanyInput
	if !request.DecodeJSON(w, r, log, h.validate, &in) {
		return
	}
	id, err := h.service.CreateCompany(r.Context(), in)
	if err != nil {
		response.Fail(w, r, log, err, "could not create company")
		return
	}
	log.Info("company created", slog.Int("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage("company created", map[string]any{"id": id}))
}

// SetCompanyDisplay PUT /companies/display.
//
// @Summary Показ производителя
// @Tags Catalog
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body DisplayRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/companies/display [put]
func (h *Handler) SetCompanyDisplay(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.SetCompanyDisplay")
	var req DisplayRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	if err := h.service.SetCompanyDisplay(r.Context(), req.ID, req.Display); err != nil {
		response.Fail(w, r, log, err, "could not update display")
		return
	}
	render.JSON(w, r, response.OKWithMessage("display updated", nil))
}

// Countries GET /countries.
//
// @Summary Список стран
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/countries [get]
func (h *Handler) Countries(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.catalog.Countries")
	list, err := h.service.Countries(r.Context())
	if err != nil {
		response.Fail(w, r, log, err, "could not list countries")
		return
	}
	render.JSON(w, r, response.OK(list))
}
