// Package content реализует HTTP-обработчики содержимого сайта: мероприятий,
// ссылок, страниц, подсказок поиска, обращений и цен регистрации.
package content

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/models"
	contentservice "github.com/magabrotheeeer/publication-admin/internal/services/content"
)

// Service описывает операции над содержимым сайта.
type Service interface {
	Events(ctx context.Context) ([]models.Event, error)
	Event(ctx context.Context, id int) (*models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) (int, error)
	UpdateEvent(ctx context.Context, id int, e models.Event) error
	DeleteEvent(ctx context.Context, id int) error
	SetEventDisplay(ctx context.Context, id int, display bool) error

	Links(ctx context.Context) ([]models.Link, error)
	Link(ctx context.Context, id int) (*models.Link, error)
	CreateLink(ctx context.Context, l models.Link) (int, error)
	UpdateLink(ctx context.Context, id int, l models.Link) error
	DeleteLink(ctx context.Context, id int) error
	SetLinkDisplay(ctx context.Context, id int, display bool) error

	Pages(ctx context.Context) ([]models.Page, error)
	PageContent(ctx context.Context, pageID int) ([]models.PageContent, error)
	CreatePageContent(ctx context.Context, pc models.PageContent) (int, error)
	UpdatePageContent(ctx context.Context, pc models.PageContent) error
	DeletePageContent(ctx context.Context, id int) error

	SearchKeywords(ctx context.Context) ([]models.SearchKeyword, error)
	CreateSearchKeyword(ctx context.Context, k models.SearchKeyword) (int, error)
	UpdateSearchKeyword(ctx context.Context, id int, k models.SearchKeyword) error
	ToggleSearchKeyword(ctx context.Context, id int) (bool, error)
	DeleteSearchKeyword(ctx context.Context, id int) error

	Contacts(ctx context.Context, page, limit int) (*contentservice.ContactPage, error)
	DeleteContact(ctx context.Context, id int) error

	CostOptions(ctx context.Context) ([]models.CostOption, error)
	CostPrices(ctx context.Context, optionID int) ([]models.CostPrice, error)
	CostPrice(ctx context.Context, id int) (*models.CostPrice, error)
	UpdateCostPrice(ctx context.Context, id int, p models.CostPrice) error
}

// Handler обрабатывает запросы содержимого сайта.
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

// reply пишет data при err == nil, иначе ответ с ошибкой.
func reply(w http.ResponseWriter, r *http.Request, log *slog.Logger, data any, err error, failMsg string) {
	if err != nil {
		response.Fail(w, r, log, err, failMsg)
		return
	}
	render.JSON(w, r, response.OK(data))
}

func created(w http.ResponseWriter, r *http.Request, msg string, id int) {
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKWithMessage(msg, map[string]any{"id": id}))
}

func done(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error, msg, failMsg string) {
	if err != nil {
		response.Fail(w, r, log, err, failMsg)
		return
	}
	render.JSON(w, r, response.OKWithMessage(msg, nil))
}
