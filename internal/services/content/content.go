// Package content ведёт содержимое сайта: мероприятия, ссылки, страницы,
// подсказки поиска, обращения и цены регистрации.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/cache"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Repository хранилище содержимого сайта.
type Repository interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id int) (*models.Event, error)
	CreateEvent(ctx context.Context, e models.Event) (int, error)
	UpdateEvent(ctx context.Context, e models.Event) error
	DeleteEvent(ctx context.Context, id int) error
	SetEventDisplay(ctx context.Context, id int, display bool) error

	ListLinks(ctx context.Context) ([]models.Link, error)
	GetLink(ctx context.Context, id int) (*models.Link, error)
	CreateLink(ctx context.Context, l models.Link) (int, error)
	UpdateLink(ctx context.Context, l models.Link) error
	DeleteLink(ctx context.Context, id int) error
	SetLinkDisplay(ctx context.Context, id int, display bool) error

	ListPages(ctx context.Context) ([]models.Page, error)
	ListPageContent(ctx context.Context, pageID int) ([]models.PageContent, error)
	CreatePageContent(ctx context.Context, pc models.PageContent) (int, error)
	UpdatePageContent(ctx context.Context, pc models.PageContent) error
	DeletePageContent(ctx context.Context, id int) error

	ListSearchKeywords(ctx context.Context) ([]models.SearchKeyword, error)
	CreateSearchKeyword(ctx context.Context, k models.SearchKeyword) (int, error)
	UpdateSearchKeyword(ctx context.Context, k models.SearchKeyword) error
	ToggleSearchKeyword(ctx context.Context, id int) (bool, error)
	DeleteSearchKeyword(ctx context.Context, id int) error

	ListContacts(ctx context.Context, limit, offset int) ([]models.Contact, int, error)
	DeleteContact(ctx context.Context, id int) error

	ListCostOptions(ctx context.Context) ([]models.CostOption, error)
	ListCostPrices(ctx context.Context, optionID int) ([]models.CostPrice, error)
	GetCostPrice(ctx context.Context, id int) (*models.CostPrice, error)
	UpdateCostPrice(ctx context.Context, p models.CostPrice) error
}

// ContactPage страница обращений. Limit 0 означает все обращения.
type ContactPage struct {
	Items []models.Contact `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// Service содержимое сайта.
type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создаёт Service.
func NewService(repo Repository, c cache.Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl, log: log}
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Events возвращает мероприятия.
func (s *Service) Events(ctx context.Context) ([]models.Event, error) {
	out, err := s.repo.ListEvents(ctx)
	return out, wrap("services.content.Events", err)
}

// Event возвращает мероприятие.
func (s *Service) Event(ctx context.Context, id int) (*models.Event, error) {
	out, err := s.repo.GetEvent(ctx, id)
	return out, wrap("services.content.Event", err)
}

// CreateEvent добавляет мероприятие.
func (s *Service) CreateEvent(ctx context.Context, e models.Event) (int, error) {
	id, err := s.repo.CreateEvent(ctx, e)
	return id, wrap("services.content.CreateEvent", err)
}

// UpdateEvent меняет мероприятие.
func (s *Service) UpdateEvent(ctx context.Context, id int, e models.Event) error {
	e.ID = id
	return wrap("services.content.UpdateEvent", s.repo.UpdateEvent(ctx, e))
}

// DeleteEvent удаляет мероприятие.
func (s *Service) DeleteEvent(ctx context.Context, id int) error {
	return wrap("services.content.DeleteEvent", s.repo.DeleteEvent(ctx, id))
}

// SetEventDisplay показывает или скрывает мероприятие.
func (s *Service) SetEventDisplay(ctx context.Context, id int, display bool) error {
	return wrap("services.content.SetEventDisplay", s.repo.SetEventDisplay(ctx, id, display))
}

// Links возвращает ссылки.
func (s *Service) Links(ctx context.Context) ([]models.Link, error) {
	out, err := s.repo.ListLinks(ctx)
	return out, wrap("services.content.Links", err)
}

// Link возвращает ссылку.
func (s *Service) Link(ctx context.Context, id int) (*models.Link, error) {
	out, err := s.repo.GetLink(ctx, id)
	return out, wrap("services.content.Link", err)
}

// CreateLink добавляет ссылку.
func (s *Service) CreateLink(ctx context.Context, l models.Link) (int, error) {
	id, err := s.repo.CreateLink(ctx, l)
	return id, wrap("services.content.CreateLink", err)
}

// UpdateLink меняет ссылку.
func (s *Service) UpdateLink(ctx context.Context, id int, l models.Link) error {
	l.ID = id
	return wrap("services.content.UpdateLink", s.repo.UpdateLink(ctx, l))
}

// DeleteLink удаляет ссылку.
func (s *Service) DeleteLink(ctx context.Context, id int) error {
	return wrap("services.content.DeleteLink", s.repo.DeleteLink(ctx, id))
}

// SetLinkDisplay показывает или скрывает ссылку.
func (s *Service) SetLinkDisplay(ctx context.Context, id int, display bool) error {
	return wrap("services.content.SetLinkDisplay", s.repo.SetLinkDisplay(ctx, id, display))
}

// Pages возвращает страницы сайта.
func (s *Service) Pages(ctx context.Context) ([]models.Page, error) {
	out, err := cache.Remember(ctx, s.cache, s.log, cache.KeyPages, s.ttl, s.repo.ListPages)
	return out, wrap("services.content.Pages", err)
}

// PageContent возвращает блоки страницы.
func (s *Service) PageContent(ctx context.Context, pageID int) ([]models.PageContent, error) {
	out, err := s.repo.ListPageContent(ctx, pageID)
	return out, wrap("services.content.PageContent", err)
}

// CreatePageContent добавляет блок страницы.
func (s *Service) CreatePageContent(ctx context.Context, pc models.PageContent) (int, error) {
	id, err := s.repo.CreatePageContent(ctx, pc)
	return id, wrap("services.content.CreatePageContent", err)
}

// UpdatePageContent меняет блок страницы.
func (s *Service) UpdatePageContent(ctx context.Context, pc models.PageContent) error {
	return wrap("services.content.UpdatePageContent", s.repo.UpdatePageContent(ctx, pc))
}

// DeletePageContent удаляет блок страницы.
func (s *Service) DeletePageContent(ctx context.Context, id int) error {
	return wrap("services.content.DeletePageContent", s.repo.DeletePageContent(ctx, id))
}

// SearchKeywords возвращает подсказки поиска.
func (s *Service) SearchKeywords(ctx context.Context) ([]models.SearchKeyword, error) {
	out, err := s.repo.ListSearchKeywords(ctx)
	return out, wrap("services.content.SearchKeywords", err)
}

// CreateSearchKeyword добавляет подсказку.
func (s *Service) CreateSearchKeyword(ctx context.Context, k models.SearchKeyword) (int, error) {
	id, err := s.repo.CreateSearchKeyword(ctx, k)
	return id, wrap("services.content.CreateSearchKeyword", err)
}

// UpdateSearchKeyword меняет подсказку.
func (s *Service) UpdateSearchKeyword(ctx context.Context, id int, k models.SearchKeyword) error {
	k.ID = id
	return wrap("services.content.UpdateSearchKeyword", s.repo.UpdateSearchKeyword(ctx, k))
}

// ToggleSearchKeyword переключает показ подсказки и возвращает новое значение.
func (s *Service) ToggleSearchKeyword(ctx context.Context, id int) (bool, error) {
	v, err := s.repo.ToggleSearchKeyword(ctx, id)
	return v, wrap("services.content.ToggleSearchKeyword", err)
}

// DeleteSearchKeyword удаляет подсказку.
func (s *Service) DeleteSearchKeyword(ctx context.Context, id int) error {
	return wrap("services.content.DeleteSearchKeyword", s.repo.DeleteSearchKeyword(ctx, id))
}

// Contacts возвращает обращения. Без limit возвращаются все.
func (s *Service) Contacts(ctx context.Context, page, limit int) (*ContactPage, error) {
	const op = "services.content.Contacts"
	if limit < 0 {
		limit = 0
	}
	if page < 1 {
		page = 1
	}
	offset := 0
	if limit > 0 {
		offset = (page - 1) * limit
	}
	items, total, err := s.repo.ListContacts(ctx, limit, offset)
	if err != nil {
		return nil, wrap(op, err)
	}
	return &ContactPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// DeleteContact удаляет обращение.
func (s *Service) DeleteContact(ctx context.Context, id int) error {
	return wrap("services.content.DeleteContact", s.repo.DeleteContact(ctx, id))
}

// CostOptions возвращает варианты регистрации.
func (s *Service) CostOptions(ctx context.Context) ([]models.CostOption, error) {
	out, err := cache.Remember(ctx, s.cache, s.log, cache.KeyCostOptions, s.ttl, s.repo.ListCostOptions)
	return out, wrap("services.content.CostOptions", err)
}

// CostPrices возвращает цены варианта.
func (s *Service) CostPrices(ctx context.Context, optionID int) ([]models.CostPrice, error) {
	out, err := s.repo.ListCostPrices(ctx, optionID)
	return out, wrap("services.content.CostPrices", err)
}

// CostPrice возвращает цену.
func (s *Service) CostPrice(ctx context.Context, id int) (*models.CostPrice, error) {
	out, err := s.repo.GetCostPrice(ctx, id)
	return out, wrap("services.content.CostPrice", err)
}

// UpdateCostPrice меняет цену.
func (s *Service) UpdateCostPrice(ctx context.Context, id int, p models.CostPrice) error {
	p.ID = id
	return wrap("services.content.UpdateCostPrice", s.repo.UpdateCostPrice(ctx, p))
}
