// Package catalog справочники продуктов, производителей и стран для отчётов.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/cache"
	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

const defaultGroup = "z"

// Repository хранилище справочников.
type Repository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (int, error)
	SetProductDisplay(ctx context.Context, id int, display bool) error
	ListCompanies(ctx context.Context) ([]models.Company, error)
	CreateCompany(ctx context.Context, c models.Company) (int, error)
	SetCompanyDisplay(ctx context.Context, id int, display bool) error
	ListCountries(ctx context.Context) ([]models.Country, error)
}

// ProductInput новый продукт.
type ProductInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Group string `json:"group" validate:"max=50"`
}

// CompanyInput новый производитель.
type CompanyInput struct {
	Name      string `json:"name" validate:"required,max=255"`
	Location  string `json:"location" validate:"max=255"`
	CountryID int    `json:"countryId" validate:"min=0"`
}

// Service справочники с кэшем.
type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewService создаёт Service. ttl время жизни записей кэша.
func NewService(repo Repository, c cache.Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: c, ttl: ttl, log: log}
}

// Products возвращает все продукты.
func (s *Service) Products(ctx context.Context) ([]models.Product, error) {
	const op = "services.catalog.Products"
	out, err := cache.Remember(ctx, s.cache, s.log, cache.KeyProducts, s.ttl, s.repo.ListProducts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateProduct добавляет продукт. Пустая группа заменяется на "z".
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (int, error) {
	const op = "services.catalog.CreateProduct"
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, fmt.Errorf("%s: %w", op, apperr.Invalidf("product name is required"))
	}
	p := models.Product{Name: name, Group: strings.TrimSpace(in.Group)}
	if p.Group == "" {
		p.Group = defaultGroup
	}
	id, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyProducts)
	return id, nil
}

// SetProductDisplay показывает или скрывает продукт.
func (s *Service) SetProductDisplay(ctx context.Context, id int, display bool) error {
	const op = "services.catalog.SetProductDisplay"
	if err := s.repo.SetProductDisplay(ctx, id, display); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyProducts)
	return nil
}

// Companies возвращает всех производителей.
func (s *Service) Companies(ctx context.Context) ([]models.Company, error) {
	const op = "services.catalog.Companies"
	out, err := cache.Remember(ctx, s.cache, s.log, cache.KeyCompanies, s.ttl, s.repo.ListCompanies)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateCompany добавляет производителя.
func (s *Service) CreateCompany(ctx context.Context, in CompanyInput) (int, error) {
	const op = "services.catalog.CreateCompany"
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return 0, fmt.Errorf("%s: %w", op, apperr.Invalidf("company name is required"))
	}
	id, err := s.repo.CreateCompany(ctx, models.Company{
		Name:      name,
		Location:  strings.TrimSpace(in.Location),
		CountryID: in.CountryID,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCompanies)
	return id, nil
}

// SetCompanyDisplay показывает или скрывает производителя.
func (s *Service) SetCompanyDisplay(ctx context.Context, id int, display bool) error {
	const op = "services.catalog.SetCompanyDisplay"
	if err := s.repo.SetCompanyDisplay(ctx, id, display); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, cache.KeyCompanies)
	return nil
}

// Countries возвращает страны.
func (s *Service) Countries(ctx context.Context) ([]models.Country, error) {
	const op = "services.catalog.Countries"
	out, err := cache.Remember(ctx, s.cache, s.log, cache.KeyCountries, s.ttl, s.repo.ListCountries)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate cache", slog.Any("keys", keys), sl.Err(err))
	}
}
