// Package articles ведёт статьи выпусков. Выпуск приходит одним HTML-текстом и
// сохраняется по статье на каждый раздел <h4>.
package articles

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Параметры страницы списка по умолчанию.
const (
	DefaultPage  = 1
	DefaultLimit = 100
	MaxLimit     = 1000
)

var dateLayouts = []string{"01/02/2006", "2006-01-02"}

// Repository хранилище статей.
type Repository interface {
	ListArticles(ctx context.Context, limit, offset int) ([]models.Article, int, error)
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	CreateArticles(ctx context.Context, articles []models.Article) ([]int, error)
	UpdateArticle(ctx context.Context, a models.Article) error
	DeleteArticle(ctx context.Context, id int) error
	DeleteArticles(ctx context.Context, ids []int) (int, error)
	SetArticleScrolling(ctx context.Context, id int, scrolling bool) error
}

// Input текст выпуска для разбиения на статьи.
type Input struct {
	Content string `json:"content" validate:"required"`
	IssueNo int    `json:"issueNo" validate:"min=0"`
	Date    string `json:"date" validate:"required"`
}

// UpdateInput изменение одной статьи.
type UpdateInput struct {
	Title   string `json:"title" validate:"required,max=500"`
	Content string `json:"content" validate:"required"`
	IssueNo int    `json:"issueNo" validate:"min=0"`
	Date    string `json:"date" validate:"required"`
}

// Service статьи.
type Service struct {
	repo Repository
}

// NewService создаёт Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ParseDate возвращает месяц и год даты в виде MM/DD/YYYY или YYYY-MM-DD.
func ParseDate(s string) (int, int, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return int(t.Month()), t.Year(), nil
		}
	}
	return 0, 0, apperr.Invalidf("date %q must be MM/DD/YYYY or YYYY-MM-DD", s)
}

// List возвращает страницу статей, новые выпуски первыми.
func (s *Service) List(ctx context.Context, page, limit int) (*models.ArticlePage, error) {
	const op = "services.articles.List"
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)

	items, total, err := s.repo.ListArticles(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.ArticlePage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Get возвращает статью.
func (s *Service) Get(ctx context.Context, id int) (*models.Article, error) {
	const op = "services.articles.Get"
	a, err := s.repo.GetArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// Create делит текст выпуска на разделы и сохраняет их одной транзакцией.
// Текст без разделов отклоняется целиком.
func (s *Service) Create(ctx context.Context, in Input) ([]int, error) {
	const op = "services.articles.Create"
	m, y, err := ParseDate(in.Date)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sections := SplitSections(in.Content)
	if len(sections) == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperr.Invalidf("no valid article sections found with <h4> tags"))
	}

	articles := make([]models.Article, 0, len(sections))
	for _, sec := range sections {
		articles = append(articles, models.Article{
			Title:   sec.Title,
			Content: sec.Content,
			IssueNo: in.IssueNo,
			Month:   m,
			Year:    y,
		})
	}
	ids, err := s.repo.CreateArticles(ctx, articles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ids, nil
}

// Update меняет статью.
func (s *Service) Update(ctx context.Context, id int, in UpdateInput) error {
	const op = "services.articles.Update"
	m, y, err := ParseDate(in.Date)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	a := models.Article{ID: id, Title: in.Title, Content: in.Content, IssueNo: in.IssueNo, Month: m, Year: y}
	if err := s.repo.UpdateArticle(ctx, a); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete удаляет статью.
func (s *Service) Delete(ctx context.Context, id int) error {
	const op = "services.articles.Delete"
	if err := s.repo.DeleteArticle(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteMany удаляет несколько статей и возвращает число удалённых.
func (s *Service) DeleteMany(ctx context.Context, ids []int) (int, error) {
	const op = "services.articles.DeleteMany"
	if len(ids) == 0 {
		return 0, fmt.Errorf("%s: %w", op, apperr.Invalidf("ids must not be empty"))
	}
	n, err := s.repo.DeleteArticles(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// SetScrolling включает статью в бегущую строку.
func (s *Service) SetScrolling(ctx context.Context, id int, scrolling bool) error {
	const op = "services.articles.SetScrolling"
	if err := s.repo.SetArticleScrolling(ctx, id, scrolling); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
