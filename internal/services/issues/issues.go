// Package issues ведёт текстовые выпуски журнала, по одному на месяц.
package issues

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/magabrotheeeer/publication-admin/internal/config"
	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/month"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Repository хранилище выпусков.
type Repository interface {
	GetIssue(ctx context.Context, month, year int) (*models.Issue, error)
	UpsertIssue(ctx context.Context, is models.Issue) (bool, error)
}

// Option элемент выпадающего списка формы.
type Option struct {
	Value int    `json:"valueField"`
	Text  string `json:"textField"`
}

// InitialData справочники формы выпуска.
type InitialData struct {
	Years        []Option `json:"years"`
	Months       []Option `json:"months"`
	CurrentYear  int      `json:"currentYear"`
	CurrentMonth int      `json:"currentMonth"`
}

// Input содержимое выпуска из формы.
type Input struct {
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content" validate:"required"`
	Month   int    `json:"month" validate:"required,min=1,max=12"`
	Year    int    `json:"year" validate:"required"`
}

// Service выпуски журнала.
type Service struct {
	repo      Repository
	epochYear int
	minYear   int
	maxYear   int
	now       func() time.Time
}

// NewService создаёт Service.
func NewService(repo Repository, cfg config.Publishing) *Service {
	return &Service{
		repo:      repo,
		epochYear: cfg.IssueEpochYear,
		minYear:   cfg.MinYear,
		maxYear:   cfg.MaxYear,
		now:       time.Now,
	}
}

// InitialData возвращает годы, месяцы и текущую дату для формы.
func (s *Service) InitialData() InitialData {
	now := s.now()
	d := InitialData{
		Years:        make([]Option, 0, s.maxYear-s.minYear+1),
		Months:       make([]Option, 0, 12),
		CurrentYear:  now.Year(),
		CurrentMonth: int(now.Month()),
	}
	for y := s.minYear; y <= s.maxYear; y++ {
		d.Years = append(d.Years, Option{Value: y, Text: strconv.Itoa(y)})
	}
	for i, l := range month.Labels() {
		d.Months = append(d.Months, Option{Value: i + 1, Text: l})
	}
	return d
}

// Get возвращает выпуск за месяц. Если выпуска нет, возвращается пустой выпуск.
func (s *Service) Get(ctx context.Context, year, m int) (*models.Issue, error) {
	const op = "services.issues.Get"
	if !month.Valid(m) {
		return nil, fmt.Errorf("%s: %w", op, apperr.Invalidf("month must be between 1 and 12"))
	}
	is, err := s.repo.GetIssue(ctx, m, year)
	if errors.Is(err, apperr.ErrNotFound) {
		return &models.Issue{Month: m, Year: year}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return is, nil
}

// Save создаёт выпуск за месяц или заменяет его содержимое.
// Второе значение сообщает, был ли выпуск создан.
func (s *Service) Save(ctx context.Context, in Input) (*models.Issue, bool, error) {
	const op = "services.issues.Save"
	if !month.Valid(in.Month) {
		return nil, false, fmt.Errorf("%s: %w", op, apperr.Invalidf("month must be between 1 and 12"))
	}
	if in.Year < s.minYear || in.Year > s.maxYear {
		return nil, false, fmt.Errorf("%s: %w", op, apperr.Invalidf("year must be between %d and %d", s.minYear, s.maxYear))
	}

	is := models.Issue{
		Title:   in.Title,
		IssueNo: month.IssueNumber(s.epochYear, in.Month, in.Year),
		Content: in.Content,
		Month:   in.Month,
		Year:    in.Year,
	}
	if is.Title == "" {
		is.Title = month.IssueTitle(is.IssueNo)
	}
	created, err := s.repo.UpsertIssue(ctx, is)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return &is, created, nil
}
