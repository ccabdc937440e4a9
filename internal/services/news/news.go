// Package news публикует PDF-выпуски новостных серий: строка в базе и файл на диске.
package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/magabrotheeeer/publication-admin/internal/config"
	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/month"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/metrics"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Repository строки выпусков всех серий.
type Repository interface {
	ListNews(ctx context.Context, series string) ([]models.NewsIssue, error)
	GetNews(ctx context.Context, series string, id int) (*models.NewsIssue, error)
	NewsExists(ctx context.Context, series string, month, year, excludeID int) (bool, error)
	CreateNews(ctx context.Context, n models.NewsIssue, persist func() error) (int, error)
	UpdateNews(ctx context.Context, n models.NewsIssue, persist func() error) error
	DeleteNews(ctx context.Context, series string, id int) error
	SetNewsSample(ctx context.Context, series string, id int, forSample bool) error
}

// FileStore каталог с PDF-файлами.
type FileStore interface {
	Write(dir, name string, src io.Reader) error
	Rename(dir, from, to string) error
	Remove(dir, name string) error
}

// Upload данные формы выпуска. File может быть nil при обновлении без замены файла.
type Upload struct {
	Month     int
	Year      int
	ForSample bool
	Filename  string
	File      io.Reader
}

// Service публикатор выпусков.
type Service struct {
	repo    Repository
	files   FileStore
	series  map[string]config.Series
	minYear int
	maxYear int
	log     *slog.Logger
}

// NewService создаёт Service для серий из настроек публикации.
func NewService(repo Repository, files FileStore, cfg config.Publishing, log *slog.Logger) *Service {
	series := make(map[string]config.Series, len(cfg.NewsSeries))
	for _, s := range cfg.NewsSeries {
		series[s.Path] = s
	}
	return &Service{
		repo:    repo,
		files:   files,
		series:  series,
		minYear: cfg.MinYear,
		maxYear: cfg.MaxYear,
		log:     log,
	}
}

func (s *Service) lookup(path string) (config.Series, error) {
	sr, ok := s.series[path]
	if !ok {
		return config.Series{}, fmt.Errorf("series %q: %w", path, apperr.ErrNotFound)
	}
	return sr, nil
}

// List возвращает выпуски серии.
func (s *Service) List(ctx context.Context, seriesPath string) ([]models.NewsIssue, error) {
	const op = "services.news.List"
	sr, err := s.lookup(seriesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out, err := s.repo.ListNews(ctx, sr.Name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// Get возвращает выпуск серии.
func (s *Service) Get(ctx context.Context, seriesPath string, id int) (*models.NewsIssue, error) {
	const op = "services.news.Get"
	sr, err := s.lookup(seriesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	n, err := s.repo.GetNews(ctx, sr.Name, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *Service) validate(u Upload, requireFile bool) error {
	if !month.Valid(u.Month) {
		return apperr.Invalidf("month must be between 1 and 12")
	}
	if u.Year < s.minYear || u.Year > s.maxYear {
		return apperr.Invalidf("year must be between %d and %d", s.minYear, s.maxYear)
	}
	if u.File == nil {
		if requireFile {
			return apperr.Invalidf("pdf file is required")
		}
		return nil
	}
	if !strings.EqualFold(filepath.Ext(u.Filename), ".pdf") {
		return apperr.Invalidf("please upload a PDF file")
	}
	return nil
}

func build(sr config.Series, u Upload) models.NewsIssue {
	issueNo := month.IssueNumber(sr.EpochYear, u.Month, u.Year)
	return models.NewsIssue{
		Series:    sr.Name,
		Title:     month.IssueTitle(issueNo),
		IssueNo:   issueNo,
		PDFLink:   month.PDFName(u.Month, u.Year),
		ForSample: u.ForSample,
		Month:     u.Month,
		Year:      u.Year,
	}
}

// Create публикует новый выпуск. Если выпуск за этот месяц уже есть, возвращает
// apperr.ErrConflict. Строка фиксируется только после записи файла.
func (s *Service) Create(ctx context.Context, seriesPath string, u Upload) (*models.NewsIssue, error) {
	const op = "services.news.Create"
	sr, err := s.lookup(seriesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.validate(u, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	exists, err := s.repo.NewsExists(ctx, sr.Name, u.Month, u.Year, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: news for %s %d already uploaded: %w", op, month.Label(u.Month), u.Year, apperr.ErrConflict)
	}

	n := build(sr, u)
	id, err := s.repo.CreateNews(ctx, n, func() error {
		return s.files.Write(sr.Dir, n.PDFLink, u.File)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	n.ID = id
	metrics.IssuesPublishedTotal.WithLabelValues(sr.Name).Inc()
	return &n, nil
}

// Update меняет выпуск. Без нового файла прежний файл остаётся и при смене
// месяца или года переименовывается; новый файл с другим именем заменяет
// старый, который удаляется после фиксации.
func (s *Service) Update(ctx context.Context, seriesPath string, id int, u Upload) (*models.NewsIssue, error) {
	const op = "services.news.Update"
	sr, err := s.lookup(seriesPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.validate(u, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	old, err := s.repo.GetNews(ctx, sr.Name, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	exists, err := s.repo.NewsExists(ctx, sr.Name, u.Month, u.Year, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	}

	n := build(sr, u)
	n.ID = id
	n.CreatedAt = old.CreatedAt
	// Имя файла следует за месяцем и годом строки.
	persist := func() error { return nil }
	moved := false
	switch {
	case u.File != nil:
		persist = func() error { return s.files.Write(sr.Dir, n.PDFLink, u.File) }
	case old.PDFLink != "" && old.PDFLink != n.PDFLink:
		moved = true
		persist = func() error { return s.files.Rename(sr.Dir, old.PDFLink, n.PDFLink) }
	default:
		n.PDFLink = old.PDFLink
	}
	if err := s.repo.UpdateNews(ctx, n, persist); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !moved && old.PDFLink != "" && old.PDFLink != n.PDFLink {
		s.removeFile(sr, old.PDFLink)
	}
	return &n, nil
}

// Delete удаляет выпуск. Ошибка удаления файла только логируется.
func (s *Service) Delete(ctx context.Context, seriesPath string, id int) error {
	const op = "services.news.Delete"
	sr, err := s.lookup(seriesPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := s.repo.GetNews(ctx, sr.Name, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteNews(ctx, sr.Name, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n.PDFLink != "" {
		s.removeFile(sr, n.PDFLink)
	}
	return nil
}

// SetSample переключает признак бесплатного образца.
func (s *Service) SetSample(ctx context.Context, seriesPath string, id int, forSample bool) error {
	const op = "services.news.SetSample"
	sr, err := s.lookup(seriesPath)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.SetNewsSample(ctx, sr.Name, id, forSample); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *Service) removeFile(sr config.Series, name string) {
	if err := s.files.Remove(sr.Dir, name); err != nil {
		s.log.Warn("failed to delete news file",
			slog.String("series", sr.Name), slog.String("file", name), sl.Err(err))
	}
}
