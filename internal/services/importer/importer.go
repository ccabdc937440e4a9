// Package importer загружает справочники и квартальные отчёты из книг Excel.
// Каждая загрузка полностью заменяет содержимое своих таблиц.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/publication-admin/internal/cache"
	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
	"github.com/magabrotheeeer/publication-admin/internal/metrics"
	"github.com/magabrotheeeer/publication-admin/internal/models"
	"github.com/magabrotheeeer/publication-admin/internal/notify"
)

// Repository справочники и атомарная замена таблиц.
type Repository interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	ReplaceTables(ctx context.Context, batch models.ImportBatch) error
}

// Service загрузчик книг.
type Service struct {
	repo      Repository
	cache     cache.Cache
	publisher notify.Publisher
	log       *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService создаёт Service.
func NewService(repo Repository, c cache.Cache, publisher notify.Publisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     c,
		publisher: publisher,
		log:       log,
		now:       time.Now,
		newID:     func() string { return uuid.NewString() },
	}
}

// ImportCompleted событие о завершённой загрузке.
type ImportCompleted struct {
	BatchID      string            `json:"batchId"`
	Type         models.ImportType `json:"importType"`
	RowsImported int               `json:"rowsImported"`
	FinishedAt   time.Time         `json:"finishedAt"`
}

// ValidType сообщает, поддерживается ли тип загрузки.
func ValidType(t models.ImportType) bool {
	switch t {
	case models.ImportProducts, models.ImportCompanies, models.ImportPeriod,
		models.ImportCapacity, models.ImportCapacityExtended, models.ImportGrossFinance,
		models.ImportNetFinance, models.ImportTurnoverFinance, models.ImportPolishChemical:
		return true
	}
	return false
}

// Import разбирает книгу и заменяет таблицы типа t одной транзакцией.
func (s *Service) Import(ctx context.Context, t models.ImportType, r io.Reader) (*models.ImportResult, error) {
	const op = "services.importer.Import"
	res, err := s.doImport(ctx, t, r)
	if err != nil {
		metrics.ImportFailuresTotal.WithLabelValues(string(t)).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

func (s *Service) doImport(ctx context.Context, t models.ImportType, r io.Reader) (*models.ImportResult, error) {
	if !ValidType(t) {
		return nil, apperr.Invalidf("unknown import type %q", t)
	}
	rows, err := ReadWorkbook(r)
	if err != nil {
		return nil, err
	}
	tables, imported, skipped, err := s.build(ctx, t, rows)
	if err != nil {
		return nil, err
	}

	batch := models.ImportBatch{
		ID:           s.newID(),
		ImportType:   string(t),
		RowsImported: imported,
		Tables:       tables,
	}
	if err := s.repo.ReplaceTables(ctx, batch); err != nil {
		return nil, err
	}

	res := &models.ImportResult{
		BatchID:      batch.ID,
		Type:         t,
		RowsImported: imported,
		Skipped:      skipped,
		FinishedAt:   s.now(),
	}
	metrics.ImportRowsTotal.WithLabelValues(string(t)).Add(float64(imported))
	s.afterImport(ctx, res)
	return res, nil
}

func (s *Service) afterImport(ctx context.Context, res *models.ImportResult) {
	var keys []string
	switch res.Type {
	case models.ImportProducts:
		keys = append(keys, cache.KeyProducts)
	case models.ImportCompanies:
		keys = append(keys, cache.KeyCompanies)
	}
	if len(keys) > 0 {
		if err := s.cache.Invalidate(ctx, keys...); err != nil {
			s.log.Warn("failed to invalidate catalog cache", sl.Err(err))
		}
	}

	event := ImportCompleted{
		BatchID:      res.BatchID,
		Type:         res.Type,
		RowsImported: res.RowsImported,
		FinishedAt:   res.FinishedAt,
	}
	if err := s.publisher.Publish(ctx, notify.RoutingImportCompleted, event); err != nil {
		s.log.Warn("failed to publish import event", slog.String("batch_id", res.BatchID), sl.Err(err))
	}
	s.log.Info("import finished",
		slog.String("import_type", string(res.Type)),
		slog.Int("rows", res.RowsImported),
		slog.Int("skipped", res.Skipped))
}

// build разбирает строки листа в содержимое заменяемых таблиц.
func (s *Service) build(ctx context.Context, t models.ImportType, rows [][]string) ([]models.TableReplacement, int, int, error) {
	switch t {
	case models.ImportProducts:
		products, ok := ParseProducts(rows)
		if !ok {
			return nil, 0, 0, apperr.Invalidf("header row must contain a %q column", labelProduct)
		}
		return []models.TableReplacement{{Table: models.TableProducts, Rows: products}}, len(products), 0, nil

	case models.ImportCompanies:
		countries, err := s.repo.ListCountries(ctx)
		if err != nil {
			return nil, 0, 0, err
		}
		companies, ok := ParseCompanies(rows, NewRefs(nil, nil, countries))
		if !ok {
			return nil, 0, 0, apperr.Invalidf("header row must contain a %q column", labelProducer)
		}
		return []models.TableReplacement{{Table: models.TableCompanies, Rows: companies}}, len(companies), 0, nil
	}

	refs, err := s.refs(ctx, t)
	if err != nil {
		return nil, 0, 0, err
	}

	var (
		p      Parsed
		tables []models.TableReplacement
	)
	switch t {
	case models.ImportPeriod:
		p = ParsePeriod(rows, refs)
		tables = []models.TableReplacement{{Table: models.TablePeriod, Rows: p.Facts}}
	case models.ImportCapacity:
		p = ParseCapacity(rows, refs)
		tables = []models.TableReplacement{
			{Table: models.TableCapacity, Rows: p.Facts},
			{Table: models.TableCompanyDesc, Rows: p.Descriptions},
		}
	case models.ImportCapacityExtended:
		p = ParseCapacity(rows, refs)
		tables = []models.TableReplacement{
			{Table: models.TableCapacity2, Rows: p.Facts},
			{Table: models.TableCompanyDesc2, Rows: p.Descriptions},
			{Table: models.TablePeriod2, Rows: p.Facts},
		}
	case models.ImportGrossFinance:
		p = ParseFinance(rows, refs)
		tables = []models.TableReplacement{{Table: models.TableGrossFinance, Rows: p.Facts}}
	case models.ImportNetFinance:
		p = ParseFinance(rows, refs)
		tables = []models.TableReplacement{{Table: models.TableNetFinance, Rows: p.Facts}}
	case models.ImportTurnoverFinance:
		p = ParseFinance(rows, refs)
		tables = []models.TableReplacement{{Table: models.TableTurnoverFinance, Rows: p.Facts}}
	case models.ImportPolishChemical:
		p = ParsePolishChemical(rows, refs)
		tables = []models.TableReplacement{{Table: models.TablePolishChemical, Rows: p.Facts}}
	}
	return tables, len(p.Facts), p.Skipped, nil
}

// refs загружает справочники, нужные типу t, и проверяет, что они не пусты.
func (s *Service) refs(ctx context.Context, t models.ImportType) (Refs, error) {
	needProducts := t != models.ImportGrossFinance && t != models.ImportNetFinance && t != models.ImportTurnoverFinance
	needCompanies := t != models.ImportPolishChemical

	var (
		products  []models.Product
		companies []models.Company
		err       error
	)
	if needProducts {
		if products, err = s.repo.ListProducts(ctx); err != nil {
			return Refs{}, err
		}
		if len(products) == 0 {
			return Refs{}, apperr.Preconditionf("products must be imported first")
		}
	}
	if needCompanies {
		if companies, err = s.repo.ListCompanies(ctx); err != nil {
			return Refs{}, err
		}
		if len(companies) == 0 {
			return Refs{}, apperr.Preconditionf("companies must be imported first")
		}
	}
	return NewRefs(products, companies, nil), nil
}
