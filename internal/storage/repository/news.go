package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

const newsColumns = `id, series, title, issue_no, pdf_link, for_sample, month, year, created_at`

// ListNews возвращает выпуски серии, новые первыми.
func (s *Storage) ListNews(ctx context.Context, series string) ([]models.NewsIssue, error) {
	const op = "storage.ListNews"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	out := []models.NewsIssue{}
	if err := namedSelect(ctx, s.DB, &out,
		`SELECT `+newsColumns+` FROM news_issues WHERE series = :series ORDER BY year DESC, month DESC`,
		map[string]any{"series": series}); err != nil {
		return nil, mapErr(op, err)
	}
	return out, nil
}

// GetNews возвращает выпуск серии по id.
func (s *Storage) GetNews(ctx context.Context, series string, id int) (*models.NewsIssue, error) {
	const op = "storage.GetNews"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var n models.NewsIssue
	if err := namedGet(ctx, s.DB, &n,
		`SELECT `+newsColumns+` FROM news_issues WHERE series = :series AND id = :id`,
		map[string]any{"series": series, "id": id}); err != nil {
		return nil, mapErr(op, err)
	}
	return &n, nil
}

// NewsExists сообщает, есть ли выпуск серии за месяц и год, не считая excludeID.
func (s *Storage) NewsExists(ctx context.Context, series string, month, year, excludeID int) (bool, error) {
	const op = "storage.NewsExists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	var exists bool
	if err := namedGet(ctx, s.DB, &exists,
		`SELECT EXISTS (SELECT 1 FROM news_issues
		 WHERE series = :series AND month = :month AND year = :year AND id <> :exclude_id)`,
		map[string]any{"series": series, "month": month, "year": year, "exclude_id": excludeID}); err != nil {
		return false, mapErr(op, err)
	}
	return exists, nil
}

// CreateNews сохраняет строку выпуска и вызывает persist до фиксации транзакции.
// Ошибка persist откатывает вставку; повтор месяца и года даёт apperr.ErrConflict.
func (s *Storage) CreateNews(ctx context.Context, n models.NewsIssue, persist func() error) (int, error) {
	const op = "storage.CreateNews"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	var id int
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := namedGet(ctx, tx, &id,
			`INSERT INTO news_issues (series, title, issue_no, pdf_link, for_sample, month, year)
			 VALUES (:series, :title, :issue_no, :pdf_link, :for_sample, :month, :year)
			 RETURNING id`, n); err != nil {
			return err
		}
		return persist()
	})
	if err != nil {
		return 0, mapErr(op, err)
	}
	return id, nil
}

// UpdateNews меняет строку выпуска и вызывает persist до фиксации транзакции.
func (s *Storage) UpdateNews(ctx context.Context, n models.NewsIssue, persist func() error) error {
	const op = "storage.UpdateNews"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		affected, err := namedExec(ctx, tx,
			`UPDATE news_issues SET title = :title, issue_no = :issue_no, pdf_link = :pdf_link,
				for_sample = :for_sample, month = :month, year = :year
			 WHERE series = :series AND id = :id`, n)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.ErrNotFound
		}
		return persist()
	})
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

// DeleteNews удаляет строку выпуска.
func (s *Storage) DeleteNews(ctx context.Context, series string, id int) error {
	const op = "storage.DeleteNews"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM news_issues WHERE series = :series AND id = :id`,
		map[string]any{"series": series, "id": id})
	return requireAffected(op, n, err)
}

// SetNewsSample переключает признак бесплатного образца.
func (s *Storage) SetNewsSample(ctx context.Context, series string, id int, forSample bool) error {
	const op = "storage.SetNewsSample"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB,
		`UPDATE news_issues SET for_sample = :for_sample WHERE series = :series AND id = :id`,
		map[string]any{"series": series, "id": id, "for_sample": forSample})
	return requireAffected(op, n, err)
}
