package repository

import (
	"context"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// GetIssue возвращает текстовый выпуск за месяц и год.
func (s *Storage) GetIssue(ctx context.Context, month, year int) (*models.Issue, error) {
	const op = "storage.GetIssue"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var is models.Issue
	if err := namedGet(ctx, s.DB, &is,
		`SELECT id, title, issue_no, content, month, year, updated_at
		 FROM issues WHERE month = :month AND year = :year`,
		map[string]any{"month": month, "year": year}); err != nil {
		return nil, mapErr(op, err)
	}
	return &is, nil
}

// UpsertIssue создаёт выпуск или заменяет содержимое существующего за тот же месяц и год.
// Возвращает true, если выпуск был создан.
func (s *Storage) UpsertIssue(ctx context.Context, is models.Issue) (bool, error) {
	const op = "storage.UpsertIssue"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	var inserted bool
	if err := namedGet(ctx, s.DB, &inserted,
		`INSERT INTO issues (title, issue_no, content, month, year)
		 VALUES (:title, :issue_no, :content, :month, :year)
		 ON CONFLICT (month, year) DO UPDATE
		 SET title = EXCLUDED.title, issue_no = EXCLUDED.issue_no,
		     content = EXCLUDED.content, updated_at = NOW()
		 RETURNING (xmax = 0) AS inserted`, is); err != nil {
		return false, mapErr(op, err)
	}
	return inserted, nil
}
