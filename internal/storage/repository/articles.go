package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

const articleColumns = `id, title, content, issue_no, month, year, scrolling, created_at`

// ListArticles возвращает страницу статей и общее их число.
func (s *Storage) ListArticles(ctx context.Context, limit, offset int) ([]models.Article, int, error) {
	const op = "storage.ListArticles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, 0, err
	}
	var total int
	if err := sqlx.GetContext(ctx, s.DB, &total, `SELECT COUNT(*) FROM articles`); err != nil {
		return nil, 0, mapErr(op, err)
	}
	out := []models.Article{}
	if err := namedSelect(ctx, s.DB, &out,
		`SELECT `+articleColumns+` FROM articles ORDER BY issue_no DESC, id LIMIT :limit OFFSET :offset`,
		map[string]any{"limit": limit, "offset": offset}); err != nil {
		return nil, 0, mapErr(op, err)
	}
	return out, total, nil
}

// GetArticle возвращает статью по id.
func (s *Storage) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	const op = "storage.GetArticle"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	var a models.Article
	if err := namedGet(ctx, s.DB, &a, `SELECT `+articleColumns+` FROM articles WHERE id = :id`,
		map[string]any{"id": id}); err != nil {
		return nil, mapErr(op, err)
	}
	return &a, nil
}

// CreateArticles сохраняет разделы одного выпуска в одной транзакции и возвращает их id.
func (s *Storage) CreateArticles(ctx context.Context, articles []models.Article) ([]int, error) {
	const op = "storage.CreateArticles"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(articles))
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		for _, a := range articles {
			var id int
			if err := namedGet(ctx, tx, &id,
				`INSERT INTO articles (title, content, issue_no, month, year, scrolling)
				 VALUES (:title, :content, :issue_no, :month, :year, :scrolling)
				 RETURNING id`, a); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, mapErr(op, err)
	}
	return ids, nil
}

// UpdateArticle меняет статью.
func (s *Storage) UpdateArticle(ctx context.Context, a models.Article) error {
	const op = "storage.UpdateArticle"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB,
		`UPDATE articles SET title = :title, content = :content, issue_no = :issue_no,
			month = :month, year = :year
		 WHERE id = :id`, a)
	return requireAffected(op, n, err)
}

// DeleteArticle удаляет статью.
func (s *Storage) DeleteArticle(ctx context.Context, id int) error {
	const op = "storage.DeleteArticle"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `DELETE FROM articles WHERE id = :id`, map[string]any{"id": id})
	return requireAffected(op, n, err)
}

// DeleteArticles удаляет несколько статей и возвращает число удалённых.
func (s *Storage) DeleteArticles(ctx context.Context, ids []int) (int, error) {
	const op = "storage.DeleteArticles"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}
	query, args, err := sqlx.In(`DELETE FROM articles WHERE id IN (?)`, ids)
	if err != nil {
		return 0, mapErr(op, err)
	}
	res, err := s.DB.ExecContext(ctx, s.DB.Rebind(query), args...)
	if err != nil {
		return 0, mapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, mapErr(op, err)
	}
	return int(n), nil
}

// SetArticleScrolling переключает показ статьи в бегущей строке.
func (s *Storage) SetArticleScrolling(ctx context.Context, id int, scrolling bool) error {
	const op = "storage.SetArticleScrolling"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	n, err := namedExec(ctx, s.DB, `UPDATE articles SET scrolling = :scrolling WHERE id = :id`,
		map[string]any{"id": id, "scrolling": scrolling})
	return requireAffected(op, n, err)
}
