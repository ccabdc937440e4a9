package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/magabrotheeeer/publication-admin/internal/models"
)

var grantTables = map[models.GrantCategory]string{
	models.CategoryMonthlyNews: "access_monthly_news",
	models.CategoryExtraCopies: "access_extra_copies",
	models.CategorySearch:      "access_search",
	models.CategoryStats:       "access_stats",
}

// entitlementTables все таблицы, строки которых принадлежат подписчику.
var entitlementTables = []string{
	"access_monthly_news",
	"access_extra_copies",
	"access_search",
	"access_stats",
	"access_seats",
}

// AccessSnapshot читает агрегаты по всем категориям прав. Действующими
// считаются строки с end_date >= now; дополнительные получатели срока не имеют.
func (s *Storage) AccessSnapshot(ctx context.Context, username string, now time.Time) (*models.AccessSnapshot, error) {
	const op = "storage.AccessSnapshot"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	arg := map[string]any{"username": username, "now": now}
	var snap models.AccessSnapshot

	windows := []struct {
		table string
		dest  *models.GrantAggregate
	}{
		{grantTables[models.CategoryMonthlyNews], &snap.MonthlyNews},
		{grantTables[models.CategorySearch], &snap.Search},
		{grantTables[models.CategoryStats], &snap.Stats},
	}
	for _, w := range windows {
		query := `SELECT COUNT(*) AS cnt, MAX(end_date) AS max_end FROM ` + w.table +
			` WHERE username = :username AND end_date >= :now`
		if err := namedGet(ctx, s.DB, w.dest, query, arg); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", op, w.table, err)
		}
	}

	var copies struct {
		Count     int `db:"cnt"`
		MaxCopies int `db:"max_copies"`
	}
	if err := namedGet(ctx, s.DB, &copies,
		`SELECT COUNT(*) AS cnt, COALESCE(MAX(copies), 0) AS max_copies
		 FROM access_extra_copies WHERE username = :username`, arg); err != nil {
		return nil, fmt.Errorf("%s: extra copies: %w", op, err)
	}
	snap.ExtraCopies.Count = copies.Count
	snap.ExtraCopies.MaxCopies = copies.MaxCopies
	snap.ExtraCopies.Emails = []string{}
	if err := namedSelect(ctx, s.DB, &snap.ExtraCopies.Emails,
		`SELECT email FROM access_extra_copies WHERE username = :username ORDER BY id`, arg); err != nil {
		return nil, fmt.Errorf("%s: extra copies emails: %w", op, err)
	}

	var flags struct {
		CentralEuropean int `db:"central_european"`
		PolishChemical  int `db:"polish_chemical"`
	}
	if err := namedGet(ctx, s.DB, &flags,
		`SELECT COUNT(*) FILTER (WHERE central_european = 'Y') AS central_european,
		        COUNT(*) FILTER (WHERE polish_chemical = 'Y') AS polish_chemical
		 FROM access_stats WHERE username = :username`, arg); err != nil {
		return nil, fmt.Errorf("%s: report flags: %w", op, err)
	}
	snap.CentralEuropean = flags.CentralEuropean
	snap.PolishChemical = flags.PolishChemical

	return &snap, nil
}

// ApplyGrantOps выполняет шаги изменения прав в одной транзакции.
// Ошибка любого шага откатывает все предыдущие.
func (s *Storage) ApplyGrantOps(ctx context.Context, username string, ops []models.GrantOp) error {
	const op = "storage.ApplyGrantOps"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		for i, g := range ops {
			if err := applyGrantOp(ctx, tx, username, g); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, g.Category, err)
			}
		}
		return nil
	})
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func applyGrantOp(ctx context.Context, tx sqlx.ExtContext, username string, g models.GrantOp) error {
	table, ok := grantTables[g.Category]
	if !ok {
		return fmt.Errorf("unknown grant category %q", g.Category)
	}

	switch g.Kind {
	case models.OpDelete:
		_, err := namedExec(ctx, tx, `DELETE FROM `+table+` WHERE username = :username`,
			map[string]any{"username": username})
		return err

	case models.OpClearReports:
		_, err := namedExec(ctx, tx,
			`UPDATE access_stats SET central_european = 'N', polish_chemical = 'N' WHERE username = :username`,
			map[string]any{"username": username})
		return err

	case models.OpInsert:
		arg := map[string]any{
			"username":         username,
			"start_date":       g.Start,
			"end_date":         g.End,
			"email":            g.Email,
			"copies":           g.Copies,
			"central_european": yn(g.CentralEuropean),
			"polish_chemical":  yn(g.PolishChemical),
		}
		var query string
		switch g.Category {
		case models.CategoryExtraCopies:
			query = `INSERT INTO access_extra_copies (username, email, copies) VALUES (:username, :email, :copies)`
		case models.CategoryStats:
			query = `INSERT INTO access_stats (username, start_date, end_date, central_european, polish_chemical)
			         VALUES (:username, :start_date, :end_date, :central_european, :polish_chemical)`
		default:
			query = `INSERT INTO ` + table + ` (username, start_date, end_date) VALUES (:username, :start_date, :end_date)`
		}
		_, err := namedExec(ctx, tx, query, arg)
		return err
	}
	return fmt.Errorf("unknown grant op kind %d", g.Kind)
}

func yn(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}
