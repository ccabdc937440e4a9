package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func TestStorage_AccessSnapshot(t *testing.T) {
	s, mock := newMockStorage(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := now.AddDate(2, 0, 0)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS cnt, MAX\(end_date\) AS max_end FROM access_monthly_news WHERE username = \$1 AND end_date >= \$2`).
		WithArgs("jdoe", now).
		WillReturnRows(sqlmock.NewRows([]string{"cnt", "max_end"}).AddRow(1, end))
	mock.ExpectQuery(`FROM access_search WHERE username = \$1 AND end_date >= \$2`).
		WithArgs("jdoe", now).
		WillReturnRows(sqlmock.NewRows([]string{"cnt", "max_end"}).AddRow(0, nil))
	mock.ExpectQuery(`FROM access_stats WHERE username = \$1 AND end_date >= \$2`).
		WithArgs("jdoe", now).
		WillReturnRows(sqlmock.NewRows([]string{"cnt", "max_end"}).AddRow(2, end))
	mock.ExpectQuery(`COALESCE\(MAX\(copies\), 0\) AS max_copies FROM access_extra_copies`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"cnt", "max_copies"}).AddRow(2, 3))
	mock.ExpectQuery(`SELECT email FROM access_extra_copies WHERE username = \$1 ORDER BY id`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"email"}).AddRow("a@example.com").AddRow("b@example.com"))
	mock.ExpectQuery(`FROM access_stats WHERE username = \$1$`).
		WithArgs("jdoe").
		WillReturnRows(sqlmock.NewRows([]string{"central_european", "polish_chemical"}).AddRow(1, 0))

	snap, err := s.AccessSnapshot(context.Background(), "jdoe", now)
	require.NoError(t, err)

	assert.Equal(t, 1, snap.MonthlyNews.Count)
	require.NotNil(t, snap.MonthlyNews.MaxEnd)
	assert.True(t, end.Equal(*snap.MonthlyNews.MaxEnd))
	assert.Equal(t, 0, snap.Search.Count)
	assert.Nil(t, snap.Search.MaxEnd)
	assert.Equal(t, 2, snap.Stats.Count)
	assert.Equal(t, 3, snap.ExtraCopies.MaxCopies)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, snap.ExtraCopies.Emails)
	assert.Equal(t, 1, snap.CentralEuropean)
	assert.Equal(t, 0, snap.PolishChemical)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_AccessSnapshot_QueryError(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`FROM access_monthly_news`).WillReturnError(errors.New("connection reset"))

	snap, err := s.AccessSnapshot(context.Background(), "jdoe", time.Now())
	assert.Error(t, err)
	assert.Nil(t, snap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ApplyGrantOps_Commit(t *testing.T) {
	s, mock := newMockStorage(t)
	now := time.Now()

	ops := []models.GrantOp{
		{Kind: models.OpDelete, Category: models.CategoryMonthlyNews},
		{Kind: models.OpInsert, Category: models.CategoryMonthlyNews, Start: now, End: now.AddDate(2, 0, 0)},
		{Kind: models.OpDelete, Category: models.CategoryExtraCopies},
		{Kind: models.OpInsert, Category: models.CategoryExtraCopies, Email: "x@example.com", Copies: 2},
		{Kind: models.OpInsert, Category: models.CategoryStats, Start: now, End: now.AddDate(1, 0, 0), CentralEuropean: true},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM access_monthly_news WHERE username = \$1`).
		WithArgs("jdoe").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO access_monthly_news \(username, start_date, end_date\)`).
		WithArgs("jdoe", sqlmock.AnyArg(), sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM access_extra_copies WHERE username = \$1`).
		WithArgs("jdoe").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO access_extra_copies \(username, email, copies\)`).
		WithArgs("jdoe", "x@example.com", 2).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO access_stats`).
		WithArgs("jdoe", sqlmock.AnyArg(), sqlmock.AnyArg(), "Y", "N").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, s.ApplyGrantOps(context.Background(), "jdoe", ops))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ApplyGrantOps_RollbackOnFailure(t *testing.T) {
	s, mock := newMockStorage(t)
	now := time.Now()

	ops := []models.GrantOp{
		{Kind: models.OpDelete, Category: models.CategoryMonthlyNews},
		{Kind: models.OpInsert, Category: models.CategoryMonthlyNews, Start: now, End: now.AddDate(1, 0, 0)},
		{Kind: models.OpDelete, Category: models.CategorySearch},
		{Kind: models.OpInsert, Category: models.CategorySearch, Start: now, End: now.AddDate(0, 3, 0)},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM access_monthly_news`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO access_monthly_news`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`DELETE FROM access_search`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO access_search`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := s.ApplyGrantOps(context.Background(), "jdoe", ops)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ApplyGrantOps_NoOps(t *testing.T) {
	s, mock := newMockStorage(t)

	require.NoError(t, s.ApplyGrantOps(context.Background(), "jdoe", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_DeleteSubscriber_Cascade(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT username FROM subscribers WHERE id = \$1 FOR UPDATE`).
		WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("jdoe"))
	for _, table := range entitlementTables {
		mock.ExpectExec(`DELETE FROM ` + table + ` WHERE username = \$1`).
			WithArgs("jdoe").WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectExec(`DELETE FROM subscribers WHERE id = \$1`).
		WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	username, err := s.DeleteSubscriber(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_DeleteSubscriber_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT username FROM subscribers`).
		WithArgs(404).WillReturnRows(sqlmock.NewRows([]string{"username"}))
	mock.ExpectRollback()

	_, err := s.DeleteSubscriber(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_UpdateSubscriber(t *testing.T) {
	sub := models.Subscriber{ID: 7, Username: "jdoe2", Type: models.TypeSingle}

	t.Run("смена username переносит права", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT username FROM subscribers WHERE id = \$1 FOR UPDATE`).
			WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("jdoe"))
		mock.ExpectExec(`UPDATE subscribers SET title`).WillReturnResult(sqlmock.NewResult(0, 1))
		for _, table := range entitlementTables {
			mock.ExpectExec(`UPDATE ` + table + ` SET username = \$1 WHERE username = \$2`).
				WithArgs("jdoe2", "jdoe").WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectCommit()

		require.NoError(t, s.UpdateSubscriber(context.Background(), sub))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("прежний username", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT username FROM subscribers`).
			WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("jdoe2"))
		mock.ExpectExec(`UPDATE subscribers SET title`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, s.UpdateSubscriber(context.Background(), sub))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка переноса откатывает изменение", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT username FROM subscribers`).
			WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("jdoe"))
		mock.ExpectExec(`UPDATE subscribers SET title`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE access_monthly_news SET username`).WillReturnError(errors.New("deadlock detected"))
		mock.ExpectRollback()

		err := s.UpdateSubscriber(context.Background(), sub)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("подписчик не найден", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT username FROM subscribers`).
			WithArgs(7).WillReturnRows(sqlmock.NewRows([]string{"username"}))
		mock.ExpectRollback()

		err := s.UpdateSubscriber(context.Background(), sub)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStorage_CreateSubscriber_Conflict(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`INSERT INTO subscribers`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "subscribers_username_key"})

	_, err := s.CreateSubscriber(context.Background(), models.Subscriber{Username: "jdoe", Type: models.TypeSingle})
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_SetSubscriberStatus_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`UPDATE subscribers SET status = \$1 WHERE id = \$2`).
		WithArgs("active", 3).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SetSubscriberStatus(context.Background(), 3, "active")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateNews_PersistFailureRollsBack(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO news_issues`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectRollback()

	_, err := s.CreateNews(context.Background(), models.NewsIssue{Series: "news", Month: 3, Year: 2024},
		func() error { return errors.New("no space left on device") })
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateNews_Duplicate(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO news_issues`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	persisted := false
	_, err := s.CreateNews(context.Background(), models.NewsIssue{Series: "news", Month: 3, Year: 2024},
		func() error { persisted = true; return nil })
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.False(t, persisted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_DeleteArticles(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`DELETE FROM articles WHERE id IN \(\$1, \$2, \$3\)`).
		WithArgs(1, 2, 3).WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := s.DeleteArticles(context.Background(), []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ReplaceTables(t *testing.T) {
	s, mock := newMockStorage(t)

	batch := models.ImportBatch{
		ID:           "3f1c2a9e-1111-2222-3333-444455556666",
		ImportType:   "1",
		RowsImported: 2,
		Tables: []models.TableReplacement{{
			Table: models.TableProducts,
			Rows: []models.Product{
				{ID: 1, Name: "Methanol", Group: "z"},
				{ID: 2, Name: "Ethylene", Group: "a"},
			},
		}},
	}
	staging := "staging_3f1c2a9e111122223333444455556666_0"

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE ` + staging + ` \(LIKE products INCLUDING DEFAULTS\) ON COMMIT DROP`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO ` + staging + ` \(id, name, product_group, display\) VALUES`).
		WithArgs(1, "Methanol", "z", false, 2, "Ethylene", "a", false).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM products`).WillReturnResult(sqlmock.NewResult(0, 5))
	mock.ExpectExec(`INSERT INTO products \(id, name, product_group, display\) SELECT id, name, product_group, display FROM ` + staging).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO import_batches`).
		WithArgs(batch.ID, "1", 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.ReplaceTables(context.Background(), batch))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ReplaceTables_FailureKeepsDestination(t *testing.T) {
	s, mock := newMockStorage(t)

	batch := models.ImportBatch{
		ID:         "00000000-0000-0000-0000-000000000001",
		ImportType: "4",
		Tables: []models.TableReplacement{
			{Table: models.TableCapacity, Rows: []models.Fact{{ID: 1, ProductID: 1, CompanyID: 1, Quarter: "Q1", Year: 2023, Amount: 10}}},
			{Table: models.TableCompanyDesc, Rows: []models.CompanyDescription{{ID: 1, CompanyID: 1, ProductID: 1}}},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO staging_`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM report_capacity`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO report_capacity`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`CREATE TEMP TABLE`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO staging_`).WillReturnError(errors.New("value too long"))
	mock.ExpectRollback()

	err := s.ReplaceTables(context.Background(), batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "report_company_desc")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_ReplaceTables_UnknownTable(t *testing.T) {
	s, mock := newMockStorage(t)

	err := s.ReplaceTables(context.Background(), models.ImportBatch{
		ID:     "00000000-0000-0000-0000-000000000002",
		Tables: []models.TableReplacement{{Table: "subscribers", Rows: []models.Product{}}},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CreateAdminIfNone(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(`INSERT INTO admins \(id, password_hash\) SELECT \$1, \$2 WHERE NOT EXISTS`).
		WithArgs("admin", "hash").WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := s.CreateAdminIfNone(context.Background(), "admin", "hash")
	require.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_CanceledContext(t *testing.T) {
	s, mock := newMockStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListSubscribers(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
