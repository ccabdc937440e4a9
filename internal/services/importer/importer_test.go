package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/magabrotheeeer/publication-admin/internal/cache"
	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/logger"
	"github.com/magabrotheeeer/publication-admin/internal/models"
	"github.com/magabrotheeeer/publication-admin/internal/notify"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *RepoMock) ListCompanies(ctx context.Context) ([]models.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Company), args.Error(1)
}

func (m *RepoMock) ListCountries(ctx context.Context) ([]models.Country, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Country), args.Error(1)
}

func (m *RepoMock) ReplaceTables(ctx context.Context, batch models.ImportBatch) error {
	return m.Called(ctx, batch).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func workbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func newService(repo Repository, c cache.Cache) *Service {
	s := NewService(repo, c, notify.Nop{}, logger.Discard())
	s.newID = func() string { return "3f1c1b8e-0000-4000-8000-000000000001" }
	s.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestReadWorkbook(t *testing.T) {
	rows, err := ReadWorkbook(workbook(t, [][]any{
		{"Product", "Group"},
		{"Methanol", 12.5},
	}))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Product", "Group"}, {"Methanol", "12.5"}}, rows)

	_, err = ReadWorkbook(strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_ImportProducts(t *testing.T) {
	repo := new(RepoMock)
	c := new(CacheMock)
	repo.On("ReplaceTables", mock.Anything, mock.MatchedBy(func(b models.ImportBatch) bool {
		products, ok := b.Tables[0].Rows.([]models.Product)
		return b.ImportType == "1" && b.RowsImported == 2 && len(b.Tables) == 1 &&
			b.Tables[0].Table == models.TableProducts && ok && products[1].Name == "Ammonia"
	})).Return(nil).Once()
	c.On("Invalidate", mock.Anything, []string{cache.KeyProducts}).Return(nil).Once()

	res, err := newService(repo, c).Import(context.Background(), models.ImportProducts, workbook(t, [][]any{
		{"Product", "Group"},
		{"Methanol", "A"},
		{"Ammonia", "B"},
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowsImported)
	assert.Equal(t, "3f1c1b8e-0000-4000-8000-000000000001", res.BatchID)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_ImportCapacity(t *testing.T) {
	sheet := [][]any{
		{"Product", "Methanol"},
		{"Producer", "Location", "", "Start", "Tech", "Feed", "Q1-98", "Q2-98"},
		{"Azot", "Novomoskovsk", "", "1965", "ICI", "Gas", 10, 20},
		{"Unknown", "Nowhere", "", "", "", "", 1, 1},
		{"Total", "", "", "", "", "", 11, 21},
	}
	products := []models.Product{{ID: 1, Name: "Methanol"}}
	companies := []models.Company{{ID: 10, Name: "Azot", Location: "Novomoskovsk"}}

	tests := []struct {
		name       string
		importType models.ImportType
		wantTables []string
	}{
		{
			name:       "мощности",
			importType: models.ImportCapacity,
			wantTables: []string{models.TableCapacity, models.TableCompanyDesc},
		},
		{
			name:       "расширенные мощности",
			importType: models.ImportCapacityExtended,
			wantTables: []string{models.TableCapacity2, models.TableCompanyDesc2, models.TablePeriod2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListProducts", mock.Anything).Return(products, nil).Once()
			repo.On("ListCompanies", mock.Anything).Return(companies, nil).Once()
			repo.On("ReplaceTables", mock.Anything, mock.MatchedBy(func(b models.ImportBatch) bool {
				if len(b.Tables) != len(tt.wantTables) || b.RowsImported != 2 {
					return false
				}
				for i, table := range tt.wantTables {
					if b.Tables[i].Table != table {
						return false
					}
				}
				facts := b.Tables[0].Rows.([]models.Fact)
				return facts[0] == models.Fact{ID: 1, ProductID: 1, CompanyID: 10, Quarter: "Q1", Year: 1998, Amount: 10}
			})).Return(nil).Once()

			res, err := newService(repo, cache.Nop{}).Import(context.Background(), tt.importType, workbook(t, sheet))
			require.NoError(t, err)
			assert.Equal(t, 2, res.RowsImported)
			assert.Equal(t, 1, res.Skipped)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_ImportErrors(t *testing.T) {
	sheet := [][]any{{"Producer", "Location", "Q1-23"}}

	t.Run("неизвестный тип", func(t *testing.T) {
		repo := new(RepoMock)
		_, err := newService(repo, cache.Nop{}).Import(context.Background(), "99", workbook(t, sheet))
		assert.ErrorIs(t, err, apperr.ErrInvalid)
		repo.AssertNotCalled(t, "ReplaceTables", mock.Anything, mock.Anything)
	})

	t.Run("справочник производителей пуст", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListCompanies", mock.Anything).Return([]models.Company{}, nil).Once()
		_, err := newService(repo, cache.Nop{}).Import(context.Background(), models.ImportNetFinance, workbook(t, sheet))
		assert.ErrorIs(t, err, apperr.ErrPrecondition)
		repo.AssertNotCalled(t, "ReplaceTables", mock.Anything, mock.Anything)
	})

	t.Run("справочник продуктов пуст", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListProducts", mock.Anything).Return([]models.Product{}, nil).Once()
		_, err := newService(repo, cache.Nop{}).Import(context.Background(), models.ImportPeriod, workbook(t, sheet))
		assert.ErrorIs(t, err, apperr.ErrPrecondition)
	})

	t.Run("ошибка замены таблиц", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("ListCompanies", mock.Anything).Return([]models.Company{{ID: 1, Name: "A"}}, nil).Once()
		repo.On("ReplaceTables", mock.Anything, mock.Anything).Return(errors.New("tx aborted")).Once()
		_, err := newService(repo, cache.Nop{}).Import(context.Background(), models.ImportGrossFinance, workbook(t, sheet))
		assert.Error(t, err)
	})
}
