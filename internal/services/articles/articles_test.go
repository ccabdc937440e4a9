package articles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListArticles(ctx context.Context, limit, offset int) ([]models.Article, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Article), args.Int(1), args.Error(2)
}

func (m *RepoMock) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *RepoMock) CreateArticles(ctx context.Context, articles []models.Article) ([]int, error) {
	args := m.Called(ctx, articles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *RepoMock) UpdateArticle(ctx context.Context, a models.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *RepoMock) DeleteArticle(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) DeleteArticles(ctx context.Context, ids []int) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) SetArticleScrolling(ctx context.Context, id int, scrolling bool) error {
	return m.Called(ctx, id, scrolling).Error(0)
}

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Section
	}{
		{
			name:    "два раздела",
			content: "intro<h4>Methanol <b>prices</b></h4><p>up</p><h4>Ammonia</h4><p>down</p>",
			want: []Section{
				{Title: "Methanol prices", Content: "<p>up</p>"},
				{Title: "Ammonia", Content: "<p>down</p>"},
			},
		},
		{
			name:    "экранированные заголовки",
			content: "&lt;h4&gt;Urea&lt;/h4&gt;text one&lt;h4&gt;&lt;i&gt;Benzene&lt;/i&gt;&lt;/h4&gt;text two",
			want: []Section{
				{Title: "Urea", Content: "text one"},
				{Title: "Benzene", Content: "text two"},
			},
		},
		{
			name:    "многострочный текст раздела",
			content: "<h4>One</h4>\nline1\nline2\n",
			want:    []Section{{Title: "One", Content: "\nline1\nline2\n"}},
		},
		{
			name:    "нет заголовков",
			content: "<p>plain text</p>",
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSections(tt.content))
		})
	}
}

func TestParseDate(t *testing.T) {
	m, y, err := ParseDate("03/15/2024")
	require.NoError(t, err)
	assert.Equal(t, 3, m)
	assert.Equal(t, 2024, y)

	m, y, err = ParseDate("2023-11-02")
	require.NoError(t, err)
	assert.Equal(t, 11, m)
	assert.Equal(t, 2023, y)

	_, _, err = ParseDate("15.03.2024")
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Create(t *testing.T) {
	t.Run("разделы сохраняются вместе", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateArticles", mock.Anything, []models.Article{
			{Title: "A", Content: "a", IssueNo: 317, Month: 5, Year: 2024},
			{Title: "B", Content: "b", IssueNo: 317, Month: 5, Year: 2024},
		}).Return([]int{10, 11}, nil).Once()

		ids, err := NewService(repo).Create(context.Background(), Input{
			Content: "<h4>A</h4>a<h4>B</h4>b", IssueNo: 317, Date: "05/01/2024",
		})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 11}, ids)
	})

	t.Run("без разделов", func(t *testing.T) {
		repo := new(RepoMock)
		_, err := NewService(repo).Create(context.Background(), Input{Content: "<p>x</p>", Date: "05/01/2024"})
		assert.ErrorIs(t, err, apperr.ErrInvalid)
		repo.AssertNotCalled(t, "CreateArticles", mock.Anything, mock.Anything)
	})

	t.Run("ошибка транзакции", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("CreateArticles", mock.Anything, mock.Anything).Return(nil, errors.New("rollback")).Once()
		_, err := NewService(repo).Create(context.Background(), Input{Content: "<h4>A</h4>a", Date: "2024-05-01"})
		assert.Error(t, err)
	})
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"по умолчанию", 0, 0, 100, 0},
		{"третья страница", 3, 20, 20, 40},
		{"слишком большой лимит", 1, 5000, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListArticles", mock.Anything, tt.wantLimit, tt.wantOffset).
				Return([]models.Article{{ID: 1}}, 41, nil).Once()

			p, err := NewService(repo).List(context.Background(), tt.page, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, 41, p.Total)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestService_DeleteMany(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteArticles", mock.Anything, []int{1, 2}).Return(2, nil).Once()

	n, err := NewService(repo).DeleteMany(context.Background(), []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = NewService(repo).DeleteMany(context.Background(), nil)
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteArticle", mock.Anything, 9).Return(apperr.ErrNotFound).Once()

	err := NewService(repo).Delete(context.Background(), 9)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
