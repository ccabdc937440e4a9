package issues

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/publication-admin/internal/config"
	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetIssue(ctx context.Context, month, year int) (*models.Issue, error) {
	args := m.Called(ctx, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Issue), args.Error(1)
}

func (m *RepoMock) UpsertIssue(ctx context.Context, is models.Issue) (bool, error) {
	args := m.Called(ctx, is)
	return args.Bool(0), args.Error(1)
}

func newService(repo Repository) *Service {
	s := NewService(repo, config.Publishing{MinYear: 1998, MaxYear: 2050, IssueEpochYear: 1998})
	s.now = func() time.Time { return time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestService_InitialData(t *testing.T) {
	d := newService(new(RepoMock)).InitialData()

	assert.Len(t, d.Years, 53)
	assert.Equal(t, Option{Value: 1998, Text: "1998"}, d.Years[0])
	assert.Equal(t, Option{Value: 2050, Text: "2050"}, d.Years[52])
	assert.Equal(t, Option{Value: 12, Text: "DEC"}, d.Months[11])
	assert.Equal(t, 2024, d.CurrentYear)
	assert.Equal(t, 5, d.CurrentMonth)
}

func TestService_Get(t *testing.T) {
	t.Run("выпуск есть", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetIssue", mock.Anything, 4, 2024).Return(&models.Issue{Title: "Issue no 316", Content: "<p>x</p>"}, nil).Once()

		is, err := newService(repo).Get(context.Background(), 2024, 4)
		require.NoError(t, err)
		assert.Equal(t, "<p>x</p>", is.Content)
	})

	t.Run("выпуска нет", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetIssue", mock.Anything, 4, 2024).Return(nil, apperr.ErrNotFound).Once()

		is, err := newService(repo).Get(context.Background(), 2024, 4)
		require.NoError(t, err)
		assert.Empty(t, is.Content)
		assert.Empty(t, is.Title)
	})

	t.Run("ошибка хранилища", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetIssue", mock.Anything, 4, 2024).Return(nil, errors.New("conn reset")).Once()

		_, err := newService(repo).Get(context.Background(), 2024, 4)
		assert.Error(t, err)
	})
}

func TestService_Save(t *testing.T) {
	tests := []struct {
		name        string
		in          Input
		wantIssueNo int
		wantTitle   string
	}{
		{"год эпохи", Input{Content: "a", Month: 5, Year: 1998}, 5, "Issue no 5"},
		{"после эпохи", Input{Content: "a", Month: 5, Year: 2024}, 317, "Issue no 317"},
		{"свой заголовок", Input{Title: "Spring", Content: "a", Month: 1, Year: 1999}, 13, "Spring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("UpsertIssue", mock.Anything, mock.MatchedBy(func(is models.Issue) bool {
				return is.IssueNo == tt.wantIssueNo && is.Title == tt.wantTitle
			})).Return(true, nil).Once()

			is, created, err := newService(repo).Save(context.Background(), tt.in)
			require.NoError(t, err)
			assert.True(t, created)
			assert.Equal(t, tt.wantIssueNo, is.IssueNo)
			repo.AssertExpectations(t)
		})
	}

	_, _, err := newService(new(RepoMock)).Save(context.Background(), Input{Content: "a", Month: 1, Year: 1990})
	assert.ErrorIs(t, err, apperr.ErrInvalid)
}
