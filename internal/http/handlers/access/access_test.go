package access

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/publication-admin/internal/lib/apperr"
	"github.com/magabrotheeeer/publication-admin/internal/lib/logger"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, userID int) (*models.Access, error) {
	args := m.Called(ctx, userID)
	acc, _ := args.Get(0).(*models.Access)
	return acc, args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID int, req models.AccessUpdate) (*models.Access, error) {
	args := m.Called(ctx, userID, req)
	acc, _ := args.Get(0).(*models.Access)
	return acc, args.Error(1)
}

func withUserID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandler_Get(t *testing.T) {
	end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := new(MockService)
	svc.On("Get", mock.Anything, 12).Return(&models.Access{
		UserID:      12,
		Username:    "anowak",
		MonthlyNews: models.Window{HasAccess: true, EndDate: &end},
		ExtraCopies: models.ExtraCopies{Emails: []string{}},
	}, nil)
	h := New(logger.Discard(), svc)

	rr := httptest.NewRecorder()
	h.Get(rr, withUserID(httptest.NewRequest(http.MethodGet, "/users/12/access", nil), "12"))

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Data models.Access `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Data.MonthlyNews.HasAccess)
	assert.True(t, end.Equal(*body.Data.MonthlyNews.EndDate))
	assert.False(t, body.Data.SearchAccess.HasAccess)
	assert.Contains(t, rr.Body.String(), `"emails":[]`)
}

func TestHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
	}{
		{
			name: "выдача статистики с отчётами",
			body: `{"statsAccess":{"grant":true,"duration":1,"centralEuropean":true}}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 12, mock.MatchedBy(func(req models.AccessUpdate) bool {
					return req.StatsAccess.Grant && req.StatsAccess.Duration == 1 &&
						req.StatsAccess.CentralEuropean && !req.StatsAccess.PolishChemical
				})).Return(&models.Access{UserID: 12}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "неверный email получателя",
			body:           `{"extraCopies":{"grant":true,"copies":1,"emails":["not-an-email"]}}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "нулевой срок",
			body: `{"monthlyNews":{"grant":true,"duration":0}}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 12, mock.Anything).
					Return(nil, fmt.Errorf("services.access.Update: %w", apperr.Invalidf("monthlyNews duration must be positive")))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "подписчик не найден",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, 12, models.AccessUpdate{}).
					Return(nil, fmt.Errorf("op: %w", apperr.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			h := New(logger.Discard(), svc)

			rr := httptest.NewRecorder()
			h.Update(rr, withUserID(httptest.NewRequest(http.MethodPut, "/users/12/access",
				strings.NewReader(tt.body)), "12"))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			svc.AssertExpectations(t)
		})
	}
}
