package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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

func (m *MockService) List(ctx context.Context) ([]models.Subscriber, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Subscriber)
	return list, args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id int) (*models.Subscriber, error) {
	args := m.Called(ctx, id)
	sub, _ := args.Get(0).(*models.Subscriber)
	return sub, args.Error(1)
}

func (m *MockService) Create(ctx context.Context, in models.SubscriberInput) (int, error) {
	args := m.Called(ctx, in)
	return args.Int(0), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id int, in models.SubscriberInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockService) SetStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockService) SetPaid(ctx context.Context, id int, paid bool) error {
	return m.Called(ctx, id, paid).Error(0)
}

func (m *MockService) Delete(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func withUserID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

const validUser = `{"firstName":"Anna","lastName":"Nowak","email":"anna@example.com","username":"anowak","password":"secret1","type":"Corporate"}`

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "подписчик создан",
			body: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(in models.SubscriberInput) bool {
					return in.Username == "anowak" && in.Type == models.TypeCorporate
				})).Return(42, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":42`,
		},
		{
			name: "логин занят",
			body: validUser,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(0, fmt.Errorf("storage.repository.CreateSubscriber: %w", apperr.ErrConflict))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"success":false`,
		},
		{
			name:           "неверный email",
			body:           `{"firstName":"Anna","lastName":"Nowak","email":"nope","username":"anowak","password":"secret1"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Email must be a valid email",
		},
		{
			name:           "неизвестный тип",
			body:           `{"firstName":"Anna","lastName":"Nowak","email":"a@b.cz","username":"anowak","type":"Gold"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "field Type must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			h := New(logger.Discard(), svc)

			rr := httptest.NewRecorder()
			h.Create(rr, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Get(t *testing.T) {
	t.Run("пароль не попадает в ответ", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Get", mock.Anything, 7).Return(&models.Subscriber{ID: 7, Username: "anowak", PasswordHash: "$2a$10$hash"}, nil)
		h := New(logger.Discard(), svc)

		rr := httptest.NewRecorder()
		h.Get(rr, withUserID(httptest.NewRequest(http.MethodGet, "/users/7", nil), "7"))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "$2a$10$hash")

		var body struct {
			Success bool              `json:"success"`
			Data    models.Subscriber `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "anowak", body.Data.Username)
	})

	t.Run("не найден", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Get", mock.Anything, 8).Return(nil, fmt.Errorf("op: %w", apperr.ErrNotFound))
		h := New(logger.Discard(), svc)

		rr := httptest.NewRecorder()
		h.Get(rr, withUserID(httptest.NewRequest(http.MethodGet, "/users/8", nil), "8"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("нечисловой идентификатор", func(t *testing.T) {
		svc := new(MockService)
		h := New(logger.Discard(), svc)

		rr := httptest.NewRecorder()
		h.Get(rr, withUserID(httptest.NewRequest(http.MethodGet, "/users/abc", nil), "abc"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Get")
	})
}

func TestHandler_SetStatus(t *testing.T) {
	svc := new(MockService)
	svc.On("SetStatus", mock.Anything, 3, "active").Return(nil)
	h := New(logger.Discard(), svc)

	rr := httptest.NewRecorder()
	h.SetStatus(rr, withUserID(httptest.NewRequest(http.MethodPut, "/users/3/status",
		strings.NewReader(`{"status":"active"}`)), "3"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.SetStatus(rr, withUserID(httptest.NewRequest(http.MethodPut, "/users/3/status",
		strings.NewReader(`{"status":"banned"}`)), "3"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	svc.AssertNumberOfCalls(t, "SetStatus", 1)
}

func TestHandler_SetPaid(t *testing.T) {
	svc := new(MockService)
	svc.On("SetPaid", mock.Anything, 3, true).Return(nil)
	h := New(logger.Discard(), svc)

	rr := httptest.NewRecorder()
	h.SetPaid(rr, withUserID(httptest.NewRequest(http.MethodPut, "/users/3/payment",
		strings.NewReader(`{"paid":true}`)), "3"))

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Delete(t *testing.T) {
	svc := new(MockService)
	svc.On("Delete", mock.Anything, 5).Return(errors.New("tx aborted"))
	h := New(logger.Discard(), svc)

	rr := httptest.NewRecorder()
	h.Delete(rr, withUserID(httptest.NewRequest(http.MethodDelete, "/users/5", nil), "5"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "could not delete user")
	assert.NotContains(t, rr.Body.String(), "tx aborted")
}
