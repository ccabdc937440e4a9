package request

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/publication-admin/internal/lib/logger"
)

type payload struct {
	Name string `json:"name" validate:"required"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantOK   bool
		wantCode int
		wantMsg  string
	}{
		{name: "валидное тело", body: `{"name":"x"}`, wantOK: true, wantCode: http.StatusOK},
		{name: "пустое тело", body: ``, wantCode: http.StatusBadRequest, wantMsg: "request body is empty"},
		{name: "битый JSON", body: `{"name":`, wantCode: http.StatusBadRequest, wantMsg: "failed to decode request"},
		{name: "не прошло валидацию", body: `{}`, wantCode: http.StatusBadRequest, wantMsg: "field Name is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			var dst payload
			ok := DecodeJSON(w, r, logger.Discard(), validator.New(), &dst)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantMsg != "" {
				assert.Contains(t, w.Body.String(), tt.wantMsg)
			}
		})
	}
}

func TestIntParam(t *testing.T) {
	for _, tc := range []struct {
		value  string
		want   int
		wantOK bool
	}{
		{"15", 15, true},
		{"abc", 0, false},
		{"0", 0, false},
		{"-3", 0, false},
	} {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tc.value)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
		w := httptest.NewRecorder()

		got, ok := IntParam(w, r, logger.Discard(), "id")
		assert.Equal(t, tc.wantOK, ok, tc.value)
		assert.Equal(t, tc.want, got, tc.value)
		if !ok {
			assert.Equal(t, http.StatusBadRequest, w.Code)
		}
	}
}

func TestQueryInt(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles?page=3", nil)

	page, ok := QueryInt(w, r, logger.Discard(), "page", 1)
	assert.True(t, ok)
	assert.Equal(t, 3, page)

	limit, ok := QueryInt(w, r, logger.Discard(), "limit", 100)
	assert.True(t, ok)
	assert.Equal(t, 100, limit)

	r = httptest.NewRequest(http.MethodGet, "/articles?page=x", nil)
	_, ok = QueryInt(w, r, logger.Discard(), "page", 1)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFormBool(t *testing.T) {
	assert.True(t, FormBool("true"))
	assert.True(t, FormBool("1"))
	assert.False(t, FormBool(""))
	assert.False(t, FormBool("false"))
}
