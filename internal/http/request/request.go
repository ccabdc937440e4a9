// Package request разбирает входные данные HTTP-запросов: JSON-тело,
// параметры пути и строки запроса. При ошибке функции сами пишут ответ 400.
package request

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/lib/sl"
)

// DecodeJSON разбирает тело запроса в dst и проверяет его валидатором.
func DecodeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, dst any) bool {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		msg := "failed to decode request"
		if errors.Is(err, io.EOF) {
			msg = "request body is empty"
		}
		log.Info(msg, sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(msg))
		return false
	}
	return Validate(w, r, log, validate, dst)
}

// Validate проверяет уже заполненную структуру.
func Validate(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, dst any) bool {
	err := validate.Struct(dst)
	if err == nil {
		return true
	}
	log.Info("validation failed", sl.Err(err))
	render.Status(r, http.StatusBadRequest)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		render.JSON(w, r, response.ValidationError(verrs))
	} else {
		render.JSON(w, r, response.Error("invalid request"))
	}
	return false
}

// IntParam читает положительный целый параметр пути name.
func IntParam(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || v <= 0 {
		log.Info("invalid path parameter", slog.String("param", name), slog.String("value", chi.URLParam(r, name)))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid "+name))
		return 0, false
	}
	return v, true
}

// QueryInt читает целый параметр строки запроса, def если он не задан.
func QueryInt(w http.ResponseWriter, r *http.Request, log *slog.Logger, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Info("invalid query parameter", slog.String("param", name), slog.String("value", raw))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid "+name))
		return 0, false
	}
	return v, true
}

// FormBool разбирает флаг формы: true, 1, on и yes считаются истиной.
func FormBool(v string) bool {
	switch v {
	case "true", "1", "on", "yes", "TRUE", "True":
		return true
	default:
		return false
	}
}
