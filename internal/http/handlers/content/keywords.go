package content

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// SearchKeywords GET /search-keywords.
//
// @Summary Подсказки поиска
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/search-keywords [get]
func (h *Handler) SearchKeywords(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.SearchKeywords")
	list, err := h.service.SearchKeywords(r.Context())
	reply(w, r, log, list, err, "could not list search keywords")
}

// CreateSearchKeyword POST /search-keywords.
//
// @Summary Создать подсказку
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SearchKeyword true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/search-keywords [post]
func (h *Handler) CreateSearchKeyword(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CreateSearchKeyword")
	var k models.SearchKeyword
	if !request.DecodeJSON(w, r, log, h.validate, &k) {
		return
	}
	id, err := h.service.CreateSearchKeyword(r.Context(), k)
	if err != nil {
		reply(w, r, log, nil, err, "could not create search keyword")
		return
	}
	created(w, r, "search keyword created", id)
}

// UpdateSearchKeyword PUT /search-keywords/{id}.
//
// @Summary Изменить подсказку
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param request body models.SearchKeyword true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/search-keywords/{id} [put]
func (h *Handler) UpdateSearchKeyword(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.UpdateSearchKeyword")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	var k models.SearchKeyword
	if !request.DecodeJSON(w, r, log, h.validate, &k) {
		return
	}
	done(w, r, log, h.service.UpdateSearchKeyword(r.Context(), id, k),
		"search keyword updated", "could not update search keyword")
}

// ToggleSearchKeyword PUT /search-keywords/{id}/toggle.
//
// @Summary Переключить показ подсказки
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/search-keywords/{id}/toggle [put]
func (h *Handler) ToggleSearchKeyword(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.ToggleSearchKeyword")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	display, err := h.service.ToggleSearchKeyword(r.Context(), id)
	if err != nil {
		response.Fail(w, r, log, err, "could not toggle search keyword")
		return
	}
	render.JSON(w, r, response.OK(map[string]any{"id": id, "display": display}))
}

// DeleteSearchKeyword DELETE /search-keywords/{id}.
//
// @Summary Удалить подсказку
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/search-keywords/{id} [delete]
func (h *Handler) DeleteSearchKeyword(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.DeleteSearchKeyword")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	done(w, r, log, h.service.DeleteSearchKeyword(r.Context(), id),
		"search keyword deleted", "could not delete search keyword")
}
