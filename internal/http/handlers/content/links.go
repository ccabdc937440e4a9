package content

import (
	"net/http"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// LinkDisplayRequest показ ссылки на сайте.
type LinkDisplayRequest struct {
	LkID    int  `json:"lkId" validate:"required,min=1"`
	Display bool `json:"display"`
}

// Links GET /links.
//
// @Summary Ссылки
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/links [get]
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.Links")
	list, err := h.service.Links(r.Context())
	reply(w, r, log, list, err, "could not list links")
}

// Link GET /links/{id}.
//
// @Summary Ссылка по ID
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/links/{id} [get]
func (h *Handler) Link(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.Link")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	l, err := h.service.Link(r.Context(), id)
	reply(w, r, log, l, err, "could not get link")
}

// CreateLink POST /links.
//
// @Summary Создать ссылку
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.Link true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/links [post]
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CreateLink")
	var l models.Link
	if !request.DecodeJSON(w, r, log, h.validate, &l) {
		return
	}
	id, err := h.service.CreateLink(r.Context(), l)
	if err != nil {
		reply(w, r, log, nil, err, "could not create link")
		return
	}
	created(w, r, "link created", id)
}

// UpdateLink PUT /links/{id}.
//
// @Summary Изменить ссылку
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param request body models.Link true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/links/{id} [put]
func (h *Handler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.UpdateLink")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	var l models.Link
	if !request.DecodeJSON(w, r, log, h.validate, &l) {
		return
	}
	done(w, r, log, h.service.UpdateLink(r.Context(), id, l), "link updated", "could not update link")
}

// DeleteLink DELETE /links/{id}.
//
// @Summary Удалить ссылку
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/links/{id} [delete]
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.DeleteLink")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	done(w, r, log, h.service.DeleteLink(r.Context(), id), "link deleted", "could not delete link")
}

// SetLinkDisplay PUT /links/display.
//
// @Summary Показ: ссылки
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body LinkDisplayRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/links/display [put]
func (h *Handler) SetLinkDisplay(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.SetLinkDisplay")
	var req LinkDisplayRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	done(w, r, log, h.service.SetLinkDisplay(r.Context(), req.LkID, req.Display),
		"display updated", "could not update display")
}
