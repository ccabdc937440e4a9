package content

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/http/response"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// Pages GET /pages.
//
// @Summary Страницы сайта
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/pages [get]
func (h *Handler) Pages(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.Pages")
	list, err := h.service.Pages(r.Context())
	reply(w, r, log, list, err, "could not list pages")
}

// PageContent GET /pagecontent/{id}, где id идентификатор страницы.
//
// @Summary Блоки страницы
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID страницы"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/pagecontent/{id} [get]
func (h *Handler) PageContent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.PageContent")
	pageID, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	list, err := h.service.PageContent(r.Context(), pageID)
	reply(w, r, log, list, err, "could not get page content")
}

// CreatePageContent POST /pagecontent.
//
// @Summary Создать блок страницы
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PageContent true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/pagecontent [post]
func (h *Handler) CreatePageContent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CreatePageContent")
	var pc models.PageContent
	if !request.DecodeJSON(w, r, log, h.validate, &pc) {
		return
	}
	id, err := h.service.CreatePageContent(r.Context(), pc)
	if err != nil {
		reply(w, r, log, nil, err, "could not create page content")
		return
	}
	created(w, r, "page content created", id)
}

// UpdatePageContent PUT /pagecontent, идентификатор блока передаётся в теле.
//
// @Summary Изменить блок страницы
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.PageContent true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/pagecontent [put]
func (h *Handler) UpdatePageContent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.UpdatePageContent")
	var pc models.PageContent
	if !request.DecodeJSON(w, r, log, h.validate, &pc) {
		return
	}
	if pc.ID <= 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("field id is a required field"))
		return
	}
	done(w, r, log, h.service.UpdatePageContent(r.Context(), pc), "page content updated", "could not update page content")
}

// DeletePageContent DELETE /pagecontent/{id}, где id идентификатор блока.
//
// @Summary Удалить блок страницы
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID блока"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/pagecontent/{id} [delete]
func (h *Handler) DeletePageContent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.DeletePageContent")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	done(w, r, log, h.service.DeletePageContent(r.Context(), id), "page content deleted", "could not delete page content")
}
