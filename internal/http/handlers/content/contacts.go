package content

import (
	"net/http"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
)

// Contacts GET /contacts?page&limit. Без limit возвращаются все обращения.
//
// @Summary Обращения
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param page query int false "Страница"
// @Param limit query int false "Размер страницы, 0 без ограничения"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/contacts [get]
func (h *Handler) Contacts(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.Contacts")
	page, ok := request.QueryInt(w, r, log, "page", 1)
	if !ok {
		return
	}
	limit, ok := request.QueryInt(w, r, log, "limit", 0)
	if !ok {
		return
	}
	p, err := h.service.Contacts(r.Context(), page, limit)
	reply(w, r, log, p, err, "could not list contacts")
}

// DeleteContact DELETE /contacts/{id}.
//
// @Summary Удалить обращение
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/contacts/{id} [delete]
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.DeleteContact")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	done(w, r, log, h.service.DeleteContact(r.Context(), id), "contact deleted", "could not delete contact")
}
