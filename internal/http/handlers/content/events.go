package content

import (
	"net/http"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// EventDisplayRequest показ мероприятия на сайте.
type EventDisplayRequest struct {
	EvID    int  `json:"evId" validate:"required,min=1"`
	Display bool `json:"display"`
}

// Events GET /events.
//
// @Summary Мероприятия
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/events [get]
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.Events")
	list, err := h.service.Events(r.Context())
	reply(w, r, log, list, err, "could not list events")
}

// Event GET /events/{id}.
//
// @Summary Мероприятие по ID
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/events/{id} [get]
func (h *Handler) Event(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.Event")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	e, err := h.service.Event(r.Context(), id)
	reply(w, r, log, e, err, "could not get event")
}

// CreateEvent POST /events.
//
// @Summary Создать мероприятие
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.Event true "Тело запроса"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CreateEvent")
	var e models.Event
	if !request.DecodeJSON(w, r, log, h.validate, &e) {
		return
	}
	id, err := h.service.CreateEvent(r.Context(), e)
	if err != nil {
		reply(w, r, log, nil, err, "could not create event")
		return
	}
	created(w, r, "event created", id)
}

// UpdateEvent PUT /events/{id}.
//
// @Summary Изменить мероприятие
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param request body models.Event true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/events/{id} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.UpdateEvent")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	var e models.Event
	if !request.DecodeJSON(w, r, log, h.validate, &e) {
		return
	}
	done(w, r, log, h.service.UpdateEvent(r.Context(), id, e), "event updated", "could not update event")
}

// DeleteEvent DELETE /events/{id}.
//
// @Summary Удалить мероприятие
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/events/{id} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.DeleteEvent")
	id, ok := request.IntParam(w, r, log, "id")
	if !ok {
		return
	}
	done(w, r, log, h.service.DeleteEvent(r.Context(), id), "event deleted", "could not delete event")
}

// SetEventDisplay PUT /events/display.
//
// @Summary Показ: мероприятия
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EventDisplayRequest true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/events/display [put]
func (h *Handler) SetEventDisplay(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.SetEventDisplay")
	var req EventDisplayRequest
	if !request.DecodeJSON(w, r, log, h.validate, &req) {
		return
	}
	done(w, r, log, h.service.SetEventDisplay(r.Context(), req.EvID, req.Display),
		"display updated", "could not update display")
}
