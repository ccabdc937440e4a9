package content

import (
	"net/http"

	"github.com/magabrotheeeer/publication-admin/internal/http/request"
	"github.com/magabrotheeeer/publication-admin/internal/models"
)

// CostOptions GET /cost-management/options.
//
// @Summary Варианты регистрации
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/cost-management/options [get]
func (h *Handler) CostOptions(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CostOptions")
	list, err := h.service.CostOptions(r.Context())
	reply(w, r, log, list, err, "could not list cost options")
}

// CostPrices GET /cost-management/options/{optionId}/prices.
//
// @Summary Цены варианта
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param optionId path int true "ID варианта"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/cost-management/options/{optionId}/prices [get]
func (h *Handler) CostPrices(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CostPrices")
	optionID, ok := request.IntParam(w, r, log, "optionId")
	if !ok {
		return
	}
	list, err := h.service.CostPrices(r.Context(), optionID)
	reply(w, r, log, list, err, "could not list cost prices")
}

// CostPrice GET /cost-management/prices/{priceId}.
//
// @Summary Цена по ID
// @Tags Content
// @Security BearerAuth
// @Produce json
// @Param priceId path int true "ID цены"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/cost-management/prices/{priceId} [get]
func (h *Handler) CostPrice(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.CostPrice")
	id, ok := request.IntParam(w, r, log, "priceId")
	if !ok {
		return
	}
	p, err := h.service.CostPrice(r.Context(), id)
	reply(w, r, log, p, err, "could not get cost price")
}

// UpdateCostPrice PUT /cost-management/prices/{priceId}.
//
// @Summary Изменить цену
// @Tags Content
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param priceId path int true "ID цены"
// @Param request body models.CostPrice true "Тело запроса"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response "Некорректный запрос"
// @Failure 401 {object} response.Response "Нет или неверный токен"
// @Failure 404 {object} response.Response "Не найдено"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /api/admin/cost-management/prices/{priceId} [put]
func (h *Handler) UpdateCostPrice(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handlers.content.UpdateCostPrice")
	id, ok := request.IntParam(w, r, log, "priceId")
	if !ok {
		return
	}
	var p models.CostPrice
	if !request.DecodeJSON(w, r, log, h.validate, &p) {
		return
	}
	done(w, r, log, h.service.UpdateCostPrice(r.Context(), id, p), "price updated", "could not update price")
}
