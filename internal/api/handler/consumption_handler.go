package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/api/metrics"
	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

type ConsumptionHandler struct {
	service ports.ConsumptionService
}

func NewConsumptionHandler(service ports.ConsumptionService) *ConsumptionHandler {
	return &ConsumptionHandler{service: service}
}

// filterFromQuery reads the client_id and house_id selection.
func filterFromQuery(c echo.Context) aggregator.Filter {
	return aggregator.Filter{
		ClientID: c.QueryParam("client_id"),
		HouseID:  c.QueryParam("house_id"),
	}
}

// List handles GET /v1/consumptions.
//
// @Summary      List readings inside the current selection
// @Tags         consumptions
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Client id or \"all\""
// @Param        house_id   query     string  false  "House id"
// @Success      200        {object}  listConsumptionsResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/consumptions [get]
func (h *ConsumptionHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	records, err := h.service.List(c.Request().Context(), user, filterFromQuery(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, listConsumptionsResponse{
		Data:  toConsumptionsResponse(records, domain.CapabilitiesFor(user.Role)),
		Total: len(records),
	})
}

// Create handles POST /v1/houses/:id/consumptions.
//
// @Summary      Record a reading for a house
// @Tags         consumptions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "House id"
// @Param        body  body      consumptionRequest  true  "Reading"
// @Success      201   {object}  consumptionResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/houses/{id}/consumptions [post]
func (h *ConsumptionHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req consumptionRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	record, err := h.service.Add(c.Request().Context(), user, c.Param("id"), toConsumptionInput(req))
	if err != nil {
		return httpError(err)
	}

	metrics.ConsumptionsRecordedTotal.Inc()
	metrics.KWhRecordedTotal.Add(float64(record.KWh))
	return c.JSON(http.StatusCreated, toConsumptionResponse(*record, domain.CapabilitiesFor(user.Role)))
}

// Delete handles DELETE /v1/consumptions/:id.
//
// @Summary      Delete a reading
// @Tags         consumptions
// @Security     BearerAuth
// @Param        id   path  string  true  "Consumption id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/consumptions/{id} [delete]
func (h *ConsumptionHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return httpError(err)
	}

	metrics.DeletionsTotal.WithLabelValues("consumption").Inc()
	return c.NoContent(http.StatusNoContent)
}
