package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/core/ports"
)

type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get handles GET /v1/dashboard.
//
// @Summary      Dashboard for the current selection
// @Description  KPIs, the ten most recent readings, the per-day series and the picker contents.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  query     string  false  "Client id or \"all\""
// @Param        house_id   query     string  false  "House id"
// @Success      200        {object}  dashboardResponse
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	filter := filterFromQuery(c)
	res, err := h.service.Dashboard(c.Request().Context(), user, filter)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toDashboardResponse(res, user, filter))
}
