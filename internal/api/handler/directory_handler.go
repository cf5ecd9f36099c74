package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myenergy/tracker/internal/api/metrics"
	"github.com/myenergy/tracker/internal/core/ports"
)

// DirectoryHandler serves clients and houses.
type DirectoryHandler struct {
	service ports.DirectoryService
}

func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// ListClients handles GET /v1/clients.
//
// @Summary      List visible clients
// @Description  Admins see every client; regular users only their own.
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   clientResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/clients [get]
func (h *DirectoryHandler) ListClients(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	clients, err := h.service.ListClients(c.Request().Context(), user)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toClientsResponse(clients))
}

// CreateClient handles POST /v1/clients.
//
// @Summary      Create a client owned by the calling admin
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/clients [post]
func (h *DirectoryHandler) CreateClient(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.CreateClient(c.Request().Context(), user, ports.ClientInput{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, toClientResponse(*client))
}

// ListHouses handles GET /v1/clients/:id/houses. An id of "all" returns the
// house picker contents without a client selection.
//
// @Summary      List houses of a client
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client id or \"all\""
// @Success      200  {array}   houseResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id}/houses [get]
func (h *DirectoryHandler) ListHouses(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	houses, err := h.service.ListHouses(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, toHousesResponse(houses))
}

// CreateHouse handles POST /v1/clients/:id/houses.
//
// @Summary      Add a house to a client
// @Tags         houses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Client id"
// @Param        body  body      houseRequest  true  "House details"
// @Success      201   {object}  houseResponse
// @Failure      400   {object}  map[string]string  "no specific client selected"
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/clients/{id}/houses [post]
func (h *DirectoryHandler) CreateHouse(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req houseRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	house, err := h.service.CreateHouse(c.Request().Context(), user, c.Param("id"), ports.HouseInput{
		Label:   req.Label,
		Address: req.Address,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, toHouseResponse(*house))
}

// DeleteHouse handles DELETE /v1/houses/:id.
//
// @Summary      Delete a house and all of its readings
// @Tags         houses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "House id"
// @Success      200  {object}  deleteHouseResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/houses/{id} [delete]
func (h *DirectoryHandler) DeleteHouse(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	removed, err := h.service.DeleteHouse(c.Request().Context(), user, id)
	if err != nil {
		return httpError(err)
	}

	metrics.DeletionsTotal.WithLabelValues("house").Inc()
	return c.JSON(http.StatusOK, deleteHouseResponse{ID: id, ConsumptionsRemoved: removed})
}
