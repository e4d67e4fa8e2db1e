package http

import (
	"net/http"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/domain/model/delivery"

	"github.com/labstack/echo/v4"
)

// ChangeDeliveryAddress handles PUT /api/v1/deliveries/:id/address. Only a
// PREPARING delivery accepts a new address.
func (s *Server) ChangeDeliveryAddress(c echo.Context) error {
	const op = "change_delivery_address"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req Address
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewChangeDeliveryAddressCommand(id, req.ZipCode, req.Street, req.Detail)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.ChangeDeliveryAddress.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	const op = "update_delivery_status"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req DeliveryStatusRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	status, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, op, err)
	}
	cmd, err := commands.NewUpdateDeliveryStatusCommand(id, status)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.UpdateDeliveryStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}
