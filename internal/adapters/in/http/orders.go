package http

import (
	"net/http"

	"backoffice/internal/core/application/usecases/commands"
	"backoffice/internal/core/application/usecases/queries"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

// PlaceOrder handles POST /api/v1/orders. The response carries the ids of the
// order and of its PENDING payment.
func (s *Server) PlaceOrder(c echo.Context) error {
	const op = "place_order"

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, orderID, paymentID, err := placeOrderCommand(req)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}

	return c.JSON(http.StatusCreated, PlacedOrder{OrderID: orderID.Bytes(), PaymentID: paymentID.Bytes()})
}

func placeOrderCommand(req PlaceOrderRequest) (commands.PlaceOrderCommand, kernel.UUID, kernel.UUID, error) {
	var cmd commands.PlaceOrderCommand

	memberID, err := kernel.UUIDFromGoogle(req.MemberID)
	if err != nil {
		return cmd, kernel.UUID{}, kernel.UUID{}, err
	}
	method, err := payment.ParseMethod(req.PaymentMethod)
	if err != nil {
		return cmd, kernel.UUID{}, kernel.UUID{}, err
	}
	discount, err := money(req.Discount, req.Currency, true)
	if err != nil {
		return cmd, kernel.UUID{}, kernel.UUID{}, err
	}

	lines := make([]commands.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		bookID, err := kernel.UUIDFromGoogle(item.BookID)
		if err != nil {
			return cmd, kernel.UUID{}, kernel.UUID{}, err
		}
		price, err := money(item.UnitPrice, req.Currency, false)
		if err != nil {
			return cmd, kernel.UUID{}, kernel.UUID{}, err
		}
		lines = append(lines, commands.OrderLine{BookID: bookID, Quantity: item.Quantity, UnitPrice: price})
	}

	orderID, paymentID := kernel.NewUUID(), kernel.NewUUID()
	cmd, err = commands.NewPlaceOrderCommand(orderID, paymentID, memberID, lines, discount, method)
	return cmd, orderID, paymentID, err
}

// GetOrderSummary handles GET /api/v1/orders/:id/summary.
func (s *Server) GetOrderSummary(c echo.Context) error {
	const op = "get_order_summary"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	query, err := queries.NewGetOrderSummaryQuery(id)
	if err != nil {
		return s.fail(c, op, err)
	}

	summary, err := s.handlers.GetOrderSummary.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, op, err)
	}
	return c.JSON(http.StatusOK, toOrderSummary(summary))
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm and answers with the id
// of the delivery it opens.
func (s *Server) ConfirmOrder(c echo.Context) error {
	const op = "confirm_order"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req ConfirmOrderRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	address, err := kernel.NewAddress(req.Address.ZipCode, req.Address.Street, req.Address.Detail)
	if err != nil {
		return s.fail(c, op, err)
	}
	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewConfirmOrderCommand(id, deliveryID, req.RecipientName, address)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.ConfirmOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}

	return c.JSON(http.StatusCreated, Created{ID: deliveryID.Bytes()})
}

func (s *Server) ShipOrder(c echo.Context) error {
	const op = "ship_order"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req ShipOrderRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewShipOrderCommand(id, req.TrackingNumber, req.CourierCompany)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.ShipOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CompleteDelivery(c echo.Context) error {
	const op = "complete_delivery"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	cmd, err := commands.NewCompleteDeliveryCommand(id)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CancelOrder(c echo.Context) error {
	const op = "cancel_order"

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, op, err)
	}
	var req CancelOrderRequest
	if err = c.Bind(&req); err != nil {
		return s.badRequest(c, op, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id, req.Reason)
	if err != nil {
		return s.fail(c, op, err)
	}
	if err = s.handlers.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, op, err)
	}
	return c.NoContent(http.StatusNoContent)
}
