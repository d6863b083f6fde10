package orders

import (
	"encoding/json"
	"errors"
	"strconv"

	"secondmarket-backend/internal/application/checkout"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *checkout.Service
}

// POST /api/checkout — places the order and empties the cart
func (h *Handlers) Checkout(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body struct {
		Items           []checkout.Item `json:"items"`
		ShippingAddress json.RawMessage `json:"shipping_address"`
		PaymentInfo     json.RawMessage `json:"payment_info"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.ShippingAddress == nil {
		body.ShippingAddress = json.RawMessage("{}")
	}
	if body.PaymentInfo == nil {
		body.PaymentInfo = json.RawMessage("{}")
	}

	receipt, err := h.Service.Checkout(c.Context(), user.ID, body.Items, body.ShippingAddress, body.PaymentInfo)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyOrder) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, checkout.ErrCheckoutFailed.Error(), fiber.StatusInternalServerError, nil)
	}
	return response.SuccessCreated(c, receipt.Message, receipt, nil)
}

// GET /api/orders
func (h *Handlers) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	orders, err := h.Service.ListOrders(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Orders fetched successfully", orders, nil)
}

// GET /api/orders/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := orderID(c)
	if err != nil {
		return response.Error(c, "Invalid order id", fiber.StatusBadRequest, nil)
	}
	detail, err := h.Service.GetOrder(c.Context(), user.ID, id)
	if err != nil {
		if errors.Is(err, checkout.ErrOrderNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Order fetched successfully", detail, nil)
}

// PUT /api/orders/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := orderID(c)
	if err != nil {
		return response.Error(c, "Invalid order id", fiber.StatusBadRequest, nil)
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.UpdateStatus(c.Context(), user.ID, id, body.Status); err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidStatus), errors.Is(err, checkout.ErrInvalidTransition):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, checkout.ErrOrderNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Order status updated", fiber.Map{"id": id, "status": body.Status}, nil)
}

func orderID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
