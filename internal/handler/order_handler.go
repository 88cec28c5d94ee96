package handler

import (
	"errors"

	"go-topup-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orders service.OrderService
}

func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrder records a top-up order and returns it together with the
// WhatsApp hand-off link
// POST /api/v1/orders
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var req service.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	resp, err := h.orders.PlaceOrder(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Game tidak ditemukan."})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Order berhasil! SN: " + resp.Order.SN,
		"data":    resp,
	})
}

// CheckStatus looks an order up by its serial number
// GET /api/v1/orders/:sn
func (h *OrderHandler) CheckStatus(c *fiber.Ctx) error {
	order, err := h.orders.CheckStatus(c.Params("sn"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "SN Order tidak ditemukan."})
	}
	return c.JSON(order)
}
