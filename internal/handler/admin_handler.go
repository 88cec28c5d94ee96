package handler

import (
	"errors"

	"go-topup-store/internal/model"
	"go-topup-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the operator dashboard: the searchable order table,
// manual status transitions and the overview counters.
type AdminHandler struct {
	orders service.OrderService
}

func NewAdminHandler(orders service.OrderService) *AdminHandler {
	return &AdminHandler{orders: orders}
}

// ListOrders returns orders, optionally filtered by an SN fragment
// GET /api/v1/admin/orders?sn=TOPUP-00
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(c.Query("sn"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(orders)
}

// UpdateStatusRequest is the status transition body
type UpdateStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// UpdateStatus sets an order's status; any status may follow any other
// PUT /api/v1/admin/orders/:sn/status
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updaterID := c.Locals("user_id")
	if updaterID == nil {
		updaterID = "system"
	}

	updated, err := h.orders.UpdateStatus(c.Params("sn"), req.Status, updaterID.(string))
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid status"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update status"})
	}

	if !updated {
		// Unknown SN is a no-op, not a failure.
		return c.JSON(fiber.Map{"message": "SN Order tidak ditemukan, tidak ada perubahan.", "updated": false})
	}
	return c.JSON(fiber.Map{"message": "Status updated!", "updated": true})
}

// GetDashboardStats returns total/pending/completed order counters
// GET /api/v1/admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.orders.GetStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}
