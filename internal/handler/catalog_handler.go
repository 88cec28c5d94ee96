package handler

import (
	"strconv"

	"go-topup-store/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetGames returns the full catalog
// GET /api/v1/games
// An empty catalog is a valid response (upstream down or nothing listed);
// the storefront renders it as "no games available right now".
func (h *CatalogHandler) GetGames(c *fiber.Ctx) error {
	games := h.catalog.GetGames(c.UserContext())

	resp := fiber.Map{"data": games}
	if len(games) == 0 {
		resp["message"] = "Tidak ada game tersedia saat ini. Silakan coba lagi nanti."
	}
	return c.JSON(resp)
}

// GetGame returns a single game with its denominations
// GET /api/v1/games/:id
func (h *CatalogHandler) GetGame(c *fiber.Ctx) error {
	game, err := h.catalog.GetGame(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Game tidak ditemukan."})
	}
	return c.JSON(game)
}

// QuoteAmount prices a requested quantity for a game (the storefront
// "kalkulator")
// GET /api/v1/games/:id/quote?amount=100
func (h *CatalogHandler) QuoteAmount(c *fiber.Ctx) error {
	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil || amount <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid amount"})
	}

	quote, err := h.catalog.QuoteAmount(c.UserContext(), c.Params("id"), amount)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Game tidak ditemukan."})
	}
	return c.JSON(quote)
}
