package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sango-bank/sango_bank/internal/bank"
)

// RegisterStockRoutes wires catalog endpoints.
func RegisterStockRoutes(r fiber.Router, h *bank.Handler) {
	r.Get("/stocks", h.ListStocks)
	r.Put("/stocks/:symbol/price", h.UpdateStockPrice)
	r.Put("/stocks/:symbol/shares", h.AdjustStockShares)
}
