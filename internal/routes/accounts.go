package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sango-bank/sango_bank/internal/bank"
)

// RegisterAccountRoutes wires account-related endpoints.
func RegisterAccountRoutes(r fiber.Router, h *bank.Handler) {
	r.Post("/accounts", h.CreateAccount)
	r.Get("/accounts/:number/balance", h.Balance)
	r.Post("/accounts/:number/pin/validate", h.ValidatePIN)
	r.Get("/accounts/:number/transactions", h.Transactions)
	r.Get("/accounts/:number/holdings", h.Holdings)
	r.Post("/accounts/:number/deposits", h.Deposit)
	r.Post("/accounts/:number/withdrawals", h.Withdraw)
	r.Post("/accounts/:number/interest", h.AccrueInterest)
	r.Post("/accounts/:number/purchases", h.BuyStock)
	r.Post("/accounts/:number/sales", h.SellStock)
}
