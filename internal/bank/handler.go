package bank

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handler exposes the bank over HTTP. It only decodes input, delegates to
// the Bank and encodes the outcome; every business rule lives below it.
type Handler struct {
	bank *Bank
}

// NewHandler builds the bank HTTP handler.
func NewHandler(bank *Bank) *Handler {
	return &Handler{bank: bank}
}

// statusFromError maps the domain error taxonomy onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrStockNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAccountExists), errors.Is(err, ErrInsufficientFunds), errors.Is(err, ErrInsufficientShares):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidAccountType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(err error) error {
	return fiber.NewError(statusFromError(err), err.Error())
}

type createAccountRequest struct {
	Number         string          `json:"number"`
	Holder         string          `json:"holder"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Type           string          `json:"type"`
	PIN            string          `json:"pin"`
}

type receiptResponse struct {
	AccountNumber string          `json:"account_number"`
	Transaction   Transaction     `json:"transaction"`
	Balance       decimal.Decimal `json:"balance"`
	Warning       string          `json:"warning,omitempty"`
}

func toReceiptResponse(r Receipt) receiptResponse {
	return receiptResponse{
		AccountNumber: r.AccountNumber,
		Transaction:   r.Transaction,
		Balance:       r.Balance,
		Warning:       r.Warning,
	}
}

// CreateAccount opens a new account.
func (h *Handler) CreateAccount(c *fiber.Ctx) error {
	var req createAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.Number == "" || req.Holder == "" {
		return fiber.NewError(http.StatusBadRequest, "number and holder are required")
	}
	kind, err := ParseAccountType(req.Type)
	if err != nil {
		return fail(err)
	}
	receipt, err := h.bank.CreateAccount(c.UserContext(), req.Number, req.Holder, req.InitialBalance, kind, req.PIN)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// Balance reports holder name and current balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	inquiry, err := h.bank.CheckBalance(c.Params("number"))
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_number": inquiry.AccountNumber,
		"holder":         inquiry.Holder,
		"balance":        inquiry.Balance,
	})
}

type validatePINRequest struct {
	PIN string `json:"pin"`
}

// ValidatePIN checks the account PIN and reports the outcome.
func (h *Handler) ValidatePIN(c *fiber.Ctx) error {
	var req validatePINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if err := h.bank.ValidatePIN(c.Params("number"), req.PIN); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"valid": false})
		}
		return fail(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"valid": true})
}

// Transactions returns the account's history, oldest first.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	history, err := h.bank.History(c.Params("number"))
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_number": c.Params("number"),
		"transactions":   history,
	})
}

// Holdings returns the account's stock positions.
func (h *Handler) Holdings(c *fiber.Ctx) error {
	holdings, err := h.bank.Holdings(c.Params("number"))
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_number": c.Params("number"),
		"holdings":       holdings,
	})
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Deposit credits the account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.bank.Deposit(c.UserContext(), c.Params("number"), req.Amount)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// Withdraw debits the account.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.bank.Withdraw(c.UserContext(), c.Params("number"), req.Amount)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// AccrueInterest applies one month of interest.
func (h *Handler) AccrueInterest(c *fiber.Ctx) error {
	receipt, err := h.bank.AccrueInterest(c.UserContext(), c.Params("number"))
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

type tradeRequest struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// BuyStock purchases shares for the account.
func (h *Handler) BuyStock(c *fiber.Ctx) error {
	var req tradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.bank.BuyStock(c.UserContext(), c.Params("number"), req.Symbol, req.Shares)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// SellStock sells shares the account holds.
func (h *Handler) SellStock(c *fiber.Ctx) error {
	var req tradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.bank.SellStock(c.UserContext(), c.Params("number"), req.Symbol, req.Shares)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusCreated).JSON(toReceiptResponse(receipt))
}

// ListStocks returns the catalog.
func (h *Handler) ListStocks(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(fiber.Map{"stocks": h.bank.ListStocks()})
}

type updatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type stockReceiptResponse struct {
	Stock   Stock  `json:"stock"`
	Warning string `json:"warning,omitempty"`
}

// UpdateStockPrice sets a stock's current price.
func (h *Handler) UpdateStockPrice(c *fiber.Ctx) error {
	var req updatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.bank.UpdateStockPrice(c.UserContext(), c.Params("symbol"), req.Price)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusOK).JSON(stockReceiptResponse{Stock: receipt.Stock, Warning: receipt.Warning})
}

type adjustSharesRequest struct {
	Delta int64 `json:"delta"`
}

// AdjustStockShares changes a stock's available pool.
func (h *Handler) AdjustStockShares(c *fiber.Ctx) error {
	var req adjustSharesRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	receipt, err := h.bank.AdjustStockShares(c.UserContext(), c.Params("symbol"), req.Delta)
	if err != nil {
		return fail(err)
	}
	return c.Status(http.StatusOK).JSON(stockReceiptResponse{Stock: receipt.Stock, Warning: receipt.Warning})
}
