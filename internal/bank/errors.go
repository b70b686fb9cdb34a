package bank

import "errors"

var (
	// ErrAccountNotFound indicates a lookup by account number failed.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountExists indicates an account with that number already exists.
	ErrAccountExists = errors.New("account number already in use")

	// ErrStockNotFound indicates a lookup by ticker symbol failed.
	ErrStockNotFound = errors.New("stock not found")

	// ErrInvalidAccountType indicates an account type other than SAVINGS or CHECKING.
	ErrInvalidAccountType = errors.New("invalid account type: must be SAVINGS or CHECKING")

	// ErrInvalidAmount indicates an amount or share count that must be positive was not.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a withdrawal or purchase exceeding the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares indicates a sale exceeding owned shares, or a
	// purchase exceeding catalog availability.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrInvalidCredentials indicates a PIN mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
