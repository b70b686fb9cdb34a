package bank

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType tags the kind of balance-affecting event.
type TransactionType string

const (
	TransactionTypeInitialDeposit TransactionType = "INITIAL_DEPOSIT"
	TransactionTypeDeposit        TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal     TransactionType = "WITHDRAWAL"
	TransactionTypeInterest       TransactionType = "INTEREST"
	TransactionTypeStockPurchase  TransactionType = "STOCK_PURCHASE"
	TransactionTypeStockSale      TransactionType = "STOCK_SALE"
)

// Transaction is an immutable record of one balance-affecting event. Amount
// carries the monetary magnitude of the event, not a signed delta;
// BalanceAfter is the account balance at the instant the entry was appended.
type Transaction struct {
	ID           string          `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

func newTransaction(kind TransactionType, amount, balanceAfter decimal.Decimal) Transaction {
	return Transaction{
		ID:           uuid.NewString(),
		Type:         kind,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Timestamp:    time.Now().UTC(),
	}
}
