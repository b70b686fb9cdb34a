package bank

import (
	"github.com/shopspring/decimal"
)

// AccountType distinguishes the two supported account kinds.
type AccountType string

const (
	AccountTypeSavings  AccountType = "SAVINGS"
	AccountTypeChecking AccountType = "CHECKING"
)

// ParseAccountType validates and normalizes an account type string.
func ParseAccountType(s string) (AccountType, error) {
	switch AccountType(s) {
	case AccountTypeSavings:
		return AccountTypeSavings, nil
	case AccountTypeChecking:
		return AccountTypeChecking, nil
	default:
		return "", ErrInvalidAccountType
	}
}

var (
	savingsRate   = decimal.RequireFromString("0.045")
	checkingRate  = decimal.RequireFromString("0.01")
	monthsPerYear = decimal.NewFromInt(12)
)

// Account is a single holder's balance, credentials, transaction history and
// stock holdings. It is not safe for concurrent use on its own: the Bank
// serializes every operation under its own lock.
type Account struct {
	Number       string
	Holder       string
	Balance      decimal.Decimal
	Type         AccountType
	InterestRate decimal.Decimal

	pin          string
	transactions []Transaction
	holdings     map[string]int64
}

// NewAccount constructs an account with its opening balance. The annual
// interest rate is fixed here from the account type and never recalculated.
// The opening balance is recorded as an INITIAL_DEPOSIT entry whatever its
// sign; nothing rejects a zero or negative opening balance.
func NewAccount(number, holder string, opening decimal.Decimal, kind AccountType, pin string) *Account {
	rate := checkingRate
	if kind == AccountTypeSavings {
		rate = savingsRate
	}
	a := &Account{
		Number:       number,
		Holder:       holder,
		Balance:      opening,
		Type:         kind,
		InterestRate: rate,
		pin:          pin,
		holdings:     make(map[string]int64),
	}
	a.append(TransactionTypeInitialDeposit, opening)
	return a
}

func (a *Account) append(kind TransactionType, amount decimal.Decimal) Transaction {
	tx := newTransaction(kind, amount, a.Balance)
	a.transactions = append(a.transactions, tx)
	return tx
}

// ValidatePIN compares the input against the stored PIN verbatim. There is
// no hashing, rate limiting or lockout; the PIN is a plain shared secret.
func (a *Account) ValidatePIN(input string) bool {
	return a.pin == input
}

// Deposit credits the account. The amount must be positive.
func (a *Account) Deposit(amount decimal.Decimal) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return a.append(TransactionTypeDeposit, amount), nil
}

// Withdraw debits the account. The amount must be positive and must not
// exceed the balance; the balance is never allowed to go negative.
func (a *Account) Withdraw(amount decimal.Decimal) (Transaction, error) {
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}
	if amount.GreaterThan(a.Balance) {
		return Transaction{}, ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return a.append(TransactionTypeWithdrawal, amount), nil
}

// AccrueInterest adds one month of interest, balance * (annualRate / 12),
// unconditionally. A negative balance accrues negative interest; the
// computation is the same either way.
func (a *Account) AccrueInterest() Transaction {
	interest := a.Balance.Mul(a.InterestRate.Div(monthsPerYear))
	a.Balance = a.Balance.Add(interest)
	return a.append(TransactionTypeInterest, interest)
}

// BuyStock debits the account by price*shares and credits the holding for
// the symbol. The catalog's available pool is not decremented; availability
// only bounds a single purchase, it does not track outstanding positions.
func (a *Account) BuyStock(stock Stock, shares int64) (Transaction, error) {
	if shares <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	cost := stock.Price.Mul(decimal.NewFromInt(shares))
	if cost.GreaterThan(a.Balance) {
		return Transaction{}, ErrInsufficientFunds
	}
	if shares > stock.SharesAvailable {
		return Transaction{}, ErrInsufficientShares
	}
	a.Balance = a.Balance.Sub(cost)
	a.holdings[stock.Symbol] += shares
	return a.append(TransactionTypeStockPurchase, cost), nil
}

// SellStock credits the account by price*shares and debits the holding.
// A holding sold down to zero stays in the map with a zero count. Shares are
// not returned to the catalog pool.
func (a *Account) SellStock(stock Stock, shares int64) (Transaction, error) {
	if shares <= 0 {
		return Transaction{}, ErrInvalidAmount
	}
	owned := a.holdings[stock.Symbol]
	if owned < shares {
		return Transaction{}, ErrInsufficientShares
	}
	proceeds := stock.Price.Mul(decimal.NewFromInt(shares))
	a.Balance = a.Balance.Add(proceeds)
	a.holdings[stock.Symbol] = owned - shares
	return a.append(TransactionTypeStockSale, proceeds), nil
}

// History returns the transaction log, oldest first, as a copy.
func (a *Account) History() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Holdings returns a copy of the symbol to owned-share-count mapping.
func (a *Account) Holdings() map[string]int64 {
	out := make(map[string]int64, len(a.holdings))
	for sym, n := range a.holdings {
		out[sym] = n
	}
	return out
}
