package bank

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return v
}

func TestNewAccountRecordsInitialDeposit(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000.00"), AccountTypeSavings, "1234")

	history := a.History()
	if len(history) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(history))
	}
	tx := history[0]
	if tx.Type != TransactionTypeInitialDeposit {
		t.Fatalf("expected INITIAL_DEPOSIT, got %s", tx.Type)
	}
	if !tx.Amount.Equal(d(t, "1000.00")) {
		t.Fatalf("expected amount 1000.00, got %s", tx.Amount)
	}
	if !tx.BalanceAfter.Equal(d(t, "1000.00")) {
		t.Fatalf("expected balance after 1000.00, got %s", tx.BalanceAfter)
	}
	if !a.InterestRate.Equal(d(t, "0.045")) {
		t.Fatalf("expected savings rate 0.045, got %s", a.InterestRate)
	}
}

func TestNewAccountCheckingRate(t *testing.T) {
	a := NewAccount("C1", "Carl", d(t, "0"), AccountTypeChecking, "0000")
	if !a.InterestRate.Equal(d(t, "0.01")) {
		t.Fatalf("expected checking rate 0.01, got %s", a.InterestRate)
	}
}

// A zero or negative opening balance is accepted and still logged.
func TestNewAccountAcceptsNegativeOpeningBalance(t *testing.T) {
	a := NewAccount("N1", "Nadia", d(t, "-50"), AccountTypeChecking, "9999")
	if !a.Balance.Equal(d(t, "-50")) {
		t.Fatalf("expected balance -50, got %s", a.Balance)
	}
	history := a.History()
	if len(history) != 1 || history[0].Type != TransactionTypeInitialDeposit {
		t.Fatalf("expected one INITIAL_DEPOSIT entry, got %+v", history)
	}
}

func TestDepositAndWithdraw(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000.00"), AccountTypeSavings, "1234")

	if _, err := a.Deposit(d(t, "500")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !a.Balance.Equal(d(t, "1500.00")) {
		t.Fatalf("expected balance 1500.00, got %s", a.Balance)
	}

	if _, err := a.Withdraw(d(t, "2000")); err != ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if !a.Balance.Equal(d(t, "1500.00")) {
		t.Fatalf("balance changed on rejected withdrawal: %s", a.Balance)
	}

	if _, err := a.Withdraw(d(t, "300")); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !a.Balance.Equal(d(t, "1200.00")) {
		t.Fatalf("expected balance 1200.00, got %s", a.Balance)
	}
}

func TestDepositRejectsNonPositiveAmounts(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "100"), AccountTypeChecking, "1234")
	before := len(a.History())

	for _, amt := range []string{"0", "-25"} {
		if _, err := a.Deposit(d(t, amt)); err != ErrInvalidAmount {
			t.Fatalf("deposit %s: expected invalid amount, got %v", amt, err)
		}
	}
	if _, err := a.Withdraw(d(t, "0")); err != ErrInvalidAmount {
		t.Fatalf("withdraw 0: expected invalid amount, got %v", err)
	}
	if len(a.History()) != before {
		t.Fatalf("rejected operations appended transactions")
	}
	if !a.Balance.Equal(d(t, "100")) {
		t.Fatalf("balance changed: %s", a.Balance)
	}
}

func TestAccrueInterest(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000"), AccountTypeSavings, "1234")

	tx := a.AccrueInterest()
	// 1000 * 0.045/12 = 3.75
	if !tx.Amount.Equal(d(t, "3.75")) {
		t.Fatalf("expected interest 3.75, got %s", tx.Amount)
	}
	if !a.Balance.Equal(d(t, "1003.75")) {
		t.Fatalf("expected balance 1003.75, got %s", a.Balance)
	}
	if tx.Type != TransactionTypeInterest {
		t.Fatalf("expected INTEREST entry, got %s", tx.Type)
	}
}

// Interest is unconditional: a negative balance accrues negative interest.
func TestAccrueInterestOnNegativeBalance(t *testing.T) {
	a := NewAccount("N1", "Nadia", d(t, "-1000"), AccountTypeSavings, "1234")

	tx := a.AccrueInterest()
	if !tx.Amount.Equal(d(t, "-3.75")) {
		t.Fatalf("expected interest -3.75, got %s", tx.Amount)
	}
	if !a.Balance.Equal(d(t, "-1003.75")) {
		t.Fatalf("expected balance -1003.75, got %s", a.Balance)
	}
}

func TestBuyAndSellStock(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1500.00"), AccountTypeSavings, "1234")
	aapl := Stock{Symbol: "AAPL", Company: "Apple Inc.", Price: d(t, "150.00"), SharesAvailable: 1000}

	tx, err := a.BuyStock(aapl, 5)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if !tx.Amount.Equal(d(t, "750.00")) {
		t.Fatalf("expected purchase amount 750.00, got %s", tx.Amount)
	}
	if !a.Balance.Equal(d(t, "750.00")) {
		t.Fatalf("expected balance 750.00, got %s", a.Balance)
	}
	if got := a.Holdings()["AAPL"]; got != 5 {
		t.Fatalf("expected 5 AAPL shares, got %d", got)
	}

	tx, err = a.SellStock(aapl, 5)
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if !tx.Amount.Equal(d(t, "750.00")) {
		t.Fatalf("expected sale amount 750.00, got %s", tx.Amount)
	}
	if !a.Balance.Equal(d(t, "1500.00")) {
		t.Fatalf("expected balance 1500.00, got %s", a.Balance)
	}

	// The holding stays in the map at zero after a full sell.
	holdings := a.Holdings()
	got, ok := holdings["AAPL"]
	if !ok {
		t.Fatalf("expected AAPL holding entry to remain")
	}
	if got != 0 {
		t.Fatalf("expected 0 AAPL shares, got %d", got)
	}
}

func TestBuyStockRejections(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000"), AccountTypeSavings, "1234")
	stock := Stock{Symbol: "GOOGL", Price: d(t, "2800.00"), SharesAvailable: 2}

	if _, err := a.BuyStock(stock, 0); err != ErrInvalidAmount {
		t.Fatalf("expected invalid amount for 0 shares, got %v", err)
	}
	if _, err := a.BuyStock(stock, 1); err != ErrInsufficientFunds {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	cheap := Stock{Symbol: "PENNY", Price: d(t, "1.00"), SharesAvailable: 3}
	if _, err := a.BuyStock(cheap, 4); err != ErrInsufficientShares {
		t.Fatalf("expected insufficient shares, got %v", err)
	}

	if !a.Balance.Equal(d(t, "1000")) {
		t.Fatalf("balance changed on rejected purchases: %s", a.Balance)
	}
	if len(a.Holdings()) != 0 {
		t.Fatalf("holdings changed on rejected purchases: %v", a.Holdings())
	}
}

func TestSellStockRejections(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000"), AccountTypeSavings, "1234")
	stock := Stock{Symbol: "MSFT", Price: d(t, "300.00"), SharesAvailable: 800}

	if _, err := a.SellStock(stock, 1); err != ErrInsufficientShares {
		t.Fatalf("expected insufficient shares for unowned stock, got %v", err)
	}
	if _, err := a.SellStock(stock, 0); err != ErrInvalidAmount {
		t.Fatalf("expected invalid amount for 0 shares, got %v", err)
	}
	if _, err := a.SellStock(stock, -3); err != ErrInvalidAmount {
		t.Fatalf("expected invalid amount for negative shares, got %v", err)
	}
}

func TestValidatePIN(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000.00"), AccountTypeSavings, "1234")
	if a.ValidatePIN("0000") {
		t.Fatalf("expected PIN 0000 to be rejected")
	}
	if !a.ValidatePIN("1234") {
		t.Fatalf("expected PIN 1234 to be accepted")
	}
}

// Every successful mutation appends exactly one entry whose BalanceAfter is
// the balance at that instant, and the history prefix never changes.
func TestHistoryAppendOnly(t *testing.T) {
	a := NewAccount("A1", "Alice", d(t, "1000"), AccountTypeSavings, "1234")
	aapl := Stock{Symbol: "AAPL", Price: d(t, "150.00"), SharesAvailable: 1000}

	if _, err := a.Deposit(d(t, "500")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	prefix := a.History()

	if _, err := a.BuyStock(aapl, 2); err != nil {
		t.Fatalf("buy: %v", err)
	}
	a.AccrueInterest()
	if _, err := a.Withdraw(d(t, "100")); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	history := a.History()
	if len(history) < len(prefix) {
		t.Fatalf("history shrank from %d to %d", len(prefix), len(history))
	}
	for i, tx := range prefix {
		if history[i].ID != tx.ID || history[i].Type != tx.Type {
			t.Fatalf("history prefix changed at %d: %+v vs %+v", i, history[i], tx)
		}
	}

	// Replaying the amounts from the log must land on the final balance.
	balance := decimal.Zero
	for _, tx := range history {
		switch tx.Type {
		case TransactionTypeInitialDeposit, TransactionTypeDeposit, TransactionTypeInterest, TransactionTypeStockSale:
			balance = balance.Add(tx.Amount)
		case TransactionTypeWithdrawal, TransactionTypeStockPurchase:
			balance = balance.Sub(tx.Amount)
		}
		if !tx.BalanceAfter.Equal(balance) {
			t.Fatalf("%s entry balance_after %s, replay says %s", tx.Type, tx.BalanceAfter, balance)
		}
	}
	if !a.Balance.Equal(balance) {
		t.Fatalf("final balance %s does not match replay %s", a.Balance, balance)
	}
}
