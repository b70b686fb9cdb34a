// Package bank implements the account/ledger engine: accounts with balances,
// PIN-gated access, transaction history and stock holdings, plus the catalog
// of tradable stocks. The Bank aggregate owns all of it and writes a full
// snapshot to the store after every mutating operation.
package bank

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sango-bank/sango_bank/internal/notification"
	"github.com/sango-bank/sango_bank/internal/store"
)

// Bank is the aggregate root. A single mutex serializes every operation so
// that lookup, mutation and snapshot write form one critical section; the
// no-negative-balance invariant depends on that the moment a second caller
// is admitted.
type Bank struct {
	mu       sync.Mutex
	accounts map[string]*Account
	stocks   map[string]*Stock
	store    store.Store
	notifier notification.Notifier
	logger   *slog.Logger
}

// New constructs a Bank hydrated from the store. An absent or unreadable
// snapshot is not fatal: the bank starts with no accounts and the seeded
// catalog.
func New(ctx context.Context, st store.Store, notifier notification.Notifier, logger *slog.Logger) *Bank {
	b := &Bank{
		accounts: make(map[string]*Account),
		stocks:   make(map[string]*Stock),
		store:    st,
		notifier: notifier,
		logger:   logger,
	}

	snap, ok, err := st.Load(ctx)
	if err != nil {
		logger.Warn("snapshot load failed, starting from defaults", "error", err)
	}
	if ok {
		b.restore(snap)
	}
	if len(b.stocks) == 0 {
		for _, s := range SeedCatalog() {
			stock := s
			b.stocks[stock.Symbol] = &stock
		}
	}
	return b
}

// Receipt reports the outcome of a successful account mutation. Warning is
// non-empty when the in-memory mutation succeeded but the snapshot write did
// not; in that case memory and storage have diverged and the divergence is
// surfaced, not reconciled.
type Receipt struct {
	AccountNumber string
	Transaction   Transaction
	Balance       decimal.Decimal
	Warning       string
}

// StockReceipt reports the outcome of a catalog update.
type StockReceipt struct {
	Stock   Stock
	Warning string
}

// CreateAccount constructs an account and inserts it under its number.
// Unlike the historical behavior this rejects a duplicate number instead of
// shadowing the existing account.
func (b *Bank) CreateAccount(ctx context.Context, number, holder string, opening decimal.Decimal, kind AccountType, pin string) (Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.accounts[number]; exists {
		return Receipt{}, ErrAccountExists
	}

	a := NewAccount(number, holder, opening, kind, pin)
	b.accounts[number] = a
	warning := b.persist(ctx)

	tx := a.transactions[len(a.transactions)-1]
	b.notify(ctx, "account_created", a.Number, tx.ID, fmt.Sprintf("%s account for %s", a.Type, a.Holder))
	return Receipt{AccountNumber: a.Number, Transaction: tx, Balance: a.Balance, Warning: warning}, nil
}

// Deposit credits an account. The snapshot is written after the delegated
// call whatever its outcome; a rejected amount still triggers a save.
func (b *Bank) Deposit(ctx context.Context, number string, amount decimal.Decimal) (Receipt, error) {
	return b.mutate(ctx, number, "deposit", func(a *Account) (Transaction, error) {
		return a.Deposit(amount)
	})
}

// Withdraw debits an account, rejecting amounts that would take the balance
// negative.
func (b *Bank) Withdraw(ctx context.Context, number string, amount decimal.Decimal) (Receipt, error) {
	return b.mutate(ctx, number, "withdrawal", func(a *Account) (Transaction, error) {
		return a.Withdraw(amount)
	})
}

// AccrueInterest applies one month of interest to an account.
func (b *Bank) AccrueInterest(ctx context.Context, number string) (Receipt, error) {
	return b.mutate(ctx, number, "interest_accrued", func(a *Account) (Transaction, error) {
		return a.AccrueInterest(), nil
	})
}

// BuyStock purchases shares of a cataloged stock for an account.
func (b *Bank) BuyStock(ctx context.Context, number, symbol string, shares int64) (Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return Receipt{}, ErrAccountNotFound
	}
	stock, ok := b.stocks[symbol]
	if !ok {
		return Receipt{}, ErrStockNotFound
	}

	tx, err := a.BuyStock(*stock, shares)
	warning := b.persist(ctx)
	if err != nil {
		return Receipt{}, err
	}
	b.notify(ctx, "stock_purchase", number, tx.ID, fmt.Sprintf("%d %s", shares, symbol))
	return Receipt{AccountNumber: number, Transaction: tx, Balance: a.Balance, Warning: warning}, nil
}

// SellStock sells shares an account holds.
func (b *Bank) SellStock(ctx context.Context, number, symbol string, shares int64) (Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return Receipt{}, ErrAccountNotFound
	}
	stock, ok := b.stocks[symbol]
	if !ok {
		return Receipt{}, ErrStockNotFound
	}

	tx, err := a.SellStock(*stock, shares)
	warning := b.persist(ctx)
	if err != nil {
		return Receipt{}, err
	}
	b.notify(ctx, "stock_sale", number, tx.ID, fmt.Sprintf("%d %s", shares, symbol))
	return Receipt{AccountNumber: number, Transaction: tx, Balance: a.Balance, Warning: warning}, nil
}

// mutate runs op against the account under the bank lock and then writes the
// snapshot, whether or not op succeeded.
func (b *Bank) mutate(ctx context.Context, number, kind string, op func(*Account) (Transaction, error)) (Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return Receipt{}, ErrAccountNotFound
	}

	tx, err := op(a)
	warning := b.persist(ctx)
	if err != nil {
		return Receipt{}, err
	}
	b.notify(ctx, kind, number, tx.ID, tx.Amount.String())
	return Receipt{AccountNumber: number, Transaction: tx, Balance: a.Balance, Warning: warning}, nil
}

// ValidatePIN checks the PIN for an account. A mismatch is an ordinary
// outcome, never a lockout.
func (b *Bank) ValidatePIN(number, pin string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	if !a.ValidatePIN(pin) {
		return ErrInvalidCredentials
	}
	return nil
}

// FindAccount returns a detached copy of the account.
func (b *Bank) FindAccount(number string) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	cp := *a
	cp.transactions = a.History()
	cp.holdings = a.Holdings()
	return &cp, nil
}

// FindStock returns a copy of the cataloged stock.
func (b *Bank) FindStock(symbol string) (Stock, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stock, ok := b.stocks[symbol]
	if !ok {
		return Stock{}, ErrStockNotFound
	}
	return *stock, nil
}

// BalanceInquiry reports holder and balance for display.
type BalanceInquiry struct {
	AccountNumber string
	Holder        string
	Balance       decimal.Decimal
}

// CheckBalance is a pure read; it triggers no persistence.
func (b *Bank) CheckBalance(number string) (BalanceInquiry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return BalanceInquiry{}, ErrAccountNotFound
	}
	return BalanceInquiry{AccountNumber: a.Number, Holder: a.Holder, Balance: a.Balance}, nil
}

// History returns an account's transaction log, oldest first.
func (b *Bank) History(number string) ([]Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.History(), nil
}

// Holdings returns an account's symbol to share-count mapping.
func (b *Bank) Holdings(number string) (map[string]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.Holdings(), nil
}

// ListStocks returns the catalog sorted by symbol.
func (b *Bank) ListStocks() []Stock {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Stock, 0, len(b.stocks))
	for _, s := range b.stocks {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// UpdateStockPrice sets a stock's current price. The price may be zero but
// not negative.
func (b *Bank) UpdateStockPrice(ctx context.Context, symbol string, price decimal.Decimal) (StockReceipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stock, ok := b.stocks[symbol]
	if !ok {
		return StockReceipt{}, ErrStockNotFound
	}
	if price.IsNegative() {
		return StockReceipt{}, ErrInvalidAmount
	}
	stock.Price = price
	warning := b.persist(ctx)
	return StockReceipt{Stock: *stock, Warning: warning}, nil
}

// AdjustStockShares changes a stock's available pool by delta, which may be
// negative.
func (b *Bank) AdjustStockShares(ctx context.Context, symbol string, delta int64) (StockReceipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stock, ok := b.stocks[symbol]
	if !ok {
		return StockReceipt{}, ErrStockNotFound
	}
	stock.SharesAvailable += delta
	warning := b.persist(ctx)
	return StockReceipt{Stock: *stock, Warning: warning}, nil
}

// persist writes the full snapshot. A failure does not roll anything back;
// it is logged and returned as a warning string for the caller's receipt.
func (b *Bank) persist(ctx context.Context) string {
	if err := b.store.Save(ctx, b.snapshotLocked()); err != nil {
		b.logger.Warn("snapshot save failed, in-memory state ahead of storage", "error", err)
		return fmt.Sprintf("state not persisted: %v", err)
	}
	return ""
}

func (b *Bank) notify(ctx context.Context, kind, number, txID, detail string) {
	if b.notifier == nil {
		return
	}
	if err := b.notifier.Notify(ctx, notification.Event{
		Kind:          kind,
		AccountNumber: number,
		TransactionID: txID,
		Detail:        detail,
	}); err != nil {
		b.logger.Warn("notify failed", "kind", kind, "error", err)
	}
}

// Snapshot exports the full bank state in the persistence schema. Accounts
// and stocks are sorted so the encoded form is stable.
func (b *Bank) Snapshot() store.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *Bank) snapshotLocked() store.Snapshot {
	snap := store.Snapshot{Version: store.SnapshotVersion}

	numbers := make([]string, 0, len(b.accounts))
	for n := range b.accounts {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)
	for _, n := range numbers {
		snap.Accounts = append(snap.Accounts, encodeAccount(b.accounts[n]))
	}

	symbols := make([]string, 0, len(b.stocks))
	for s := range b.stocks {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	for _, s := range symbols {
		snap.Stocks = append(snap.Stocks, encodeStock(*b.stocks[s]))
	}
	return snap
}

func (b *Bank) restore(snap store.Snapshot) {
	for i := range snap.Accounts {
		a := decodeAccount(snap.Accounts[i])
		b.accounts[a.Number] = a
	}
	for _, rec := range snap.Stocks {
		stock := decodeStock(rec)
		b.stocks[stock.Symbol] = &stock
	}
}
