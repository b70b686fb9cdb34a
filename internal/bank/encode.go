package bank

import (
	"github.com/sango-bank/sango_bank/internal/store"
)

// Explicit conversions between domain types and the persistence schema.
// Keeping them in one place means the wire format never leaks into the
// domain structs and vice versa.

func encodeAccount(a *Account) store.AccountRecord {
	rec := store.AccountRecord{
		Number:       a.Number,
		Holder:       a.Holder,
		Balance:      a.Balance,
		Type:         string(a.Type),
		PIN:          a.pin,
		InterestRate: a.InterestRate,
		Holdings:     a.Holdings(),
	}
	for _, tx := range a.transactions {
		rec.Transactions = append(rec.Transactions, encodeTransaction(tx))
	}
	return rec
}

func decodeAccount(rec store.AccountRecord) *Account {
	a := &Account{
		Number:       rec.Number,
		Holder:       rec.Holder,
		Balance:      rec.Balance,
		Type:         AccountType(rec.Type),
		InterestRate: rec.InterestRate,
		pin:          rec.PIN,
		holdings:     make(map[string]int64, len(rec.Holdings)),
	}
	for sym, n := range rec.Holdings {
		a.holdings[sym] = n
	}
	for _, tr := range rec.Transactions {
		a.transactions = append(a.transactions, decodeTransaction(tr))
	}
	return a
}

func encodeTransaction(tx Transaction) store.TransactionRecord {
	return store.TransactionRecord{
		ID:           tx.ID,
		Type:         string(tx.Type),
		Amount:       tx.Amount,
		BalanceAfter: tx.BalanceAfter,
		Timestamp:    tx.Timestamp,
	}
}

func decodeTransaction(rec store.TransactionRecord) Transaction {
	return Transaction{
		ID:           rec.ID,
		Type:         TransactionType(rec.Type),
		Amount:       rec.Amount,
		BalanceAfter: rec.BalanceAfter,
		Timestamp:    rec.Timestamp,
	}
}

func encodeStock(s Stock) store.StockRecord {
	return store.StockRecord{
		Symbol:          s.Symbol,
		Company:         s.Company,
		Price:           s.Price,
		SharesAvailable: s.SharesAvailable,
	}
}

func decodeStock(rec store.StockRecord) Stock {
	return Stock{
		Symbol:          rec.Symbol,
		Company:         rec.Company,
		Price:           rec.Price,
		SharesAvailable: rec.SharesAvailable,
	}
}
