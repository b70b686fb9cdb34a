package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotVersion is the current schema version written by Save.
const SnapshotVersion = 1

// Snapshot is the complete serialized state of the bank at one point in
// time. Every save overwrites the previous snapshot wholesale; there is no
// incremental log, the account population is small enough that rewriting
// everything on each mutation is the simpler trade.
type Snapshot struct {
	Version  int             `json:"version"`
	SavedAt  time.Time       `json:"saved_at"`
	Accounts []AccountRecord `json:"accounts"`
	Stocks   []StockRecord   `json:"stocks"`
}

// AccountRecord is the persisted form of one account. It is a flat schema
// decoupled from the domain type so the wire format survives refactors.
type AccountRecord struct {
	Number       string              `json:"number"`
	Holder       string              `json:"holder"`
	Balance      decimal.Decimal     `json:"balance"`
	Type         string              `json:"type"`
	PIN          string              `json:"pin"`
	InterestRate decimal.Decimal     `json:"interest_rate"`
	Transactions []TransactionRecord `json:"transactions"`
	Holdings     map[string]int64    `json:"holdings"`
}

// TransactionRecord is the persisted form of one log entry.
type TransactionRecord struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Timestamp    time.Time       `json:"timestamp"`
}

// StockRecord is the persisted form of one catalog entry.
type StockRecord struct {
	Symbol          string          `json:"symbol"`
	Company         string          `json:"company"`
	Price           decimal.Decimal `json:"price"`
	SharesAvailable int64           `json:"shares_available"`
}

// Store persists bank snapshots. Load reports ok=false when no usable
// snapshot exists; a decode failure also reports ok=false together with the
// underlying error so callers can log it and fall back to defaults.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (snap Snapshot, ok bool, err error)
}
