package bank

import "github.com/shopspring/decimal"

// Stock is one tradable instrument in the catalog. SharesAvailable is the
// nominal sellable pool; buy and sell operations do not adjust it, only the
// explicit catalog update operations do.
type Stock struct {
	Symbol          string          `json:"symbol"`
	Company         string          `json:"company"`
	Price           decimal.Decimal `json:"price"`
	SharesAvailable int64           `json:"shares_available"`
}

// SeedCatalog returns the default catalog, used only when no persisted
// snapshot exists.
func SeedCatalog() []Stock {
	return []Stock{
		{Symbol: "AAPL", Company: "Apple Inc.", Price: decimal.RequireFromString("150.00"), SharesAvailable: 1000},
		{Symbol: "GOOGL", Company: "Alphabet Inc.", Price: decimal.RequireFromString("2800.00"), SharesAvailable: 500},
		{Symbol: "MSFT", Company: "Microsoft Corporation", Price: decimal.RequireFromString("300.00"), SharesAvailable: 800},
		{Symbol: "AMZN", Company: "Amazon.com Inc.", Price: decimal.RequireFromString("3300.00"), SharesAvailable: 300},
	}
}
