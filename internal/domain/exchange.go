package domain

import "time"

// Fallback rates used whenever an upstream source cannot be reached.
// These are intentionally fixed literals, not live values: a failed
// fetch degrades to them instead of skipping the cycle.
const (
	DefaultARSRate     = 1000.0
	DefaultBTCPriceUSD = 50000.0
	DefaultETHPriceUSD = 3000.0
	DefaultUSDTRate    = 1.0
)

// ExchangeRates is the canonical rate record, a process-wide singleton.
// All rates are relative to 1 USD. BTC and ETH hold units of the coin
// per dollar, the reciprocal of the market USD price.
type ExchangeRates struct {
	ID          int64     `gorm:"primaryKey" json:"-"`
	USD         float64   `json:"usd"`
	ARS         float64   `json:"ars"`
	USDT        float64   `json:"usdt"`
	BTC         float64   `json:"btc"`
	ETH         float64   `json:"eth"`
	LastUpdated time.Time `json:"timestamp"`
	Source      string    `gorm:"size:32" json:"source"`
}

// TableName Specify table name
func (ExchangeRates) TableName() string {
	return "exchange_rates"
}

// DefaultExchangeRates returns the record served before the first
// successful refresh has been stored.
func DefaultExchangeRates() *ExchangeRates {
	return &ExchangeRates{
		USD:         1.0,
		ARS:         DefaultARSRate,
		USDT:        DefaultUSDTRate,
		BTC:         1 / DefaultBTCPriceUSD,
		ETH:         1 / DefaultETHPriceUSD,
		LastUpdated: time.Now(),
		Source:      "default",
	}
}
