// Package exchange keeps the canonical rate record fresh. A single
// background loop fetches crypto and forex rates on a fixed interval
// and upserts the singleton record; fetch failures degrade to fixed
// defaults and never abort a cycle.
package exchange

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
	"github.com/kysrn-ww/mathi-phone/internal/store"
)

// DefaultInterval is the refresh period between cycles.
const DefaultInterval = 300 * time.Second

type Refresher struct {
	store    store.Store
	source   Source
	interval time.Duration
}

func NewRefresher(st store.Store, source Source, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{store: st, source: source, interval: interval}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. Cancellation is observed at cycle boundaries only; an
// in-flight fetch is left to finish or time out.
func (r *Refresher) Run(ctx context.Context) {
	zap.L().Info("exchange rate refresher started", zap.Duration("interval", r.interval))

	r.RefreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			zap.L().Info("exchange rate refresher stopped")
			return
		case <-ticker.C:
			r.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce executes one full cycle. Both fetches always run, each
// falling back to its documented defaults independently, and the
// assembled record is always upserted. A storage error leaves the
// previous record untouched.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	crypto, err := r.source.CryptoRates()
	if err != nil {
		zap.L().Warn("crypto rates fetch failed, using defaults", zap.Error(err))
		crypto = CryptoRates{
			BTC:  1 / domain.DefaultBTCPriceUSD,
			ETH:  1 / domain.DefaultETHPriceUSD,
			USDT: domain.DefaultUSDTRate,
		}
	}

	ars, err := r.source.ARSRate()
	if err != nil {
		zap.L().Warn("ars rate fetch failed, using default", zap.Error(err))
		ars = domain.DefaultARSRate
	}

	rates := &domain.ExchangeRates{
		USD:         1.0,
		ARS:         ars,
		USDT:        crypto.USDT,
		BTC:         crypto.BTC,
		ETH:         crypto.ETH,
		LastUpdated: time.Now().UTC(),
		Source:      "api",
	}

	if err := r.store.UpsertRates(ctx, rates); err != nil {
		zap.L().Error("failed to store exchange rates", zap.Error(err))
		return
	}

	zap.L().Info("exchange rates updated",
		zap.Float64("ars", rates.ARS),
		zap.Float64("btc", rates.BTC),
		zap.Float64("eth", rates.ETH),
		zap.Float64("usdt", rates.USDT))
}
