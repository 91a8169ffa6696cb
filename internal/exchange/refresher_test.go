package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kysrn-ww/mathi-phone/internal/domain"
	"github.com/kysrn-ww/mathi-phone/internal/store"
)

type fakeSource struct {
	crypto    CryptoRates
	cryptoErr error
	ars       float64
	arsErr    error
}

func (f *fakeSource) CryptoRates() (CryptoRates, error) {
	return f.crypto, f.cryptoErr
}

func (f *fakeSource) ARSRate() (float64, error) {
	return f.ars, f.arsErr
}

type failingUpsertStore struct {
	*store.Memory
}

func (f *failingUpsertStore) UpsertRates(context.Context, *domain.ExchangeRates) error {
	return errors.New("storage unreachable")
}

func TestRefreshStoresLiveRates(t *testing.T) {
	st := store.NewMemory()
	src := &fakeSource{
		crypto: CryptoRates{BTC: 1.0 / 60000, ETH: 1.0 / 2500, USDT: 1.001},
		ars:    1350.5,
	}
	r := NewRefresher(st, src, 0)

	r.RefreshOnce(context.Background())

	rates, err := st.GetRates(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rates)
	require.Equal(t, 1.0, rates.USD)
	require.Equal(t, 1350.5, rates.ARS)
	require.Equal(t, 1.001, rates.USDT)
	require.Equal(t, 1.0/60000, rates.BTC)
	require.Equal(t, 1.0/2500, rates.ETH)
	require.Equal(t, "api", rates.Source)
	require.False(t, rates.LastUpdated.IsZero())
}

func TestCryptoFailureUsesDefaultsButKeepsLiveARS(t *testing.T) {
	st := store.NewMemory()
	src := &fakeSource{
		cryptoErr: errors.New("timeout"),
		ars:       1420.0,
	}
	r := NewRefresher(st, src, 0)

	r.RefreshOnce(context.Background())

	rates, err := st.GetRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0/50000, rates.BTC)
	require.Equal(t, 1.0/3000, rates.ETH)
	require.Equal(t, 1.0, rates.USDT)
	require.Equal(t, 1420.0, rates.ARS)
}

func TestARSFailureUsesDefaultButKeepsLiveCrypto(t *testing.T) {
	st := store.NewMemory()
	src := &fakeSource{
		crypto: CryptoRates{BTC: 1.0 / 61000, ETH: 1.0 / 2600, USDT: 0.999},
		arsErr: errors.New("timeout"),
	}
	r := NewRefresher(st, src, 0)

	r.RefreshOnce(context.Background())

	rates, err := st.GetRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1000.0, rates.ARS)
	require.Equal(t, 1.0/61000, rates.BTC)
	require.Equal(t, 1.0/2600, rates.ETH)
	require.Equal(t, 0.999, rates.USDT)
}

func TestBothFailuresStillWriteRecord(t *testing.T) {
	st := store.NewMemory()
	src := &fakeSource{
		cryptoErr: errors.New("down"),
		arsErr:    errors.New("down"),
	}
	r := NewRefresher(st, src, 0)

	r.RefreshOnce(context.Background())

	rates, err := st.GetRates(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rates)
	require.Equal(t, 1000.0, rates.ARS)
	require.Equal(t, 1.0/50000, rates.BTC)
}

func TestStorageFailureLeavesPreviousRecord(t *testing.T) {
	mem := store.NewMemory()
	previous := &domain.ExchangeRates{USD: 1, ARS: 1111, USDT: 1, BTC: 1.0 / 55000, ETH: 1.0 / 2800, Source: "api"}
	require.NoError(t, mem.UpsertRates(context.Background(), previous))

	src := &fakeSource{crypto: CryptoRates{BTC: 1, ETH: 1, USDT: 1}, ars: 9999}
	r := NewRefresher(&failingUpsertStore{Memory: mem}, src, 0)
	r.RefreshOnce(context.Background())

	rates, err := mem.GetRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1111.0, rates.ARS)
}

func TestRepeatedCyclesReplaceTheSingleton(t *testing.T) {
	st := store.NewMemory()
	src := &fakeSource{crypto: CryptoRates{BTC: 1.0 / 60000, ETH: 1.0 / 2500, USDT: 1}, ars: 1300}
	r := NewRefresher(st, src, 0)

	for i := 0; i < 5; i++ {
		src.ars = 1300 + float64(i)
		r.RefreshOnce(context.Background())
	}

	rates, err := st.GetRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1304.0, rates.ARS)
	// the record shape never grows: always the same five currencies
	require.Equal(t, 1.0, rates.USD)
	require.NotZero(t, rates.USDT)
	require.NotZero(t, rates.BTC)
	require.NotZero(t, rates.ETH)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	st := store.NewMemory()
	src := &fakeSource{crypto: CryptoRates{BTC: 1, ETH: 1, USDT: 1}, ars: 1000}
	r := NewRefresher(st, src, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	// the immediate startup refresh lands before the first tick
	require.Eventually(t, func() bool {
		rates, err := st.GetRates(context.Background())
		return err == nil && rates != nil
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancel")
	}
}
