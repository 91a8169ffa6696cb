package exchange

import (
	"fmt"
	"time"

	"github.com/guonaihong/gout"
)

// CryptoRates holds crypto rates in stored form: BTC and ETH are units
// of the coin per 1 USD (reciprocal of the market USD price), USDT is
// its USD price as-is.
type CryptoRates struct {
	BTC  float64
	ETH  float64
	USDT float64
}

// Source provides the two upstream rate feeds. Implementations return
// an error on timeout, non-2xx status or malformed payload; they never
// substitute fallbacks themselves.
type Source interface {
	CryptoRates() (CryptoRates, error)
	ARSRate() (float64, error)
}

// Client fetches live rates over HTTP. Calls are bounded by Timeout
// and are deliberately not tied to the refresher's shutdown context:
// an in-flight fetch runs to completion or timeout.
type Client struct {
	CryptoURL string
	ForexURL  string
	Timeout   time.Duration
}

var _ Source = (*Client)(nil)

func NewClient(cryptoURL, forexURL string, timeout time.Duration) *Client {
	return &Client{CryptoURL: cryptoURL, ForexURL: forexURL, Timeout: timeout}
}

// CryptoRates queries the crypto price endpoint for the USD prices of
// bitcoin, ethereum and tether, converting BTC/ETH to reciprocal form.
func (c *Client) CryptoRates() (CryptoRates, error) {
	var payload map[string]map[string]float64
	var code int
	err := gout.GET(c.CryptoURL).
		SetQuery(gout.H{"ids": "bitcoin,ethereum,tether", "vs_currencies": "usd"}).
		SetTimeout(c.Timeout).
		BindJSON(&payload).
		Code(&code).
		Do()
	if err != nil {
		return CryptoRates{}, fmt.Errorf("crypto rates request: %w", err)
	}
	if code < 200 || code > 299 {
		return CryptoRates{}, fmt.Errorf("crypto rates request: status %d", code)
	}

	btc := payload["bitcoin"]["usd"]
	eth := payload["ethereum"]["usd"]
	usdt := payload["tether"]["usd"]
	if btc <= 0 || eth <= 0 || usdt <= 0 {
		return CryptoRates{}, fmt.Errorf("crypto rates request: malformed payload %v", payload)
	}

	return CryptoRates{BTC: 1 / btc, ETH: 1 / eth, USDT: usdt}, nil
}

// ARSRate queries the forex endpoint for the USD to ARS rate.
func (c *Client) ARSRate() (float64, error) {
	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	var code int
	err := gout.GET(c.ForexURL).
		SetTimeout(c.Timeout).
		BindJSON(&payload).
		Code(&code).
		Do()
	if err != nil {
		return 0, fmt.Errorf("ars rate request: %w", err)
	}
	if code < 200 || code > 299 {
		return 0, fmt.Errorf("ars rate request: status %d", code)
	}

	ars, ok := payload.Rates["ARS"]
	if !ok || ars <= 0 {
		return 0, fmt.Errorf("ars rate request: ARS missing from payload")
	}
	return ars, nil
}
