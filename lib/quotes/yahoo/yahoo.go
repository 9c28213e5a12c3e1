// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package yahoo is a client for Yahoo! Finance quotes.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"path"

	"github.com/shopspring/decimal"
)

const yahooURL string = "https://query2.finance.yahoo.com/v8/finance/chart"

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ErrNoQuote is returned when the response does not contain a usable quote.
var ErrNoQuote = errors.New("no quote in response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Symbol string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching quote for %s: HTTP %d %s", e.Symbol, e.Code, http.StatusText(e.Code))
}

// Client is a client for Yahoo! quotes.
type Client struct {
	url  string
	http *http.Client
}

// New creates a new client with the default URL.
func New() *Client {
	return NewWithURL(yahooURL, http.DefaultClient)
}

// NewWithURL creates a client for the given root URL.
func NewWithURL(rootURL string, c *http.Client) *Client {
	if c == nil {
		c = http.DefaultClient
	}
	return &Client{url: rootURL, http: c}
}

// LastPrice fetches the latest market price for the symbol.
func (c *Client) LastPrice(ctx context.Context, sym string) (decimal.Decimal, error) {
	u, err := createURL(c.url, sym)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error creating URL for symbol %s: %w", sym, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error fetching quote for %s: %w", sym, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Zero, &StatusError{Symbol: sym, Code: resp.StatusCode}
	}
	price, err := decodeResponse(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error decoding quote for %s: %w", sym, err)
	}
	return price, nil
}

// IsTransient reports whether err is a timeout or a response without a
// quote. HTTP status errors are final.
func IsTransient(err error) bool {
	if errors.Is(err, ErrNoQuote) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// createURL creates a URL for the given root URL and symbol.
func createURL(rootURL, sym string) (*url.URL, error) {
	u, err := url.Parse(rootURL)
	if err != nil {
		return u, err
	}
	u.Path = path.Join(u.Path, url.PathEscape(sym))
	u.RawQuery = url.Values{
		"interval": {"1d"},
		"range":    {"1d"},
	}.Encode()
	return u, nil
}

// decodeResponse extracts the regular market price from a chart response.
func decodeResponse(r io.Reader) (decimal.Decimal, error) {
	var body jbody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return decimal.Zero, err
	}
	if len(body.Chart.Result) == 0 {
		if body.Chart.Error != nil {
			return decimal.Zero, fmt.Errorf("%w: %s", ErrNoQuote, body.Chart.Error.Description)
		}
		return decimal.Zero, ErrNoQuote
	}
	p := body.Chart.Result[0].Meta.RegularMarketPrice
	if p == nil || !p.IsPositive() {
		return decimal.Zero, ErrNoQuote
	}
	return *p, nil
}

type jbody struct {
	Chart jchart `json:"chart"`
}

type jchart struct {
	Result []jresult `json:"result"`
	Error  *jerror   `json:"error"`
}

type jerror struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type jresult struct {
	Meta jmeta `json:"meta"`
}

type jmeta struct {
	Currency           string           `json:"currency"`
	Symbol             string           `json:"symbol"`
	RegularMarketPrice *decimal.Decimal `json:"regularMarketPrice"`
}
