package fuel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

// Client fetches one city's prices from the external provider. The provider is
// flaky: it sometimes answers with an HTML error page or a JSON body whose only
// content is a message field. Both are reported as errors so the caller can
// fall back per city.
type Client struct {
	BaseURL string // e.g. https://daily-...rapidapi.com ; overridable for tests
	Host    string // x-rapidapi-host header
	APIKey  string
	HTTP    *http.Client
}

func NewClient(host, apiKey string) *Client {
	return &Client{
		BaseURL: "https://" + host,
		Host:    host,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type priceEntry struct {
	RetailPrice json.Number `json:"retailPrice"`
}

type cityResponse struct {
	CityName string `json:"cityName"`
	Message  string `json:"message"`
	Fuel     *struct {
		Petrol *priceEntry `json:"petrol"`
		Diesel *priceEntry `json:"diesel"`
		CNG    *priceEntry `json:"cng"`
	} `json:"fuel"`
}

// FetchCity requests today's prices for one Tamil Nadu city.
func (c *Client) FetchCity(ctx context.Context, city string) (domain.CityPrice, error) {
	var zero domain.CityPrice

	u := fmt.Sprintf("%s/v1/fuel-prices/today/india/tamil-nadu/%s",
		c.BaseURL, url.PathEscape(strings.ToLower(city)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("x-rapidapi-key", c.APIKey)
	req.Header.Set("x-rapidapi-host", c.Host)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		return zero, errors.New("provider returned HTML instead of JSON")
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return zero, err
	}
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "<!DOCTYPE") || strings.HasPrefix(trimmed, "<html") {
		return zero, errors.New("provider returned HTML instead of JSON")
	}

	var parsed cityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return zero, errors.New("failed to parse provider response as JSON")
	}
	if parsed.Message != "" {
		return zero, errors.New(parsed.Message)
	}
	if parsed.Fuel == nil {
		return zero, errors.New("provider response has no fuel data")
	}

	name := parsed.CityName
	if name == "" {
		name = city
	}
	out := domain.CityPrice{
		City:        name,
		Petrol:      priceString(parsed.Fuel.Petrol),
		Diesel:      priceString(parsed.Fuel.Diesel),
		LastUpdated: time.Now().UTC(),
	}
	if parsed.Fuel.CNG != nil {
		out.CNG = parsed.Fuel.CNG.RetailPrice.String()
	}
	return out, nil
}

func priceString(p *priceEntry) string {
	if p == nil {
		return "0"
	}
	return p.RetailPrice.String()
}
