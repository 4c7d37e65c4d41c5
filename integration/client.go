// Package integration wraps the public APIs the system consumes: random
// motivational quotes, Brazilian postal code lookups and current weather.
// None of them require credentials.
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// FallbackQuote is returned when the quote API is unreachable
const FallbackQuote = "Mantenha o foco e persista em seus objetivos!"

const addressCacheTTL = 24 * time.Hour

// Address holds the fields of a postal code lookup
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

// Weather holds the current weather for a location
type Weather struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	Time          string  `json:"time"`
}

// Client calls the external APIs. The base URLs are configurable so tests can
// point them at local servers. An optional redis client caches address lookups;
// postal data changes rarely.
type Client struct {
	QuoteBaseURL   string
	CepBaseURL     string
	WeatherBaseURL string

	http  *http.Client
	cache *redis.Client
}

// NewClient creates a client against the production API endpoints
func NewClient(cache *redis.Client) *Client {
	return &Client{
		QuoteBaseURL:   "https://api.quotable.io",
		CepBaseURL:     "https://viacep.com.br",
		WeatherBaseURL: "https://api.open-meteo.com",
		http:           &http.Client{Timeout: 5 * time.Second},
		cache:          cache,
	}
}

// MotivationalQuote fetches a random quote formatted as "text - author".
// Failures degrade to a fixed fallback phrase instead of an error; the quote
// is decorative and must never break a caller.
func (c *Client) MotivationalQuote(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.QuoteBaseURL+"/random", nil)
	if err != nil {
		return FallbackQuote
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch motivational quote")
		return FallbackQuote
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		log.WithField("status", res.StatusCode).Warn("Quote API returned an error status")
		return FallbackQuote
	}

	var out struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		log.WithError(err).Warn("Failed to decode quote response")
		return FallbackQuote
	}

	return out.Content + " - " + out.Author
}

// sanitizeCEP keeps only digits
func sanitizeCEP(cep string) string {
	var b strings.Builder
	for _, r := range cep {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// LookupAddress resolves a Brazilian postal code. Formatting characters are
// stripped before validation; anything other than 8 digits is invalid.
func (c *Client) LookupAddress(ctx context.Context, cep string) (*Address, error) {
	cep = sanitizeCEP(cep)
	if len(cep) != 8 {
		return nil, fmt.Errorf("invalid postal code: must have 8 digits")
	}

	if addr := c.cachedAddress(ctx, cep); addr != nil {
		return addr, nil
	}

	url := fmt.Sprintf("%s/ws/%s/json/", c.CepBaseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query postal code service: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("postal code service returned status %d", res.StatusCode)
	}

	// The service answers 200 with {"erro": true} for well-formed but
	// nonexistent codes
	var out struct {
		Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode postal code response: %w", err)
	}
	if out.Erro {
		return nil, fmt.Errorf("postal code not found: %s", cep)
	}

	c.storeAddress(ctx, cep, &out.Address)

	return &out.Address, nil
}

// CurrentWeather fetches the current weather for the given coordinates
func (c *Client) CurrentWeather(ctx context.Context, latitude, longitude float64) (*Weather, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%g&longitude=%g&current_weather=true",
		c.WeatherBaseURL, latitude, longitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather service: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("weather service returned status %d", res.StatusCode)
	}

	var out struct {
		CurrentWeather Weather `json:"current_weather"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return &out.CurrentWeather, nil
}

func addressKey(cep string) string { return "address:cep:" + cep }

func (c *Client) cachedAddress(ctx context.Context, cep string) *Address {
	if c.cache == nil {
		return nil
	}

	b, err := c.cache.Get(ctx, addressKey(cep)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		log.WithError(err).Warn("Failed to read address cache")
		return nil
	}

	var addr Address
	if err := json.Unmarshal(b, &addr); err != nil {
		return nil
	}
	return &addr
}

func (c *Client) storeAddress(ctx context.Context, cep string, addr *Address) {
	if c.cache == nil {
		return
	}

	b, err := json.Marshal(addr)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, addressKey(cep), b, addressCacheTTL).Err(); err != nil {
		log.WithError(err).Warn("Failed to write address cache")
	}
}
