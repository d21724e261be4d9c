package wunderground

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sonnyweather/weather-dialog/internal/locnorm"
)

// ErrCommunication covers transport failures and non-success statuses from
// the provider. Its text is already user-presentable.
var ErrCommunication = errors.New("I'm sorry, but there was a communication error with the Weather Underground.")

// DefaultEndpoint is the provider's public API root.
const DefaultEndpoint = "http://api.wunderground.com/api"

// Client issues requests against the Weather Underground API. Calls go
// through a circuit breaker. There are no automatic retries; a failed turn
// surfaces to the user rather than silently replaying.
type Client struct {
	endpoint string
	apiKey   string
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

// NewClient builds a Client. endpoint defaults to DefaultEndpoint when empty.
func NewClient(httpClient *http.Client, endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "wunderground",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   httpClient,
		circuit:  cb,
	}
}

// Fetch performs one GET for the given data feature and location and decodes
// the payload. state may be empty, in which case the city is queried bare.
func (c *Client) Fetch(ctx context.Context, feature, state, city string) (*Payload, error) {
	query := "/q/"
	if state != "" {
		query += state + "/"
	}
	query += locnorm.FormatCity(city) + ".json"
	url := fmt.Sprintf("%s/%s/%s%s", c.endpoint, c.apiKey, feature, query)

	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommunication, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrCommunication, resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommunication, err)
		}
		p, err := DecodePayload(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCommunication, err)
		}
		return p, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCommunication, err)
		}
		return nil, err
	}

	return result.(*Payload), nil
}
