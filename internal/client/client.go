package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kjstillabower/forecast-summary/internal/models"
	"github.com/kjstillabower/forecast-summary/internal/observability"
)

// DefaultForecastURL is the OpenWeatherMap 5-day/3-hour forecast endpoint.
const DefaultForecastURL = "http://api.openweathermap.org/data/2.5/forecast"

// ForecastClient fetches the raw forecast payload for a city.
type ForecastClient interface {
	GetForecast(ctx context.Context, city string) (models.ForecastPayload, error)
}

// HTTPDoer is the transport used by OpenWeatherClient. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrUpstreamRejected matches every non-200 response (see StatusError).
	ErrUpstreamRejected = errors.New("upstream rejected request")
	ErrInvalidAPIKey    = errors.New("invalid API key")
	ErrCityNotFound     = errors.New("city not found")
	// ErrTransport wraps network-level failures: DNS, refused connections, timeouts.
	ErrTransport = errors.New("transport failure")
	// ErrDecode wraps a 200 response whose body is not valid JSON.
	ErrDecode = errors.New("decode forecast response")
	// ErrEmptyPayload is a 200 response whose JSON body is empty or falsy ({}, [], null).
	ErrEmptyPayload = errors.New("empty forecast payload")
)

// StatusError reports a non-200 response from the forecast API.
type StatusError struct {
	City string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("forecast for %s: HTTP %d", e.City, e.Code)
}

// Is lets errors.Is match the rejection sentinels by status code.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUpstreamRejected:
		return true
	case ErrInvalidAPIKey:
		return e.Code == http.StatusUnauthorized
	case ErrCityNotFound:
		return e.Code == http.StatusNotFound
	}
	return false
}

type OpenWeatherClient struct {
	apiKey  string
	apiURL  string
	timeout time.Duration
	doer    HTTPDoer
}

// NewOpenWeatherClient returns a client backed by an *http.Client whose Timeout
// is timeout. Each call also carries a context deadline of the same length.
// An empty apiKey is accepted; the API answers it with 401.
func NewOpenWeatherClient(apiKey, apiURL string, timeout time.Duration) (*OpenWeatherClient, error) {
	return NewOpenWeatherClientWithDoer(apiKey, apiURL, timeout, &http.Client{Timeout: timeout})
}

// NewOpenWeatherClientWithDoer returns a client that sends requests through doer.
func NewOpenWeatherClientWithDoer(apiKey, apiURL string, timeout time.Duration, doer HTTPDoer) (*OpenWeatherClient, error) {
	if apiURL == "" {
		apiURL = DefaultForecastURL
	}
	if _, err := url.Parse(apiURL); err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	if doer == nil {
		return nil, errors.New("http doer is required")
	}

	return &OpenWeatherClient{
		apiKey:  apiKey,
		apiURL:  apiURL,
		timeout: timeout,
		doer:    doer,
	}, nil
}

// GetForecast performs exactly one GET for city and decodes the body on 200.
func (c *OpenWeatherClient) GetForecast(ctx context.Context, city string) (models.ForecastPayload, error) {
	start := time.Now()

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.buildRequest(reqCtx, city)
	if err != nil {
		observability.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		return models.ForecastPayload{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		duration := time.Since(start).Seconds()
		observability.ForecastAPICallsTotal.WithLabelValues("error").Inc()
		observability.ForecastAPIDuration.WithLabelValues("error").Observe(duration)

		// Cancellation by the caller is not a transport fault.
		if ctx.Err() != nil {
			return models.ForecastPayload{}, ctx.Err()
		}
		return models.ForecastPayload{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	duration := time.Since(start).Seconds()
	status := statusLabel(resp.StatusCode)
	observability.ForecastAPICallsTotal.WithLabelValues(status).Inc()
	observability.ForecastAPIDuration.WithLabelValues(status).Observe(duration)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return models.ForecastPayload{}, &StatusError{City: city, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ForecastPayload{}, fmt.Errorf("%w: read response body: %w", ErrTransport, err)
	}

	return decodePayload(body)
}

// decodePayload decodes a 200 body. A falsy JSON value yields ErrEmptyPayload;
// any other value that is not a forecast object yields ErrDecode.
func decodePayload(body []byte) (models.ForecastPayload, error) {
	var generic interface{}
	if err := json.Unmarshal(body, &generic); err != nil {
		return models.ForecastPayload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if isFalsy(generic) {
		return models.ForecastPayload{}, ErrEmptyPayload
	}

	var payload models.ForecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return models.ForecastPayload{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return payload, nil
}

func isFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case float64:
		return t == 0
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case map[string]interface{}:
		return len(t) == 0
	}
	return false
}

func (c *OpenWeatherClient) buildRequest(ctx context.Context, city string) (*http.Request, error) {
	baseURL, err := url.Parse(c.apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}

	params := baseURL.Query()
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	baseURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if corrID := observability.CorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}
	return req, nil
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
