package provider

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
)

const tokenRefreshLeeway = 30 * time.Second

// Client talks to the white-glove delivery provider's API. It holds a
// cached access token guarded by a mutex so concurrent event handlers can
// share one instance safely.
type Client struct {
	baseURL    string
	authURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger

	tokenMu     sync.RWMutex
	token       string
	tokenExpiry time.Time
}

// NewClient builds a provider client.
func NewClient(baseURL, authURL, apiKey string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authURL:    strings.TrimRight(authURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type authRequest struct {
	APIKey string `json:"api_key"`
}

type authResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	} `json:"data"`
}

// Token returns a cached provider access token, fetching a new one if needed.
func (c *Client) Token() (string, error) {
	return c.getToken(false)
}

// RefreshToken forces retrieval of a fresh provider access token.
func (c *Client) RefreshToken() (string, error) {
	return c.getToken(true)
}

func (c *Client) getToken(force bool) (string, error) {
	if !force {
		if token, ok := c.cachedToken(); ok {
			return token, nil
		}
	}

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	// Check again in case another goroutine refreshed while we waited for the lock.
	if !force {
		if token := c.currentTokenLocked(); token != "" {
			return token, nil
		}
	}

	if c.apiKey == "" {
		return "", errors.New("provider API key is not configured")
	}

	body, err := json.Marshal(authRequest{APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("marshal provider auth payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.authURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create provider auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute provider auth request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read provider auth response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("provider auth failed: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var auth authResponse
	if err := json.Unmarshal(respBody, &auth); err != nil {
		return "", fmt.Errorf("unmarshal provider auth response: %w", err)
	}

	if auth.Data.AccessToken == "" {
		return "", errors.New("provider auth response missing access_token")
	}

	c.token = auth.Data.AccessToken
	if auth.Data.ExpiresIn > 0 {
		c.tokenExpiry = time.Now().Add(time.Duration(auth.Data.ExpiresIn) * time.Second)
	} else {
		// Fallback to a short lifetime when expiry is not provided.
		c.tokenExpiry = time.Now().Add(5 * time.Minute)
	}

	return c.token, nil
}

func (c *Client) cachedToken() (string, bool) {
	c.tokenMu.RLock()
	defer c.tokenMu.RUnlock()

	token := c.currentTokenLocked()
	if token == "" {
		return "", false
	}
	return token, true
}

func (c *Client) currentTokenLocked() string {
	if c.token == "" {
		return ""
	}
	if c.tokenExpiry.IsZero() {
		return c.token
	}
	if time.Now().Add(tokenRefreshLeeway).After(c.tokenExpiry) {
		return ""
	}
	return c.token
}

// SubmitOrder POSTs the assembled order document to the provider.
func (c *Client) SubmitOrder(order *models.DownstreamOrder) (*models.SubmissionResult, error) {
	body, err := c.do(http.MethodPost, "orders", order)
	if err != nil {
		return nil, err
	}

	var result models.SubmissionResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal submission response: %w", err)
	}
	if result.OrderID == "" {
		return nil, errors.New("submission response missing order_id")
	}
	return &result, nil
}

// RateRequest is the quote input the provider expects for one service level.
type RateRequest struct {
	ServiceLevel   string     `json:"service_level"`
	OriginZip      string     `json:"origin_zip"`
	DestinationZip string     `json:"destination_zip"`
	Currency       string     `json:"currency"`
	Items          []RateItem `json:"items"`
}

// RateItem is one cart line in a rate request.
type RateItem struct {
	ProductID int64   `json:"product_id"`
	Grams     float64 `json:"grams"`
	Quantity  int     `json:"quantity"`
}

// QuoteRate asks the provider for the raw rate of one service level.
func (c *Client) QuoteRate(req RateRequest) (*models.RateResult, error) {
	body, err := c.do(http.MethodPost, "rates", req)
	if err != nil {
		return nil, err
	}

	var result models.RateResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal rate response: %w", err)
	}
	return &result, nil
}

// do performs an authenticated provider call, retrying once on 401 with a
// refreshed token.
func (c *Client) do(method, path string, payload any) ([]byte, error) {
	token, err := c.Token()
	if err != nil {
		return nil, err
	}

	resp, body, err := c.doOnce(method, path, payload, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Token likely expired; refresh and retry once.
		token, err = c.RefreshToken()
		if err != nil {
			return nil, err
		}
		resp, body, err = c.doOnce(method, path, payload, token)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider %s %s failed: status %d, body: %s", method, path, resp.StatusCode, string(body))
	}

	return body, nil
}

func (c *Client) doOnce(method, path string, payload any, token string) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		marshaled, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal provider request body: %w", err)
		}
		bodyReader = bytes.NewReader(marshaled)
	}

	req, err := http.NewRequest(method, c.baseURL+"/"+strings.TrimLeft(path, "/"), bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("create provider request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("execute provider request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read provider response: %w", err)
	}

	return resp, respBody, nil
}
