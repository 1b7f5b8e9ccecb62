package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/whiteglove/internal/models"
)

// ErrNotFound reports that the requested platform resource does not exist,
// as opposed to the lookup itself failing.
var ErrNotFound = errors.New("platform resource not found")

// Client performs read-only lookups against the e-commerce platform's admin
// API on behalf of a tenant. One instance is shared by all components; the
// per-tenant shop domain and access token travel in the Session argument.
type Client struct {
	baseFormat string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient builds a platform client. baseFormat contains a single %s
// placeholder for the tenant's shop domain.
func NewClient(baseFormat string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		baseFormat: strings.TrimRight(baseFormat, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type locationResponse struct {
	Location models.Location `json:"location"`
}

type locationsResponse struct {
	Locations []models.Location `json:"locations"`
}

type productResponse struct {
	Product struct {
		ID   int64  `json:"id"`
		Tags string `json:"tags"`
	} `json:"product"`
}

// Location fetches one registered location by id.
func (c *Client) Location(session models.Session, id int64) (*models.Location, error) {
	body, err := c.get(session, fmt.Sprintf("locations/%d.json", id), nil)
	if err != nil {
		return nil, err
	}

	var resp locationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal location response: %w", err)
	}
	if resp.Location.ID == 0 {
		return nil, errors.New("location response missing id")
	}
	return &resp.Location, nil
}

// Locations returns up to limit of the tenant's registered locations.
func (c *Client) Locations(session models.Session, limit int) ([]models.Location, error) {
	if limit <= 0 {
		limit = 10
	}

	body, err := c.get(session, "locations.json", map[string]string{
		"limit": strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	var resp locationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal locations response: %w", err)
	}
	return resp.Locations, nil
}

// ProductTags returns the tag set of one product. The platform stores tags
// as a single comma-separated string; callers get them split and trimmed.
func (c *Client) ProductTags(session models.Session, productID int64) ([]string, error) {
	body, err := c.get(session, fmt.Sprintf("products/%d.json", productID), map[string]string{
		"fields": "id,tags",
	})
	if err != nil {
		return nil, err
	}

	var resp productResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal product response: %w", err)
	}
	if resp.Product.ID == 0 {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	parts := strings.Split(resp.Product.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags, nil
}

func (c *Client) get(session models.Session, path string, query map[string]string) ([]byte, error) {
	if session.Shop == "" {
		return nil, errors.New("session shop domain is required")
	}

	base := fmt.Sprintf(c.baseFormat, session.Shop)
	u, err := url.Parse(base + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse platform URL: %w", err)
	}

	if len(query) > 0 {
		values := u.Query()
		for k, v := range query {
			values.Set(k, v)
		}
		u.RawQuery = values.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create platform request: %w", err)
	}
	req.Header.Set("X-Platform-Access-Token", session.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute platform request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read platform response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("platform request %s: %w", path, ErrNotFound)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("platform request %s failed: status %d, body: %s", path, resp.StatusCode, string(body))
	}

	return body, nil
}
