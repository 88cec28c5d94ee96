package digiflazz

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.digiflazz.com/v1"

// DefaultTimeout bounds the price-list call. The upstream gives no SLA, so
// a hung request must not stall the storefront indefinitely.
const DefaultTimeout = 15 * time.Second

var ErrEmptyResponse = errors.New("digiflazz: empty price list response")

// Product is one row of the upstream price list.
type Product struct {
	Category     string `json:"category"`
	Brand        string `json:"brand"`
	BuyerSkuCode string `json:"buyer_sku_code"`
	ProductName  string `json:"product_name"`
	Price        int64  `json:"price"`
}

// Client talks to the Digiflazz v1 API. Zero-value fields fall back to
// DefaultBaseURL and a client with DefaultTimeout.
type Client struct {
	BaseURL    string
	Username   string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(username, apiKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Username:   username,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

type priceListRequest struct {
	Cmd      string `json:"cmd"`
	Username string `json:"username"`
	Sign     string `json:"sign"`
}

type priceListResponse struct {
	RC      string    `json:"rc"`
	Message string    `json:"message"`
	Data    []Product `json:"data"`
}

// Sign computes the request signature the API expects:
// md5(username + apiKey + action), hex encoded.
func Sign(username, apiKey, action string) string {
	sum := md5.Sum([]byte(username + apiKey + action))
	return hex.EncodeToString(sum[:])
}

// PriceList fetches the full prepaid price list.
func (c *Client) PriceList(ctx context.Context) ([]Product, error) {
	body, err := json.Marshal(priceListRequest{
		Cmd:      "prepaid",
		Username: c.Username,
		Sign:     Sign(c.Username, c.APIKey, "pricelist"),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/price-list", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("digiflazz: price list request failed: %s", resp.Status)
	}

	var result priceListResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("digiflazz: decode price list: %w", err)
	}

	if result.RC != "00" {
		if result.Message == "" {
			result.Message = "unknown error"
		}
		return nil, fmt.Errorf("digiflazz: api error rc=%s: %s", result.RC, result.Message)
	}
	if result.Data == nil {
		return nil, ErrEmptyResponse
	}

	return result.Data, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return c.HTTPClient
}
