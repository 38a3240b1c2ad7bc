package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"estoquerapido/internal/model"
)

// ProductInfo is what the barcode catalog knows about a GTIN/EAN.
type ProductInfo struct {
	Description string `json:"description"`
	Brand       struct {
		Name string `json:"name"`
	} `json:"brand"`
	GTIN int64 `json:"gtin"`
}

type EANClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewEANClient(baseURL string, token string, timeout time.Duration) *EANClient {
	return &EANClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *EANClient) Lookup(ctx context.Context, ean string) (ProductInfo, error) {
	trimmed := strings.TrimSpace(ean)
	if trimmed == "" {
		return ProductInfo{}, fmt.Errorf("%w: EAN is required", model.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+trimmed+".json", nil)
	if err != nil {
		return ProductInfo{}, fmt.Errorf("build EAN request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("X-Cosmos-Token", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return ProductInfo{}, fmt.Errorf("ean lookup: %w: %v", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus("ean lookup", resp.StatusCode); err != nil {
		return ProductInfo{}, err
	}

	var info ProductInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ProductInfo{}, fmt.Errorf("ean lookup: %w: decode response: %v", model.ErrPermanent, err)
	}
	return info, nil
}
