// Package enrichment holds best-effort clients for external registries: the
// CNPJ company registry and the EAN barcode catalog.
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

// CompanyRegistration is what the CNPJ registry knows about a company.
type CompanyRegistration struct {
	CorporateName string `json:"razao_social"`
	TradeName     string `json:"nome_fantasia"`
	Email         string `json:"email"`
	Phone         string `json:"ddd_telefone_1"`
	City          string `json:"municipio"`
	State         string `json:"uf"`
}

type CNPJClient struct {
	baseURL string
	client  *http.Client
}

func NewCNPJClient(baseURL string, timeout time.Duration) *CNPJClient {
	return &CNPJClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NormalizeCNPJ strips formatting punctuation from a CNPJ.
func NormalizeCNPJ(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (c *CNPJClient) Lookup(ctx context.Context, cnpj string) (CompanyRegistration, error) {
	normalized := NormalizeCNPJ(cnpj)
	if len(normalized) != 14 {
		return CompanyRegistration{}, fmt.Errorf("%w: CNPJ must have 14 digits", model.ErrInvalidInput)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+normalized, nil)
	if err != nil {
		return CompanyRegistration{}, fmt.Errorf("build CNPJ request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return CompanyRegistration{}, fmt.Errorf("cnpj lookup: %w: %v", model.ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus("cnpj lookup", resp.StatusCode); err != nil {
		return CompanyRegistration{}, err
	}

	var reg CompanyRegistration
	if err := json.NewDecoder(resp.Body).Decode(&reg); err != nil {
		return CompanyRegistration{}, fmt.Errorf("cnpj lookup: %w: decode response: %v", model.ErrPermanent, err)
	}
	return reg, nil
}

func classifyStatus(op string, status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, model.ErrNotFound)
	case status >= 500:
		return fmt.Errorf("%s: %w: upstream returned %d", op, model.ErrTransient, status)
	default:
		return fmt.Errorf("%s: %w: upstream returned %d", op, model.ErrPermanent, status)
	}
}
