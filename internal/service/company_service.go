package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"estoquerapido/internal/enrichment"
	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/mailer"
	"estoquerapido/internal/model"
)

// CompanyService manages company registrations. On create it fills the blanks
// from the CNPJ registry and sends a welcome mail when an address is known.
type CompanyService struct {
	Catalog[*model.Company]
	registry *enrichment.CNPJClient
	mail     *mailer.Mailer
}

func NewCompanyService(catalog Catalog[*model.Company], registry *enrichment.CNPJClient, mail *mailer.Mailer) *CompanyService {
	return &CompanyService{Catalog: catalog, registry: registry, mail: mail}
}

func (s *CompanyService) Create(ctx context.Context, op lifecycle.Context, payload model.CompanyPayload) (*model.Company, error) {
	if payload.CorporateName == "" {
		return nil, fmt.Errorf("%w: corporate_name is required", model.ErrInvalidInput)
	}

	// A company is its own tenant scope, so the id is assigned up front and
	// doubles as the scope of the create operation.
	id := uuid.NewString()
	op.CompanyID = id

	company := &model.Company{
		ID:            id,
		CompanyID:     id,
		CorporateName: payload.CorporateName,
		TradeName:     payload.TradeName,
		CNPJ:          enrichment.NormalizeCNPJ(payload.CNPJ),
		Email:         payload.Email,
		Phone:         payload.Phone,
		City:          payload.City,
		State:         payload.State,
		LogoKey:       payload.LogoKey,
	}
	s.enrich(ctx, company)

	saved, err := s.create(ctx, op, company)
	if err != nil {
		return nil, err
	}

	if s.mail != nil && s.mail.Enabled() && saved.Email != "" {
		if err := s.mail.Send(saved.Email, "Welcome to EstoqueRápido",
			fmt.Sprintf("<p>Hi %s,</p><p>Your company is registered and ready to sell.</p>", saved.CorporateName)); err != nil {
			slog.Warn("welcome mail not sent", "company_id", saved.ID, "error", err)
		}
	}
	return saved, nil
}

func (s *CompanyService) Update(ctx context.Context, op lifecycle.Context, id string, payload model.CompanyPayload) (*model.Company, error) {
	if payload.CorporateName == "" {
		return nil, fmt.Errorf("%w: corporate_name is required", model.ErrInvalidInput)
	}

	return s.update(ctx, op, id, func(c *model.Company) error {
		c.CorporateName = payload.CorporateName
		c.TradeName = payload.TradeName
		c.CNPJ = enrichment.NormalizeCNPJ(payload.CNPJ)
		c.Email = payload.Email
		c.Phone = payload.Phone
		c.City = payload.City
		c.State = payload.State
		if payload.LogoKey != "" {
			c.LogoKey = payload.LogoKey
		}
		return nil
	})
}

// enrich fills empty company fields from the public registry. Lookup failures
// only cost the enrichment, never the registration.
func (s *CompanyService) enrich(ctx context.Context, c *model.Company) {
	if s.registry == nil || c.CNPJ == "" {
		return
	}

	reg, err := s.registry.Lookup(ctx, c.CNPJ)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			slog.Warn("cnpj lookup failed", "cnpj", c.CNPJ, "error", err)
		}
		return
	}

	if c.TradeName == "" {
		c.TradeName = reg.TradeName
	}
	if c.Email == "" {
		c.Email = reg.Email
	}
	if c.Phone == "" {
		c.Phone = reg.Phone
	}
	if c.City == "" {
		c.City = reg.City
	}
	if c.State == "" {
		c.State = reg.State
	}
}
