package service

import (
	"context"

	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/model"
)

// PaymentMethodService manages the ways a sale can be settled.
type PaymentMethodService struct {
	Catalog[*model.PaymentMethod]
}

func NewPaymentMethodService(catalog Catalog[*model.PaymentMethod]) *PaymentMethodService {
	return &PaymentMethodService{Catalog: catalog}
}

func (s *PaymentMethodService) Create(ctx context.Context, op lifecycle.Context, payload model.PaymentMethodPayload) (*model.PaymentMethod, error) {
	if err := requireName(payload.Name); err != nil {
		return nil, err
	}
	kind, err := model.ParsePaymentKind(payload.Kind)
	if err != nil {
		return nil, err
	}

	return s.create(ctx, op, &model.PaymentMethod{
		CompanyID: op.CompanyID,
		Name:      payload.Name,
		Kind:      kind,
	})
}

func (s *PaymentMethodService) Update(ctx context.Context, op lifecycle.Context, id string, payload model.PaymentMethodPayload) (*model.PaymentMethod, error) {
	if err := requireName(payload.Name); err != nil {
		return nil, err
	}
	kind, err := model.ParsePaymentKind(payload.Kind)
	if err != nil {
		return nil, err
	}

	return s.update(ctx, op, id, func(pm *model.PaymentMethod) error {
		pm.Name = payload.Name
		pm.Kind = kind
		return nil
	})
}
