package service

import (
	"context"

	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/model"
)

// CategoryService manages product categories.
type CategoryService struct {
	Catalog[*model.Category]
}

func NewCategoryService(catalog Catalog[*model.Category]) *CategoryService {
	return &CategoryService{Catalog: catalog}
}

func (s *CategoryService) Create(ctx context.Context, op lifecycle.Context, payload model.CategoryPayload) (*model.Category, error) {
	if err := requireName(payload.Name); err != nil {
		return nil, err
	}

	return s.create(ctx, op, &model.Category{
		CompanyID:   op.CompanyID,
		Name:        payload.Name,
		Description: payload.Description,
	})
}

func (s *CategoryService) Update(ctx context.Context, op lifecycle.Context, id string, payload model.CategoryPayload) (*model.Category, error) {
	if err := requireName(payload.Name); err != nil {
		return nil, err
	}

	return s.update(ctx, op, id, func(c *model.Category) error {
		c.Name = payload.Name
		c.Description = payload.Description
		return nil
	})
}
