package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"estoquerapido/internal/bucket"
	"estoquerapido/internal/enrichment"
	"estoquerapido/internal/lifecycle"
	"estoquerapido/internal/model"
)

// ProductService manages the product catalog: EAN enrichment on create and
// the product image side object in the bucket.
type ProductService struct {
	Catalog[*model.Product]
	barcodes *enrichment.EANClient
	store    bucket.Bucket
}

func NewProductService(catalog Catalog[*model.Product], barcodes *enrichment.EANClient, store bucket.Bucket) *ProductService {
	return &ProductService{Catalog: catalog, barcodes: barcodes, store: store}
}

func validateProduct(p model.ProductPayload) error {
	if err := requireName(p.Name); err != nil {
		return err
	}
	if p.CostCents < 0 || p.SaleCents < 0 {
		return fmt.Errorf("%w: prices must not be negative", model.ErrInvalidInput)
	}
	if p.Stock < 0 || p.MinStock < 0 {
		return fmt.Errorf("%w: stock must not be negative", model.ErrInvalidInput)
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, op lifecycle.Context, payload model.ProductPayload) (*model.Product, error) {
	product := &model.Product{
		CompanyID:   op.CompanyID,
		Name:        payload.Name,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		EAN:         payload.EAN,
		Brand:       payload.Brand,
		CostCents:   payload.CostCents,
		SaleCents:   payload.SaleCents,
		Stock:       payload.Stock,
		MinStock:    payload.MinStock,
	}
	// Enrichment may fill the name from the barcode catalog, so validation
	// happens after it.
	s.enrich(ctx, product)

	enriched := payload
	enriched.Name = product.Name
	if err := validateProduct(enriched); err != nil {
		return nil, err
	}

	return s.create(ctx, op, product)
}

func (s *ProductService) Update(ctx context.Context, op lifecycle.Context, id string, payload model.ProductPayload) (*model.Product, error) {
	if err := validateProduct(payload); err != nil {
		return nil, err
	}

	return s.update(ctx, op, id, func(p *model.Product) error {
		p.Name = payload.Name
		p.Description = payload.Description
		p.CategoryID = payload.CategoryID
		p.EAN = payload.EAN
		p.Brand = payload.Brand
		p.CostCents = payload.CostCents
		p.SaleCents = payload.SaleCents
		p.Stock = payload.Stock
		p.MinStock = payload.MinStock
		return nil
	})
}

// AttachImage stores the product image in the bucket and records its key on
// the product.
func (s *ProductService) AttachImage(ctx context.Context, op lifecycle.Context, id string, image io.Reader) (*model.Product, error) {
	if s.store == nil {
		return nil, fmt.Errorf("%w: no object storage configured", model.ErrPermanent)
	}

	key := fmt.Sprintf("%s/products/%s/image", op.CompanyID, id)
	if err := s.store.Put(ctx, key, image); err != nil {
		return nil, fmt.Errorf("%w: store product image: %v", model.ErrTransient, err)
	}

	return s.update(ctx, op, id, func(p *model.Product) error {
		p.ImageKey = key
		return nil
	})
}

// LowStock lists the listable products currently under their minimum.
func (s *ProductService) LowStock(ctx context.Context, companyID string) ([]*model.Product, error) {
	products, err := s.List(ctx, companyID)
	if err != nil {
		return nil, err
	}

	low := products[:0:0]
	for _, p := range products {
		if p.BelowMinimum() {
			low = append(low, p)
		}
	}
	return low, nil
}

// enrich fills empty product fields from the barcode catalog. A failed lookup
// never blocks creation.
func (s *ProductService) enrich(ctx context.Context, p *model.Product) {
	if s.barcodes == nil || p.EAN == "" {
		return
	}

	info, err := s.barcodes.Lookup(ctx, p.EAN)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			slog.Warn("ean lookup failed", "ean", p.EAN, "error", err)
		}
		return
	}

	if p.Name == "" {
		p.Name = info.Description
	}
	if p.Brand == "" {
		p.Brand = info.Brand.Name
	}
	if info.GTIN != 0 {
		p.EAN = strconv.FormatInt(info.GTIN, 10)
	}
}
