package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estoquerapido/internal/model"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productSelect = `SELECT id, company_id, name, description, category_id, ean, brand,
	cost_cents, sale_cents, stock, min_stock, image_key, ` + auditCols + ` FROM products`

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	var audit auditRow
	dests := append([]any{
		&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.CategoryID, &p.EAN, &p.Brand,
		&p.CostCents, &p.SaleCents, &p.Stock, &p.MinStock, &p.ImageKey,
	}, audit.dests()...)
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}
	p.Audit = audit.toAudit()
	return &p, nil
}

func (r *ProductRepository) Get(ctx context.Context, companyID string, id string) (*model.Product, error) {
	row := r.pool.QueryRow(ctx, productSelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get product", err)
	}
	return p, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *model.Product) (*model.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	args := append([]any{
		p.ID, p.CompanyID, p.Name, p.Description, p.CategoryID, p.EAN, p.Brand,
		p.CostCents, p.SaleCents, p.Stock, p.MinStock, p.ImageKey,
	}, auditArgs(p.Audit)...)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (id, company_id, name, description, category_id, ean, brand,
		   cost_cents, sale_cents, stock, min_stock, image_key, `+auditCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
		   $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   description = EXCLUDED.description,
		   category_id = EXCLUDED.category_id,
		   ean = EXCLUDED.ean,
		   brand = EXCLUDED.brand,
		   cost_cents = EXCLUDED.cost_cents,
		   sale_cents = EXCLUDED.sale_cents,
		   stock = EXCLUDED.stock,
		   min_stock = EXCLUDED.min_stock,
		   image_key = EXCLUDED.image_key,
		   `+auditUpdateSet,
		args...)
	if err != nil {
		return nil, wrapErr("save product", err)
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, companyID string, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrapErr("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) ListByStatus(ctx context.Context, companyID string, statuses ...model.Status) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx,
		productSelect+` WHERE company_id = $1 AND status = ANY($2) ORDER BY name, id`,
		companyID, statusStrings(statuses))
	if err != nil {
		return nil, wrapErr("list products", err)
	}
	defer rows.Close()

	out := make([]*model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapErr("scan product", err)
		}
		out = append(out, p)
	}
	return out, wrapErr("list products", rows.Err())
}

func (r *ProductRepository) CountByStatus(ctx context.Context, companyID string, status model.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE company_id = $1 AND status = $2`,
		companyID, string(status)).Scan(&count)
	if err != nil {
		return 0, wrapErr("count products", err)
	}
	return count, nil
}

func (r *ProductRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*model.Product, error) {
	rows, err := r.pool.Query(ctx,
		productSelect+` WHERE status = 'DELETED' AND deleted_at <= $1 ORDER BY deleted_at`,
		cutoff)
	if err != nil {
		return nil, wrapErr("list expired products", err)
	}
	defer rows.Close()

	out := make([]*model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrapErr("scan product", err)
		}
		out = append(out, p)
	}
	return out, wrapErr("list expired products", rows.Err())
}
