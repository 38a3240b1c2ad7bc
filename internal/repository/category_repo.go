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

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categorySelect = `SELECT id, company_id, name, description, ` + auditCols + ` FROM categories`

func scanCategory(row pgx.Row) (*model.Category, error) {
	var c model.Category
	var audit auditRow
	dests := append([]any{&c.ID, &c.CompanyID, &c.Name, &c.Description}, audit.dests()...)
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}
	c.Audit = audit.toAudit()
	return &c, nil
}

func (r *CategoryRepository) Get(ctx context.Context, companyID string, id string) (*model.Category, error) {
	row := r.pool.QueryRow(ctx, categorySelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
	c, err := scanCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get category", err)
	}
	return c, nil
}

func (r *CategoryRepository) Save(ctx context.Context, c *model.Category) (*model.Category, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	args := append([]any{c.ID, c.CompanyID, c.Name, c.Description}, auditArgs(c.Audit)...)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, company_id, name, description, `+auditCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   description = EXCLUDED.description,
		   `+auditUpdateSet,
		args...)
	if err != nil {
		return nil, wrapErr("save category", err)
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, companyID string, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrapErr("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) ListByStatus(ctx context.Context, companyID string, statuses ...model.Status) ([]*model.Category, error) {
	rows, err := r.pool.Query(ctx,
		categorySelect+` WHERE company_id = $1 AND status = ANY($2) ORDER BY name, id`,
		companyID, statusStrings(statuses))
	if err != nil {
		return nil, wrapErr("list categories", err)
	}
	defer rows.Close()

	out := make([]*model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, wrapErr("scan category", err)
		}
		out = append(out, c)
	}
	return out, wrapErr("list categories", rows.Err())
}

func (r *CategoryRepository) CountByStatus(ctx context.Context, companyID string, status model.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE company_id = $1 AND status = $2`,
		companyID, string(status)).Scan(&count)
	if err != nil {
		return 0, wrapErr("count categories", err)
	}
	return count, nil
}

func (r *CategoryRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*model.Category, error) {
	rows, err := r.pool.Query(ctx,
		categorySelect+` WHERE status = 'DELETED' AND deleted_at <= $1 ORDER BY deleted_at`,
		cutoff)
	if err != nil {
		return nil, wrapErr("list expired categories", err)
	}
	defer rows.Close()

	out := make([]*model.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, wrapErr("scan category", err)
		}
		out = append(out, c)
	}
	return out, wrapErr("list expired categories", rows.Err())
}
