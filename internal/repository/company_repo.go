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

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

const companySelect = `SELECT id, company_id, corporate_name, trade_name, cnpj, email, phone,
	city, state, logo_key, ` + auditCols + ` FROM companies`

func scanCompany(row pgx.Row) (*model.Company, error) {
	var c model.Company
	var audit auditRow
	dests := append([]any{
		&c.ID, &c.CompanyID, &c.CorporateName, &c.TradeName, &c.CNPJ, &c.Email, &c.Phone,
		&c.City, &c.State, &c.LogoKey,
	}, audit.dests()...)
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}
	c.Audit = audit.toAudit()
	return &c, nil
}

func (r *CompanyRepository) Get(ctx context.Context, companyID string, id string) (*model.Company, error) {
	row := r.pool.QueryRow(ctx, companySelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
	c, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get company", err)
	}
	return c, nil
}

// Save upserts the company. A company scopes itself: on first persist the
// company_id is set to the assigned id.
func (r *CompanyRepository) Save(ctx context.Context, c *model.Company) (*model.Company, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CompanyID == "" {
		c.CompanyID = c.ID
	}

	args := append([]any{
		c.ID, c.CompanyID, c.CorporateName, c.TradeName, c.CNPJ, c.Email, c.Phone,
		c.City, c.State, c.LogoKey,
	}, auditArgs(c.Audit)...)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO companies (id, company_id, corporate_name, trade_name, cnpj, email, phone,
		   city, state, logo_key, `+auditCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		   $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
		 ON CONFLICT (id) DO UPDATE SET
		   corporate_name = EXCLUDED.corporate_name,
		   trade_name = EXCLUDED.trade_name,
		   cnpj = EXCLUDED.cnpj,
		   email = EXCLUDED.email,
		   phone = EXCLUDED.phone,
		   city = EXCLUDED.city,
		   state = EXCLUDED.state,
		   logo_key = EXCLUDED.logo_key,
		   `+auditUpdateSet,
		args...)
	if err != nil {
		return nil, wrapErr("save company", err)
	}
	return c, nil
}

func (r *CompanyRepository) Delete(ctx context.Context, companyID string, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrapErr("delete company", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) ListByStatus(ctx context.Context, companyID string, statuses ...model.Status) ([]*model.Company, error) {
	rows, err := r.pool.Query(ctx,
		companySelect+` WHERE company_id = $1 AND status = ANY($2) ORDER BY corporate_name, id`,
		companyID, statusStrings(statuses))
	if err != nil {
		return nil, wrapErr("list companies", err)
	}
	defer rows.Close()

	out := make([]*model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, wrapErr("scan company", err)
		}
		out = append(out, c)
	}
	return out, wrapErr("list companies", rows.Err())
}

func (r *CompanyRepository) CountByStatus(ctx context.Context, companyID string, status model.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM companies WHERE company_id = $1 AND status = $2`,
		companyID, string(status)).Scan(&count)
	if err != nil {
		return 0, wrapErr("count companies", err)
	}
	return count, nil
}

func (r *CompanyRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*model.Company, error) {
	rows, err := r.pool.Query(ctx,
		companySelect+` WHERE status = 'DELETED' AND deleted_at <= $1 ORDER BY deleted_at`,
		cutoff)
	if err != nil {
		return nil, wrapErr("list expired companies", err)
	}
	defer rows.Close()

	out := make([]*model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, wrapErr("scan company", err)
		}
		out = append(out, c)
	}
	return out, wrapErr("list expired companies", rows.Err())
}
