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

type PaymentMethodRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentMethodRepository(pool *pgxpool.Pool) *PaymentMethodRepository {
	return &PaymentMethodRepository{pool: pool}
}

const paymentMethodSelect = `SELECT id, company_id, name, kind, ` + auditCols + ` FROM payment_methods`

func scanPaymentMethod(row pgx.Row) (*model.PaymentMethod, error) {
	var pm model.PaymentMethod
	var kind string
	var audit auditRow
	dests := append([]any{&pm.ID, &pm.CompanyID, &pm.Name, &kind}, audit.dests()...)
	if err := row.Scan(dests...); err != nil {
		return nil, err
	}
	pm.Kind = model.PaymentKind(kind)
	pm.Audit = audit.toAudit()
	return &pm, nil
}

func (r *PaymentMethodRepository) Get(ctx context.Context, companyID string, id string) (*model.PaymentMethod, error) {
	row := r.pool.QueryRow(ctx, paymentMethodSelect+` WHERE company_id = $1 AND id = $2`, companyID, id)
	pm, err := scanPaymentMethod(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr("get payment method", err)
	}
	return pm, nil
}

func (r *PaymentMethodRepository) Save(ctx context.Context, pm *model.PaymentMethod) (*model.PaymentMethod, error) {
	if pm.ID == "" {
		pm.ID = uuid.NewString()
	}

	args := append([]any{pm.ID, pm.CompanyID, pm.Name, string(pm.Kind)}, auditArgs(pm.Audit)...)
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payment_methods (id, company_id, name, kind, `+auditCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name,
		   kind = EXCLUDED.kind,
		   `+auditUpdateSet,
		args...)
	if err != nil {
		return nil, wrapErr("save payment method", err)
	}
	return pm, nil
}

func (r *PaymentMethodRepository) Delete(ctx context.Context, companyID string, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM payment_methods WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return wrapErr("delete payment method", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *PaymentMethodRepository) ListByStatus(ctx context.Context, companyID string, statuses ...model.Status) ([]*model.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx,
		paymentMethodSelect+` WHERE company_id = $1 AND status = ANY($2) ORDER BY name, id`,
		companyID, statusStrings(statuses))
	if err != nil {
		return nil, wrapErr("list payment methods", err)
	}
	defer rows.Close()

	out := make([]*model.PaymentMethod, 0)
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, wrapErr("scan payment method", err)
		}
		out = append(out, pm)
	}
	return out, wrapErr("list payment methods", rows.Err())
}

func (r *PaymentMethodRepository) CountByStatus(ctx context.Context, companyID string, status model.Status) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM payment_methods WHERE company_id = $1 AND status = $2`,
		companyID, string(status)).Scan(&count)
	if err != nil {
		return 0, wrapErr("count payment methods", err)
	}
	return count, nil
}

func (r *PaymentMethodRepository) ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]*model.PaymentMethod, error) {
	rows, err := r.pool.Query(ctx,
		paymentMethodSelect+` WHERE status = 'DELETED' AND deleted_at <= $1 ORDER BY deleted_at`,
		cutoff)
	if err != nil {
		return nil, wrapErr("list expired payment methods", err)
	}
	defer rows.Close()

	out := make([]*model.PaymentMethod, 0)
	for rows.Next() {
		pm, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, wrapErr("scan payment method", err)
		}
		out = append(out, pm)
	}
	return out, wrapErr("list expired payment methods", rows.Err())
}
