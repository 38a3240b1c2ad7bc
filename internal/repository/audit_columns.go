package repository

import (
	"time"

	"estoquerapido/internal/model"
)

// Lifecycle columns shared by every recyclable table, in the order the
// helpers below expect. Unset transition stamps are stored as NULL.
const auditCols = `status,
	created_at, created_by_id, created_by_name,
	updated_at, updated_by_id, updated_by_name,
	activated_at, activated_by_id, activated_by_name,
	inactivated_at, inactivated_by_id, inactivated_by_name,
	archived_at, archived_by_id, archived_by_name,
	deleted_at, deleted_by_id, deleted_by_name`

const auditColCount = 19

// Upsert tail: creation stamps and company_id are immutable and never updated.
const auditUpdateSet = `status = EXCLUDED.status,
	updated_at = EXCLUDED.updated_at,
	updated_by_id = EXCLUDED.updated_by_id,
	updated_by_name = EXCLUDED.updated_by_name,
	activated_at = EXCLUDED.activated_at,
	activated_by_id = EXCLUDED.activated_by_id,
	activated_by_name = EXCLUDED.activated_by_name,
	inactivated_at = EXCLUDED.inactivated_at,
	inactivated_by_id = EXCLUDED.inactivated_by_id,
	inactivated_by_name = EXCLUDED.inactivated_by_name,
	archived_at = EXCLUDED.archived_at,
	archived_by_id = EXCLUDED.archived_by_id,
	archived_by_name = EXCLUDED.archived_by_name,
	deleted_at = EXCLUDED.deleted_at,
	deleted_by_id = EXCLUDED.deleted_by_id,
	deleted_by_name = EXCLUDED.deleted_by_name`

// auditArgs flattens an Audit into the 19 insert arguments matching auditCols.
func auditArgs(a model.Audit) []any {
	args := make([]any, 0, auditColCount)
	args = append(args, string(a.Status))
	args = append(args, a.Created.At, a.Created.ByID, a.Created.ByName)
	args = append(args, a.Updated.At, a.Updated.ByID, a.Updated.ByName)
	for _, stamp := range []model.Stamp{a.Activated, a.Inactivated, a.Archived, a.Deleted} {
		if stamp.IsZero() {
			args = append(args, nil, nil, nil)
			continue
		}
		args = append(args, stamp.At, stamp.ByID, stamp.ByName)
	}
	return args
}

// auditRow is the scan target for auditCols.
type auditRow struct {
	status                             string
	createdAt, updatedAt               time.Time
	createdByID, createdByName         string
	updatedByID, updatedByName         string
	activatedAt, inactivatedAt         *time.Time
	archivedAt, deletedAt              *time.Time
	activatedByID, activatedByName     *string
	inactivatedByID, inactivatedByName *string
	archivedByID, archivedByName       *string
	deletedByID, deletedByName         *string
}

func (r *auditRow) dests() []any {
	return []any{
		&r.status,
		&r.createdAt, &r.createdByID, &r.createdByName,
		&r.updatedAt, &r.updatedByID, &r.updatedByName,
		&r.activatedAt, &r.activatedByID, &r.activatedByName,
		&r.inactivatedAt, &r.inactivatedByID, &r.inactivatedByName,
		&r.archivedAt, &r.archivedByID, &r.archivedByName,
		&r.deletedAt, &r.deletedByID, &r.deletedByName,
	}
}

func (r *auditRow) toAudit() model.Audit {
	return model.Audit{
		Status:      model.Status(r.status),
		Created:     model.Stamp{At: r.createdAt.UTC(), ByID: r.createdByID, ByName: r.createdByName},
		Updated:     model.Stamp{At: r.updatedAt.UTC(), ByID: r.updatedByID, ByName: r.updatedByName},
		Activated:   optionalStamp(r.activatedAt, r.activatedByID, r.activatedByName),
		Inactivated: optionalStamp(r.inactivatedAt, r.inactivatedByID, r.inactivatedByName),
		Archived:    optionalStamp(r.archivedAt, r.archivedByID, r.archivedByName),
		Deleted:     optionalStamp(r.deletedAt, r.deletedByID, r.deletedByName),
	}
}

func optionalStamp(at *time.Time, byID *string, byName *string) model.Stamp {
	if at == nil {
		return model.Stamp{}
	}
	stamp := model.Stamp{At: at.UTC()}
	if byID != nil {
		stamp.ByID = *byID
	}
	if byName != nil {
		stamp.ByName = *byName
	}
	return stamp
}

// statusStrings converts statuses for use with = ANY($n).
func statusStrings(statuses []model.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}
