package nursereport

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mustafa551/Rehab-care-backend/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type reportRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &reportRepoPG{pool: pool}
}

func (r *reportRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const reportCols = `id, patient_id, reported_by, date, condition_update, symptoms,
	pain_level, notes, urgency, reviewed_by_doctor, reviewed_at, created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	err := row.Scan(&rep.ID, &rep.PatientID, &rep.ReportedBy, &rep.Date, &rep.ConditionUpdate,
		&rep.Symptoms, &rep.PainLevel, &rep.Notes, &rep.Urgency, &rep.ReviewedByDoctor,
		&rep.ReviewedAt, &rep.CreatedAt, &rep.UpdatedAt)
	return &rep, err
}

func (r *reportRepoPG) Create(ctx context.Context, rep *Report) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO nurse_reports (patient_id, reported_by, date, condition_update,
			symptoms, pain_level, notes, urgency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		rep.PatientID, rep.ReportedBy, rep.Date, rep.ConditionUpdate,
		rep.Symptoms, rep.PainLevel, rep.Notes, rep.Urgency,
	).Scan(&rep.ID, &rep.CreatedAt, &rep.UpdatedAt)
}

func (r *reportRepoPG) GetByID(ctx context.Context, id int64) (*Report, error) {
	return scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM nurse_reports WHERE id = $1`, id))
}

func (r *reportRepoPG) List(ctx context.Context, patientID int64, unreviewedOnly bool, limit, offset int) ([]*Report, int, error) {
	var conds []string
	var args []interface{}
	if patientID != 0 {
		args = append(args, patientID)
		conds = append(conds, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if unreviewedOnly {
		conds = append(conds, "reviewed_by_doctor = FALSE")
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM nurse_reports`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := ` ORDER BY date DESC, created_at DESC`
	if unreviewedOnly {
		order = ` ORDER BY CASE urgency WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, date DESC`
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM nurse_reports%s%s LIMIT $%d OFFSET $%d`,
		reportCols, where, order, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	return items, total, rows.Err()
}

func (r *reportRepoPG) Update(ctx context.Context, rep *Report) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE nurse_reports
		SET condition_update = $2, symptoms = $3, pain_level = $4, notes = $5,
		    urgency = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		rep.ID, rep.ConditionUpdate, rep.Symptoms, rep.PainLevel, rep.Notes, rep.Urgency,
	).Scan(&rep.UpdatedAt)
}

func (r *reportRepoPG) MarkReviewed(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE nurse_reports
		SET reviewed_by_doctor = TRUE, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *reportRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM nurse_reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
