package condition

import (
	"context"
	"fmt"

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

type conditionRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &conditionRepoPG{pool: pool}
}

func (r *conditionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const conditionCols = `id, patient_id, assessed_by, date, condition, severity, notes,
	discharge_recommendation, discharge_notes, created_at, updated_at`

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	err := row.Scan(&a.ID, &a.PatientID, &a.AssessedBy, &a.Date, &a.Condition, &a.Severity,
		&a.Notes, &a.DischargeRecommendation, &a.DischargeNotes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *conditionRepoPG) Create(ctx context.Context, a *Assessment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient_conditions (patient_id, assessed_by, date, condition,
			severity, notes, discharge_recommendation, discharge_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		a.PatientID, a.AssessedBy, a.Date, a.Condition, a.Severity, a.Notes,
		a.DischargeRecommendation, a.DischargeNotes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *conditionRepoPG) GetByID(ctx context.Context, id int64) (*Assessment, error) {
	return scanAssessment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+conditionCols+` FROM patient_conditions WHERE id = $1`, id))
}

func (r *conditionRepoPG) GetLatestForPatient(ctx context.Context, patientID int64) (*Assessment, error) {
	return scanAssessment(r.conn(ctx).QueryRow(ctx,
		`SELECT `+conditionCols+` FROM patient_conditions
		 WHERE patient_id = $1 ORDER BY updated_at DESC LIMIT 1`, patientID))
}

func (r *conditionRepoPG) List(ctx context.Context, patientID int64, limit, offset int) ([]*Assessment, int, error) {
	where := ""
	var args []interface{}
	if patientID != 0 {
		args = append(args, patientID)
		where = " WHERE patient_id = $1"
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient_conditions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM patient_conditions%s ORDER BY updated_at DESC LIMIT $%d OFFSET $%d`,
		conditionCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *conditionRepoPG) Update(ctx context.Context, a *Assessment) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE patient_conditions
		SET condition = $2, severity = $3, notes = $4,
		    discharge_recommendation = $5, discharge_notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		a.ID, a.Condition, a.Severity, a.Notes, a.DischargeRecommendation, a.DischargeNotes,
	).Scan(&a.UpdatedAt)
}

func (r *conditionRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient_conditions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
