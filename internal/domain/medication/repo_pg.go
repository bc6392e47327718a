package medication

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

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const medicationCols = `id, patient_id, prescribed_by, medication_name, dosage, frequency,
	route, start_date, end_date, notes, is_active, created_at, updated_at`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	err := row.Scan(&m.ID, &m.PatientID, &m.PrescribedBy, &m.MedicationName, &m.Dosage,
		&m.Frequency, &m.Route, &m.StartDate, &m.EndDate, &m.Notes, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *medicationRepoPG) Create(ctx context.Context, m *Medication) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medications (patient_id, prescribed_by, medication_name, dosage,
			frequency, route, start_date, end_date, notes, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING id, created_at, updated_at`,
		m.PatientID, m.PrescribedBy, m.MedicationName, m.Dosage, m.Frequency,
		m.Route, m.StartDate, m.EndDate, m.Notes,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *medicationRepoPG) GetByID(ctx context.Context, id int64) (*Medication, error) {
	return scanMedication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+medicationCols+` FROM medications WHERE id = $1`, id))
}

func (r *medicationRepoPG) List(ctx context.Context, patientID int64, limit, offset int) ([]*Medication, int, error) {
	where := ` WHERE is_active = TRUE`
	var args []interface{}
	if patientID != 0 {
		args = append(args, patientID)
		where += fmt.Sprintf(" AND patient_id = $%d", len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medications`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM medications%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		medicationCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Medication
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *medicationRepoPG) Update(ctx context.Context, m *Medication) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE medications
		SET medication_name = $2, dosage = $3, frequency = $4, route = $5,
		    start_date = $6, end_date = $7, notes = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		m.ID, m.MedicationName, m.Dosage, m.Frequency, m.Route,
		m.StartDate, m.EndDate, m.Notes, m.IsActive,
	).Scan(&m.UpdatedAt)
}

func (r *medicationRepoPG) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE medications SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
