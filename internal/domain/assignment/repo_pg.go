package assignment

import (
	"context"
	"fmt"
	"time"

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

type assignmentRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &assignmentRepoPG{pool: pool}
}

func (r *assignmentRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const assignmentCols = `id, staff_id, patient_id, date, created_at, updated_at`

func scanAssignment(row pgx.Row) (*StaffAssignment, error) {
	var a StaffAssignment
	err := row.Scan(&a.ID, &a.StaffID, &a.PatientID, &a.Date, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *assignmentRepoPG) Insert(ctx context.Context, a *StaffAssignment) error {
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO staff_assignments (staff_id, patient_id, date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		a.StaffID, a.PatientID, Date(a.Date),
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrDuplicateAssignment
	}
	return err
}

func (r *assignmentRepoPG) Get(ctx context.Context, staffID, patientID int64, date time.Time) (*StaffAssignment, error) {
	return scanAssignment(r.conn(ctx).QueryRow(ctx, `
		SELECT `+assignmentCols+` FROM staff_assignments
		WHERE staff_id = $1 AND patient_id = $2 AND date = $3`,
		staffID, patientID, Date(date)))
}

func (r *assignmentRepoPG) queryAssignments(ctx context.Context, sql string, args ...interface{}) ([]*StaffAssignment, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*StaffAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *assignmentRepoPG) ListByDate(ctx context.Context, date time.Time) ([]*StaffAssignment, error) {
	return r.queryAssignments(ctx, `
		SELECT `+assignmentCols+` FROM staff_assignments
		WHERE date = $1
		ORDER BY patient_id, staff_id`, Date(date))
}

func (r *assignmentRepoPG) ListByStaff(ctx context.Context, staffID int64, date *time.Time) ([]*StaffAssignment, error) {
	sql := `SELECT ` + assignmentCols + ` FROM staff_assignments WHERE staff_id = $1`
	args := []interface{}{staffID}
	if date != nil {
		args = append(args, Date(*date))
		sql += fmt.Sprintf(" AND date = $%d", len(args))
	}
	return r.queryAssignments(ctx, sql+` ORDER BY date DESC, patient_id`, args...)
}

func (r *assignmentRepoPG) ListByPatient(ctx context.Context, patientID int64, date *time.Time) ([]*StaffAssignment, error) {
	sql := `SELECT ` + assignmentCols + ` FROM staff_assignments WHERE patient_id = $1`
	args := []interface{}{patientID}
	if date != nil {
		args = append(args, Date(*date))
		sql += fmt.Sprintf(" AND date = $%d", len(args))
	}
	return r.queryAssignments(ctx, sql+` ORDER BY date DESC, staff_id`, args...)
}

func (r *assignmentRepoPG) DeleteNonDoctorForDate(ctx context.Context, date time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		DELETE FROM staff_assignments
		WHERE date = $1
		  AND staff_id IN (SELECT id FROM staff WHERE role != 'doctor')`,
		Date(date))
	return err
}

func (r *assignmentRepoPG) CountForStaffOnDate(ctx context.Context, staffID int64, date time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM staff_assignments
		WHERE staff_id = $1 AND date = $2`,
		staffID, Date(date)).Scan(&n)
	return n, err
}

func (r *assignmentRepoPG) UpsertDoctor(ctx context.Context, d *DoctorAssignment) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO doctor_patient_assignments (doctor_id, patient_id)
		VALUES ($1, $2)
		ON CONFLICT (patient_id)
		DO UPDATE SET doctor_id = EXCLUDED.doctor_id, updated_at = NOW()
		RETURNING id, created_at, updated_at`,
		d.DoctorID, d.PatientID,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *assignmentRepoPG) ListDoctors(ctx context.Context) ([]*DoctorAssignment, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, doctor_id, patient_id, created_at, updated_at
		FROM doctor_patient_assignments
		ORDER BY patient_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*DoctorAssignment
	for rows.Next() {
		var d DoctorAssignment
		if err := rows.Scan(&d.ID, &d.DoctorID, &d.PatientID, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &d)
	}
	return items, rows.Err()
}

func (r *assignmentRepoPG) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, r.pool, fn)
}
