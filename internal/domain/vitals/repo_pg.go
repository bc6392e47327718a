package vitals

import (
	"context"
	"fmt"
	"strings"
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

type vitalsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &vitalsRepoPG{pool: pool}
}

func (r *vitalsRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const vitalsCols = `id, patient_id, recorded_by, recorded_at, blood_pressure, heart_rate,
	temperature, oxygen_saturation, respiratory_rate, notes, created_at, updated_at`

func scanReading(row pgx.Row) (*Reading, error) {
	var v Reading
	err := row.Scan(&v.ID, &v.PatientID, &v.RecordedBy, &v.RecordedAt, &v.BloodPressure,
		&v.HeartRate, &v.Temperature, &v.OxygenSaturation, &v.RespiratoryRate, &v.Notes,
		&v.CreatedAt, &v.UpdatedAt)
	return &v, err
}

func (r *vitalsRepoPG) Create(ctx context.Context, v *Reading) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO vital_signs (patient_id, recorded_by, recorded_at, blood_pressure,
			heart_rate, temperature, oxygen_saturation, respiratory_rate, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		v.PatientID, v.RecordedBy, v.RecordedAt, v.BloodPressure, v.HeartRate,
		v.Temperature, v.OxygenSaturation, v.RespiratoryRate, v.Notes,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *vitalsRepoPG) GetByID(ctx context.Context, id int64) (*Reading, error) {
	return scanReading(r.conn(ctx).QueryRow(ctx,
		`SELECT `+vitalsCols+` FROM vital_signs WHERE id = $1`, id))
}

func (r *vitalsRepoPG) List(ctx context.Context, patientID int64, date *time.Time, limit, offset int) ([]*Reading, int, error) {
	var conds []string
	var args []interface{}
	if patientID != 0 {
		args = append(args, patientID)
		conds = append(conds, fmt.Sprintf("patient_id = $%d", len(args)))
	}
	if date != nil {
		args = append(args, *date)
		conds = append(conds, fmt.Sprintf("recorded_at::date = $%d::date", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM vital_signs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM vital_signs%s ORDER BY recorded_at DESC LIMIT $%d OFFSET $%d`,
		vitalsCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Reading
	for rows.Next() {
		v, err := scanReading(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *vitalsRepoPG) Update(ctx context.Context, v *Reading) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE vital_signs
		SET recorded_at = $2, blood_pressure = $3, heart_rate = $4, temperature = $5,
		    oxygen_saturation = $6, respiratory_rate = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		v.ID, v.RecordedAt, v.BloodPressure, v.HeartRate, v.Temperature,
		v.OxygenSaturation, v.RespiratoryRate, v.Notes,
	).Scan(&v.UpdatedAt)
}

func (r *vitalsRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM vital_signs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
