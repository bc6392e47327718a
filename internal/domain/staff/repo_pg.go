package staff

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

type staffRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &staffRepoPG{pool: pool}
}

func (r *staffRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const staffCols = `id, name, role, email, phone, is_on_duty, photo_url, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.Phone,
		&m.IsOnDuty, &m.PhotoURL, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *staffRepoPG) Create(ctx context.Context, m *Member) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO staff (name, role, email, phone, is_on_duty, photo_url)
		VALUES ($1, $2, LOWER($3), $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		m.Name, m.Role, m.Email, m.Phone, m.IsOnDuty, m.PhotoURL,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (r *staffRepoPG) GetByID(ctx context.Context, id int64) (*Member, error) {
	return scanMember(r.conn(ctx).QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff WHERE id = $1`, id))
}

func (r *staffRepoPG) GetByEmail(ctx context.Context, email string) (*Member, error) {
	return scanMember(r.conn(ctx).QueryRow(ctx,
		`SELECT `+staffCols+` FROM staff WHERE email = LOWER($1)`, email))
}

func (r *staffRepoPG) Update(ctx context.Context, m *Member) error {
	return r.conn(ctx).QueryRow(ctx, `
		UPDATE staff
		SET name = $2, role = $3, email = LOWER($4), phone = $5,
		    is_on_duty = $6, photo_url = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		m.ID, m.Name, m.Role, m.Email, m.Phone, m.IsOnDuty, m.PhotoURL,
	).Scan(&m.UpdatedAt)
}

func (r *staffRepoPG) Delete(ctx context.Context, id int64) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Member, int, error) {
	var conds []string
	var args []interface{}

	if filter.OnDutyOnly {
		conds = append(conds, "is_on_duty = TRUE")
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.ExcludeRole != "" {
		args = append(args, filter.ExcludeRole)
		conds = append(conds, fmt.Sprintf("role != $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM staff`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT %s FROM staff%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		staffCols, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

func (r *staffRepoPG) ListForRotation(ctx context.Context) ([]*Member, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+staffCols+` FROM staff
		WHERE is_on_duty = TRUE
		ORDER BY CASE WHEN role = 'doctor' THEN 1 ELSE 2 END, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
