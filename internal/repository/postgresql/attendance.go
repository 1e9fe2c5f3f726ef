package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/attendance"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// visitRowSelect joins the person behind each record. Members and staff
// share the attendances table, distinguished by person_role.
const visitRowSelect = `
	SELECT a.id, a.branch_id, a.person_id, a.person_role, a.check_in, a.check_out,
		a.created_at, a.updated_at,
		COALESCE(m.full_name, e.full_name), COALESCE(m.code, e.code)
	FROM attendances a
	LEFT JOIN members m ON a.person_role = 'member' AND m.id = a.person_id
	LEFT JOIN employees e ON a.person_role = 'employee' AND e.id = a.person_id
`

// Create implements attendance.AttendanceRepository.
//
// A partial unique index on (branch_id, person_id) WHERE check_out IS NULL
// backs the one-open-session rule, so concurrent check-ins cannot both
// succeed.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (branch_id, person_id, person_role, check_in)
		VALUES ($1, $2, $3, $4)
		RETURNING id, branch_id, person_id, person_role, check_in, check_out, created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query, a.BranchID, a.PersonID, a.Role, a.CheckIn).Scan(
		&created.ID, &created.BranchID, &created.PersonID, &created.Role,
		&created.CheckIn, &created.CheckOut, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string, branchID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, person_id, person_role, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE id = $1 AND branch_id = $2
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, id, branchID).Scan(
		&a.ID, &a.BranchID, &a.PersonID, &a.Role, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance %s: %w", id, err)
	}

	return a, nil
}

// GetOpenByPerson implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetOpenByPerson(ctx context.Context, personID string, branchID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, person_id, person_role, check_in, check_out, created_at, updated_at
		FROM attendances
		WHERE person_id = $1 AND branch_id = $2 AND check_out IS NULL
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, personID, branchID).Scan(
		&a.ID, &a.BranchID, &a.PersonID, &a.Role, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get open attendance for person %s: %w", personID, err)
	}

	return a, nil
}

// ListOpen implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpen(ctx context.Context, branchID string) ([]attendance.VisitRow, error) {
	q := GetQuerier(ctx, r.db)

	query := visitRowSelect + `
		WHERE a.branch_id = $1 AND a.check_out IS NULL
		ORDER BY a.check_in DESC
	`

	rows, err := q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open attendances: %w", err)
	}
	defer rows.Close()

	return scanVisitRows(rows)
}

// ListByRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByRange(ctx context.Context, branchID string, from, to time.Time, limit int) ([]attendance.VisitRow, int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	countQuery := `
		SELECT COUNT(*)
		FROM attendances
		WHERE branch_id = $1 AND check_in >= $2 AND check_in < $3
	`
	if err := q.QueryRow(ctx, countQuery, branchID, from, to).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := visitRowSelect + `
		WHERE a.branch_id = $1 AND a.check_in >= $2 AND a.check_in < $3
		ORDER BY a.check_in DESC
		LIMIT $4
	`

	rows, err := q.Query(ctx, query, branchID, from, to, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	visits, err := scanVisitRows(rows)
	if err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

// CheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CheckOut(ctx context.Context, id string, branchID string, at time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, updated_at = NOW()
		WHERE id = $2 AND branch_id = $3 AND check_out IS NULL
		RETURNING id, branch_id, person_id, person_role, check_in, check_out, created_at, updated_at
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, at, id, branchID).Scan(
		&a.ID, &a.BranchID, &a.PersonID, &a.Role, &a.CheckIn, &a.CheckOut, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing record from an already closed one.
			existing, getErr := r.GetByID(ctx, id, branchID)
			if getErr != nil {
				return attendance.Attendance{}, attendance.ErrAttendanceNotFound
			}
			if !existing.IsOpen() {
				return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
			}
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to check out attendance %s: %w", id, err)
	}

	return a, nil
}

func scanVisitRows(rows pgx.Rows) ([]attendance.VisitRow, error) {
	var visits []attendance.VisitRow
	for rows.Next() {
		var v attendance.VisitRow
		err := rows.Scan(
			&v.ID, &v.BranchID, &v.PersonID, &v.Role, &v.CheckIn, &v.CheckOut,
			&v.CreatedAt, &v.UpdatedAt, &v.PersonName, &v.PersonCode,
		)
		if err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return visits, nil
}
