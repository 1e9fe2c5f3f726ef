package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/member"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type memberRepositoryImpl struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) member.MemberRepository {
	return &memberRepositoryImpl{db: db}
}

// Create implements member.MemberRepository.
func (r *memberRepositoryImpl) Create(ctx context.Context, m member.Member) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO members (branch_id, code, full_name, email, phone, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, branch_id, code, full_name, email, phone, active, created_at, updated_at
	`

	var created member.Member
	err := q.QueryRow(ctx, query, m.BranchID, m.Code, m.FullName, m.Email, m.Phone, m.Active).Scan(
		&created.ID, &created.BranchID, &created.Code, &created.FullName,
		&created.Email, &created.Phone, &created.Active, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "members_branch_email_key":
				return member.Member{}, member.ErrEmailExists
			case "members_branch_code_key":
				return member.Member{}, member.ErrCodeExists
			}
		}
		return member.Member{}, fmt.Errorf("failed to create member: %w", err)
	}

	return created, nil
}

// GetByID implements member.MemberRepository.
func (r *memberRepositoryImpl) GetByID(ctx context.Context, id string, branchID string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, code, full_name, email, phone, active, created_at, updated_at
		FROM members
		WHERE id = $1 AND branch_id = $2
	`

	var m member.Member
	err := q.QueryRow(ctx, query, id, branchID).Scan(
		&m.ID, &m.BranchID, &m.Code, &m.FullName, &m.Email, &m.Phone,
		&m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member %s: %w", id, err)
	}

	return m, nil
}

// GetByCode implements member.MemberRepository.
func (r *memberRepositoryImpl) GetByCode(ctx context.Context, code int, branchID string) (member.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, branch_id, code, full_name, email, phone, active, created_at, updated_at
		FROM members
		WHERE code = $1 AND branch_id = $2
	`

	var m member.Member
	err := q.QueryRow(ctx, query, code, branchID).Scan(
		&m.ID, &m.BranchID, &m.Code, &m.FullName, &m.Email, &m.Phone,
		&m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrMemberNotFound
		}
		return member.Member{}, fmt.Errorf("failed to get member by code %d: %w", code, err)
	}

	return m, nil
}

// List implements member.MemberRepository.
func (r *memberRepositoryImpl) List(ctx context.Context, filter member.MemberFilter, branchID string) ([]member.Member, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE branch_id = $1`
	args := []any{branchID}

	if filter.Search != "" {
		if code, err := strconv.Atoi(filter.Search); err == nil {
			args = append(args, code)
			where += fmt.Sprintf(` AND code = $%d`, len(args))
		} else {
			args = append(args, "%"+filter.Search+"%")
			where += fmt.Sprintf(` AND full_name ILIKE $%d`, len(args))
		}
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM members ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT id, branch_id, code, full_name, email, phone, active, created_at, updated_at
		FROM members
		%s
		ORDER BY full_name
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []member.Member
	for rows.Next() {
		var m member.Member
		if err := rows.Scan(&m.ID, &m.BranchID, &m.Code, &m.FullName, &m.Email, &m.Phone, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// Update implements member.MemberRepository.
func (r *memberRepositoryImpl) Update(ctx context.Context, m member.Member) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE members
		SET full_name = $1, email = $2, phone = $3, active = $4, updated_at = NOW()
		WHERE id = $5 AND branch_id = $6
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, m.FullName, m.Email, m.Phone, m.Active, m.ID, m.BranchID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.ErrMemberNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return member.ErrEmailExists
		}
		return fmt.Errorf("failed to update member %s: %w", m.ID, err)
	}

	return nil
}

// Deactivate implements member.MemberRepository.
func (r *memberRepositoryImpl) Deactivate(ctx context.Context, id string, branchID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE members
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND branch_id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, branchID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.ErrMemberNotFound
		}
		return fmt.Errorf("failed to deactivate member %s: %w", id, err)
	}

	return nil
}

// NextCode implements member.MemberRepository.
func (r *memberRepositoryImpl) NextCode(ctx context.Context, branchID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var next int
	err := q.QueryRow(ctx, `SELECT COALESCE(MAX(code), 0) + 1 FROM members WHERE branch_id = $1`, branchID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute next member code: %w", err)
	}

	return next, nil
}
