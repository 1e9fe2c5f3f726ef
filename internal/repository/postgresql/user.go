package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/user"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, name, google_id, branch_id, role, created_at, updated_at`

func (r *userRepositoryImpl) scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &u.BranchID, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return r.scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetByGoogleID implements user.UserRepository.
func (r *userRepositoryImpl) GetByGoogleID(ctx context.Context, googleID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return r.scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = $1`, googleID))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)
	return r.scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, name, google_id, branch_id, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	created, err := r.scanUser(q.QueryRow(ctx, query, u.Email, u.Name, u.GoogleID, u.BranchID, u.Role))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $1, branch_id = $2, role = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, u.Name, u.BranchID, u.Role, u.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user %s: %w", u.ID, err)
	}

	return nil
}
