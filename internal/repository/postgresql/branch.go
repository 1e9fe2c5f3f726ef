package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/master/branch"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type branchRepositoryImpl struct {
	db *database.DB
}

func NewBranchRepository(db *database.DB) branch.BranchRepository {
	return &branchRepositoryImpl{db: db}
}

// Create implements branch.BranchRepository.
func (r *branchRepositoryImpl) Create(ctx context.Context, b branch.Branch) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO branches (name, address, timezone, kiosk_pin_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, timezone, kiosk_pin_hash, created_at, updated_at
	`

	var created branch.Branch
	err := q.QueryRow(ctx, query, b.Name, b.Address, b.Timezone, b.KioskPINHash).Scan(
		&created.ID, &created.Name, &created.Address, &created.Timezone,
		&created.KioskPINHash, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return branch.Branch{}, fmt.Errorf("failed to create branch: %w", err)
	}

	return created, nil
}

// GetByID implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetByID(ctx context.Context, id string) (branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, timezone, kiosk_pin_hash, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var b branch.Branch
	err := q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Address, &b.Timezone, &b.KioskPINHash, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.Branch{}, branch.ErrBranchNotFound
		}
		return branch.Branch{}, fmt.Errorf("failed to get branch %s: %w", id, err)
	}

	return b, nil
}

// List implements branch.BranchRepository.
func (r *branchRepositoryImpl) List(ctx context.Context) ([]branch.Branch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, address, timezone, kiosk_pin_hash, created_at, updated_at
		FROM branches
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	var branches []branch.Branch
	for rows.Next() {
		var b branch.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Timezone, &b.KioskPINHash, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return branches, nil
}

// Update implements branch.BranchRepository.
func (r *branchRepositoryImpl) Update(ctx context.Context, b branch.Branch) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches
		SET name = $1, address = $2, timezone = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, b.Name, b.Address, b.Timezone, b.ID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.ErrBranchNotFound
		}
		return fmt.Errorf("failed to update branch %s: %w", b.ID, err)
	}

	return nil
}

// GetTimezone implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetTimezone(ctx context.Context, id string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var tz string
	err := q.QueryRow(ctx, `SELECT timezone FROM branches WHERE id = $1`, id).Scan(&tz)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", branch.ErrBranchNotFound
		}
		return "", fmt.Errorf("failed to get branch timezone: %w", err)
	}

	return tz, nil
}

// GetKioskPINHash implements branch.BranchRepository.
func (r *branchRepositoryImpl) GetKioskPINHash(ctx context.Context, id string) (string, error) {
	q := GetQuerier(ctx, r.db)

	var hash string
	err := q.QueryRow(ctx, `SELECT kiosk_pin_hash FROM branches WHERE id = $1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", branch.ErrBranchNotFound
		}
		return "", fmt.Errorf("failed to get kiosk pin hash: %w", err)
	}

	return hash, nil
}

// UpdateKioskPINHash implements branch.BranchRepository.
func (r *branchRepositoryImpl) UpdateKioskPINHash(ctx context.Context, id string, hash string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE branches
		SET kiosk_pin_hash = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, hash, id).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return branch.ErrBranchNotFound
		}
		return fmt.Errorf("failed to update kiosk pin hash: %w", err)
	}

	return nil
}
