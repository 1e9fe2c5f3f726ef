package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/eigenfit/eigenfit-backend-go/internal/domain/visitstats"
	"github.com/eigenfit/eigenfit-backend-go/internal/pkg/database"
)

type visitStatsRepositoryImpl struct {
	db *database.DB
}

func NewVisitStatsRepository(db *database.DB) visitstats.VisitStatsRepository {
	return &visitStatsRepositoryImpl{db: db}
}

// CheckInTimes implements visitstats.VisitStatsRepository.
func (r *visitStatsRepositoryImpl) CheckInTimes(ctx context.Context, branchID string, from, to time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT check_in
		FROM attendances
		WHERE branch_id = $1 AND check_in >= $2 AND check_in < $3
		ORDER BY check_in
	`

	rows, err := q.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch check-in times: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return times, nil
}

// MemberVisits implements visitstats.VisitStatsRepository.
func (r *visitStatsRepositoryImpl) MemberVisits(ctx context.Context, branchID string, from, to time.Time) ([]visitstats.MemberVisit, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.person_id, m.full_name, m.code, a.check_in
		FROM attendances a
		JOIN members m ON m.id = a.person_id
		WHERE a.branch_id = $1 AND a.person_role = 'member'
			AND a.check_in >= $2 AND a.check_in < $3
		ORDER BY a.person_id, a.check_in
	`

	rows, err := q.Query(ctx, query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member visits: %w", err)
	}
	defer rows.Close()

	var visits []visitstats.MemberVisit
	for rows.Next() {
		var v visitstats.MemberVisit
		if err := rows.Scan(&v.MemberID, &v.MemberName, &v.MemberCode, &v.CheckIn); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return visits, nil
}
