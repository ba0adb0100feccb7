// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/katalvlaran/chorewheel/assign"
)

// ApplyRound persists a finished round in one transaction: each assigned
// chore gets its new assignee and r.DueAt, and the round is recorded.
// Chores the round did not assign keep their previous assignee.
//
// r.ID and r.CreatedAt are filled in when empty; the stored round is returned.
func (s *Store) ApplyRound(ctx context.Context, r Round) (Round, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	r.CreatedAt = r.CreatedAt.UTC()
	r.DueAt = r.DueAt.UTC()

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := householdExists(ctx, tx, r.HouseholdID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rounds (id, household_id, flow, cost, due_at, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.HouseholdID, r.Flow, r.Cost, formatTime(r.DueAt), formatTime(r.CreatedAt)); err != nil {
			return fmt.Errorf("store: insert round: %w", err)
		}

		due := formatTime(r.DueAt)
		for i, a := range r.Assignments {
			res, err := tx.ExecContext(ctx,
				`UPDATE chores SET assigned_to = ?, due_at = ? WHERE household_id = ? AND id = ?`,
				a.UserID, due, r.HouseholdID, a.ChoreID)
			if err != nil {
				return fmt.Errorf("store: update chore %q: %w", a.ChoreID, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("%w: chore %q in household %q", ErrNotFound, a.ChoreID, r.HouseholdID)
			}

			if _, err = tx.ExecContext(ctx, `
				INSERT INTO round_assignments (round_id, position, user_id, chore_id, cost, low_confidence)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, i, a.UserID, a.ChoreID, a.Cost, a.LowConfidence); err != nil {
				return fmt.Errorf("store: insert round assignment: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return Round{}, err
	}

	return r, nil
}

// Rounds returns the household's recorded rounds, newest first.
func (s *Store) Rounds(ctx context.Context, householdID string) ([]Round, error) {
	if err := householdExists(ctx, s.db, householdID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, flow, cost, due_at, created_at FROM rounds
		WHERE household_id = ? ORDER BY created_at DESC, rowid DESC`, householdID)
	if err != nil {
		return nil, fmt.Errorf("store: load rounds: %w", err)
	}
	rounds := []Round{}
	for rows.Next() {
		var (
			r            = Round{HouseholdID: householdID}
			due, created string
		)
		if err = rows.Scan(&r.ID, &r.Flow, &r.Cost, &due, &created); err != nil {
			rows.Close()

			return nil, fmt.Errorf("store: scan round: %w", err)
		}
		if r.DueAt, err = parseTime(due); err == nil {
			r.CreatedAt, err = parseTime(created)
		}
		if err != nil {
			rows.Close()

			return nil, fmt.Errorf("store: round %q timestamps: %w", r.ID, err)
		}
		rounds = append(rounds, r)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load rounds: %w", err)
	}

	for i := range rounds {
		if rounds[i].Assignments, err = s.roundAssignments(ctx, rounds[i].ID); err != nil {
			return nil, err
		}
	}

	return rounds, nil
}

func (s *Store) roundAssignments(ctx context.Context, roundID string) ([]assign.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, chore_id, cost, low_confidence FROM round_assignments
		WHERE round_id = ? ORDER BY position`, roundID)
	if err != nil {
		return nil, fmt.Errorf("store: load round assignments: %w", err)
	}
	defer rows.Close()

	out := []assign.Assignment{}
	for rows.Next() {
		var a assign.Assignment
		if err = rows.Scan(&a.UserID, &a.ChoreID, &a.Cost, &a.LowConfidence); err != nil {
			return nil, fmt.Errorf("store: scan round assignment: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
