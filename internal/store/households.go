// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/chorewheel/household"
)

// CreateHousehold inserts an empty household and returns its generated ID.
func (s *Store) CreateHousehold(ctx context.Context, name string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)`,
		id, name, formatTime(s.now()))
	if err != nil {
		return "", fmt.Errorf("store: create household: %w", err)
	}

	return id, nil
}

// AddUser adds u to the household along with its preferences.
// An empty u.ID is replaced with a generated one, which is returned.
func (s *Store) AddUser(ctx context.Context, householdID string, u household.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := householdExists(ctx, tx, householdID); err != nil {
			return err
		}

		return insertUser(ctx, tx, householdID, u)
	})
	if err != nil {
		return "", err
	}

	return u.ID, nil
}

// AddChore adds c to the household. An empty c.ID is replaced with a
// generated one, which is returned.
func (s *Store) AddChore(ctx context.Context, householdID string, c household.Chore) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := householdExists(ctx, tx, householdID); err != nil {
			return err
		}

		return insertChore(ctx, tx, householdID, c)
	})
	if err != nil {
		return "", err
	}

	return c.ID, nil
}

// SetPreference records or replaces a user's preference for a chore.
func (s *Store) SetPreference(ctx context.Context, householdID, userID, choreID string, p household.Preference) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalid, household.ErrUnknownPreference)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM users WHERE household_id = ? AND id = ?`, householdID, userID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: user %q in household %q", ErrNotFound, userID, householdID)
		}
		if err != nil {
			return fmt.Errorf("store: lookup user: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO preferences (household_id, user_id, chore_id, preference) VALUES (?, ?, ?, ?)
			ON CONFLICT (household_id, user_id, chore_id) DO UPDATE SET preference = excluded.preference`,
			householdID, userID, choreID, p.String())
		if err != nil {
			return fmt.Errorf("store: set preference: %w", err)
		}

		return nil
	})
}

// Import stores a whole snapshot, replacing any household with the same ID
// together with its round history.
// An empty h.ID is replaced with a generated one, which is returned.
func (s *Store) Import(ctx context.Context, h household.Household) (string, error) {
	if err := h.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if h.ID == "" {
		h.ID = uuid.NewString()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM households WHERE id = ?`, h.ID); err != nil {
			return fmt.Errorf("store: replace household: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)`,
			h.ID, h.Name, formatTime(s.now())); err != nil {
			return fmt.Errorf("store: insert household: %w", err)
		}
		for _, u := range h.Users {
			if err := insertUser(ctx, tx, h.ID, u); err != nil {
				return err
			}
		}
		for _, c := range h.Chores {
			if err := insertChore(ctx, tx, h.ID, c); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return h.ID, nil
}

func insertUser(ctx context.Context, tx *sql.Tx, householdID string, u household.User) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (household_id, id, name) VALUES (?, ?, ?)`,
		householdID, u.ID, u.Name); err != nil {
		return fmt.Errorf("store: insert user %q: %w", u.ID, err)
	}
	for choreID, p := range u.Preferences {
		if !p.Valid() {
			return fmt.Errorf("%w: user %q chore %q: %w", ErrInvalid, u.ID, choreID, household.ErrUnknownPreference)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO preferences (household_id, user_id, chore_id, preference) VALUES (?, ?, ?, ?)`,
			householdID, u.ID, choreID, p.String()); err != nil {
			return fmt.Errorf("store: insert preference: %w", err)
		}
	}

	return nil
}

func insertChore(ctx context.Context, tx *sql.Tx, householdID string, c household.Chore) error {
	var due sql.NullString
	if c.DueAt != nil {
		due = nullString(formatTime(*c.DueAt))
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO chores (household_id, id, name, assigned_to, due_at) VALUES (?, ?, ?, ?, ?)`,
		householdID, c.ID, c.Name, nullString(c.AssignedTo), due); err != nil {
		return fmt.Errorf("store: insert chore %q: %w", c.ID, err)
	}

	return nil
}

// Household loads the snapshot for id. Users and chores come back ordered
// by ID so repeated loads produce identical snapshots.
func (s *Store) Household(ctx context.Context, id string) (household.Household, error) {
	h := household.Household{ID: id}

	err := s.db.QueryRowContext(ctx, `SELECT name FROM households WHERE id = ?`, id).Scan(&h.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return household.Household{}, fmt.Errorf("%w: household %q", ErrNotFound, id)
	}
	if err != nil {
		return household.Household{}, fmt.Errorf("store: load household: %w", err)
	}

	if h.Users, err = s.loadUsers(ctx, id); err != nil {
		return household.Household{}, err
	}
	if h.Chores, err = s.loadChores(ctx, id); err != nil {
		return household.Household{}, err
	}

	return h, nil
}

func (s *Store) loadUsers(ctx context.Context, householdID string) ([]household.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name FROM users WHERE household_id = ? ORDER BY id`, householdID)
	if err != nil {
		return nil, fmt.Errorf("store: load users: %w", err)
	}
	users := []household.User{}
	index := map[string]int{}
	for rows.Next() {
		var u household.User
		if err = rows.Scan(&u.ID, &u.Name); err != nil {
			rows.Close()

			return nil, fmt.Errorf("store: scan user: %w", err)
		}
		index[u.ID] = len(users)
		users = append(users, u)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: load users: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT user_id, chore_id, preference FROM preferences WHERE household_id = ?`, householdID)
	if err != nil {
		return nil, fmt.Errorf("store: load preferences: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID, choreID, raw string
		if err = rows.Scan(&userID, &choreID, &raw); err != nil {
			return nil, fmt.Errorf("store: scan preference: %w", err)
		}
		p, err := household.ParsePreference(raw)
		if err != nil {
			return nil, fmt.Errorf("store: user %q chore %q: %w", userID, choreID, err)
		}
		u := &users[index[userID]]
		if u.Preferences == nil {
			u.Preferences = make(map[string]household.Preference)
		}
		u.Preferences[choreID] = p
	}

	return users, rows.Err()
}

func (s *Store) loadChores(ctx context.Context, householdID string) ([]household.Chore, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, assigned_to, due_at FROM chores WHERE household_id = ? ORDER BY id`, householdID)
	if err != nil {
		return nil, fmt.Errorf("store: load chores: %w", err)
	}
	defer rows.Close()

	chores := []household.Chore{}
	for rows.Next() {
		var (
			c        household.Chore
			assigned sql.NullString
			due      sql.NullString
		)
		if err = rows.Scan(&c.ID, &c.Name, &assigned, &due); err != nil {
			return nil, fmt.Errorf("store: scan chore: %w", err)
		}
		c.AssignedTo = assigned.String
		if due.Valid {
			var t time.Time
			if t, err = parseTime(due.String); err != nil {
				return nil, fmt.Errorf("store: chore %q due date: %w", c.ID, err)
			}
			c.DueAt = &t
		}
		chores = append(chores, c)
	}

	return chores, rows.Err()
}
