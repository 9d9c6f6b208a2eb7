package managers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, manager *Manager) (*Manager, error) {
	if manager.ID == "" {
		manager.ID = uuid.NewString()
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO managers (id, user_id, first_name, last_name, achievements_summary)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING created_at, updated_at
  `, manager.ID, manager.UserID, manager.FirstName, manager.LastName, manager.AchievementsSummary).Scan(&manager.CreatedAt, &manager.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Manager, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, user_id, first_name, last_name, achievements_summary, created_at, updated_at
    FROM managers
    WHERE id = $1
  `, id))
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (*Manager, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, user_id, first_name, last_name, achievements_summary, created_at, updated_at
    FROM managers
    WHERE user_id = $1
  `, userID))
}

func (s *Store) GetAll(ctx context.Context) ([]Manager, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, first_name, last_name, achievements_summary, created_at, updated_at
    FROM managers
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []Manager
	for rows.Next() {
		var manager Manager
		if err := rows.Scan(&manager.ID, &manager.UserID, &manager.FirstName, &manager.LastName, &manager.AchievementsSummary, &manager.CreatedAt, &manager.UpdatedAt); err != nil {
			return nil, err
		}
		all = append(all, manager)
	}
	return all, rows.Err()
}

func (s *Store) Update(ctx context.Context, manager *Manager) (*Manager, error) {
	err := s.DB.QueryRow(ctx, `
    UPDATE managers
    SET first_name = $2, last_name = $3, achievements_summary = $4, updated_at = now()
    WHERE id = $1
    RETURNING created_at, updated_at
  `, manager.ID, manager.FirstName, manager.LastName, manager.AchievementsSummary).Scan(&manager.CreatedAt, &manager.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM managers WHERE id = $1", id)
	return err
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM managers WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM managers").Scan(&count)
	return count, err
}

func (s *Store) scanOne(row pgx.Row) (*Manager, error) {
	var manager Manager
	err := row.Scan(&manager.ID, &manager.UserID, &manager.FirstName, &manager.LastName, &manager.AchievementsSummary, &manager.CreatedAt, &manager.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &manager, nil
}
