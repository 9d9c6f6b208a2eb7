package admins

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed profile repository. Timestamps are set here,
// never by callers.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, admin *Admin) (*Admin, error) {
	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO admins (id, user_id, first_name, last_name)
    VALUES ($1, $2, $3, $4)
    RETURNING created_at, updated_at
  `, admin.ID, admin.UserID, admin.FirstName, admin.LastName).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Admin, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, user_id, first_name, last_name, created_at, updated_at
    FROM admins
    WHERE id = $1
  `, id))
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (*Admin, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT id, user_id, first_name, last_name, created_at, updated_at
    FROM admins
    WHERE user_id = $1
  `, userID))
}

func (s *Store) GetAll(ctx context.Context) ([]Admin, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, first_name, last_name, created_at, updated_at
    FROM admins
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []Admin
	for rows.Next() {
		var admin Admin
		if err := rows.Scan(&admin.ID, &admin.UserID, &admin.FirstName, &admin.LastName, &admin.CreatedAt, &admin.UpdatedAt); err != nil {
			return nil, err
		}
		all = append(all, admin)
	}
	return all, rows.Err()
}

func (s *Store) Update(ctx context.Context, admin *Admin) (*Admin, error) {
	err := s.DB.QueryRow(ctx, `
    UPDATE admins
    SET first_name = $2, last_name = $3, updated_at = now()
    WHERE id = $1
    RETURNING created_at, updated_at
  `, admin.ID, admin.FirstName, admin.LastName).Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM admins WHERE id = $1", id)
	return err
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM admins WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM admins").Scan(&count)
	return count, err
}

func (s *Store) scanOne(row pgx.Row) (*Admin, error) {
	var admin Admin
	err := row.Scan(&admin.ID, &admin.UserID, &admin.FirstName, &admin.LastName, &admin.CreatedAt, &admin.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
