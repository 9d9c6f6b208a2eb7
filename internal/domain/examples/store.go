package examples

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the int-keyed Postgres repository; ids come from the table
// sequence.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Create(ctx context.Context, example *Example) (*Example, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO examples (name, description, detail)
    VALUES ($1, $2, $3)
    RETURNING id, created_at, updated_at
  `, example.Name, example.Description, example.Detail).Scan(&example.ID, &example.CreatedAt, &example.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return example, nil
}

func (s *Store) GetByID(ctx context.Context, id int) (*Example, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, name, description, detail, created_at, updated_at
    FROM examples
    WHERE id = $1
  `, id)

	var example Example
	err := row.Scan(&example.ID, &example.Name, &example.Description, &example.Detail, &example.CreatedAt, &example.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &example, nil
}

func (s *Store) GetAll(ctx context.Context) ([]Example, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, description, detail, created_at, updated_at
    FROM examples
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []Example
	for rows.Next() {
		var example Example
		if err := rows.Scan(&example.ID, &example.Name, &example.Description, &example.Detail, &example.CreatedAt, &example.UpdatedAt); err != nil {
			return nil, err
		}
		all = append(all, example)
	}
	return all, rows.Err()
}

func (s *Store) Update(ctx context.Context, example *Example) (*Example, error) {
	err := s.DB.QueryRow(ctx, `
    UPDATE examples
    SET name = $2, description = $3, detail = $4, updated_at = now()
    WHERE id = $1
    RETURNING created_at, updated_at
  `, example.ID, example.Name, example.Description, example.Detail).Scan(&example.CreatedAt, &example.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return example, nil
}

func (s *Store) Delete(ctx context.Context, id int) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM examples WHERE id = $1", id)
	return err
}

func (s *Store) Exists(ctx context.Context, id int) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM examples WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM examples").Scan(&count)
	return count, err
}
