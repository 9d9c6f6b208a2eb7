package employees

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

const employeeColumns = `id, user_id, first_name, last_name, position, evaluation_period, final_score, achievements_summary, created_at, updated_at`

func (s *Store) Create(ctx context.Context, employee *Employee) (*Employee, error) {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (id, user_id, first_name, last_name, position, evaluation_period, final_score, achievements_summary)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING created_at, updated_at
  `, employee.ID, employee.UserID, employee.FirstName, employee.LastName, employee.Position,
		employee.EvaluationPeriod, employee.FinalScore, employee.AchievementsSummary).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*Employee, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, id))
}

func (s *Store) GetByUserID(ctx context.Context, userID string) (*Employee, error) {
	return s.scanOne(s.DB.QueryRow(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    WHERE user_id = $1
  `, userID))
}

func (s *Store) GetAll(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+employeeColumns+`
    FROM employees
    ORDER BY last_name, first_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []Employee
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.UserID, &employee.FirstName, &employee.LastName, &employee.Position,
			&employee.EvaluationPeriod, &employee.FinalScore, &employee.AchievementsSummary, &employee.CreatedAt, &employee.UpdatedAt); err != nil {
			return nil, err
		}
		all = append(all, employee)
	}
	return all, rows.Err()
}

func (s *Store) Update(ctx context.Context, employee *Employee) (*Employee, error) {
	err := s.DB.QueryRow(ctx, `
    UPDATE employees
    SET first_name = $2, last_name = $3, position = $4, evaluation_period = $5, final_score = $6, achievements_summary = $7, updated_at = now()
    WHERE id = $1
    RETURNING created_at, updated_at
  `, employee.ID, employee.FirstName, employee.LastName, employee.Position,
		employee.EvaluationPeriod, employee.FinalScore, employee.AchievementsSummary).Scan(&employee.CreatedAt, &employee.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return employee, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	return err
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count)
	return count, err
}

func (s *Store) scanOne(row pgx.Row) (*Employee, error) {
	var employee Employee
	err := row.Scan(&employee.ID, &employee.UserID, &employee.FirstName, &employee.LastName, &employee.Position,
		&employee.EvaluationPeriod, &employee.FinalScore, &employee.AchievementsSummary, &employee.CreatedAt, &employee.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}
