package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the Postgres-backed Gateway over identities + identity_roles.
type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const identityColumns = `id, username, email, email_confirmed, created_at, updated_at`

func (s *Store) FindByID(ctx context.Context, id string) (*Identity, error) {
	return s.findBy(ctx, "id", id)
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	return s.findBy(ctx, "email", email)
}

func (s *Store) FindByName(ctx context.Context, username string) (*Identity, error) {
	return s.findBy(ctx, "username", username)
}

func (s *Store) findBy(ctx context.Context, column, value string) (*Identity, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+identityColumns+`
    FROM identities
    WHERE `+column+` = $1
  `, value)

	var ident Identity
	err := row.Scan(&ident.ID, &ident.Username, &ident.Email, &ident.EmailConfirmed, &ident.CreatedAt, &ident.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (s *Store) Create(ctx context.Context, ident *Identity, password string) (bool, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	return s.insert(ctx, ident, hash)
}

func (s *Store) CreateWithoutPassword(ctx context.Context, ident *Identity) (bool, error) {
	return s.insert(ctx, ident, "")
}

func (s *Store) insert(ctx context.Context, ident *Identity, passwordHash string) (bool, error) {
	if ident.ID == "" {
		ident.ID = uuid.NewString()
	}

	err := s.DB.QueryRow(ctx, `
    INSERT INTO identities (id, username, email, email_confirmed, password_hash)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING created_at, updated_at
  `, ident.ID, ident.Username, ident.Email, ident.EmailConfirmed, passwordHash).Scan(&ident.CreatedAt, &ident.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *Store) Update(ctx context.Context, ident *Identity) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE identities
    SET username = $2, email = $3, email_confirmed = $4, updated_at = now()
    WHERE id = $1
  `, ident.ID, ident.Username, ident.Email, ident.EmailConfirmed)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := s.DB.Exec(ctx, "DELETE FROM identity_roles WHERE identity_id = $1", id); err != nil {
		return false, err
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM identities WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) CheckPassword(ctx context.Context, id, password string) (bool, error) {
	var hash string
	err := s.DB.QueryRow(ctx, "SELECT password_hash FROM identities WHERE id = $1", id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if hash == "" {
		return false, nil
	}
	return ComparePassword(hash, password) == nil, nil
}

func (s *Store) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (bool, error) {
	ok, err := s.CheckPassword(ctx, id, currentPassword)
	if err != nil || !ok {
		return false, err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return false, err
	}

	tag, err := s.DB.Exec(ctx, "UPDATE identities SET password_hash = $2, updated_at = now() WHERE id = $1", id, hash)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// PasswordHash exposes the stored credential for the login handler.
func (s *Store) PasswordHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := s.DB.QueryRow(ctx, "SELECT password_hash FROM identities WHERE id = $1", id).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (s *Store) AddToRole(ctx context.Context, id, role string) (bool, error) {
	var exists int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM identities WHERE id = $1", id).Scan(&exists); err != nil {
		return false, err
	}
	if exists == 0 {
		return false, nil
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO identity_roles (identity_id, role)
    VALUES ($1, $2)
    ON CONFLICT (identity_id, role) DO NOTHING
  `, id, role)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) RemoveFromRole(ctx context.Context, id, role string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM identity_roles WHERE identity_id = $1 AND role = $2", id, role)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) UserRoles(ctx context.Context, id string) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT role FROM identity_roles WHERE identity_id = $1 ORDER BY role", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (s *Store) UsersInRole(ctx context.Context, role string) ([]Identity, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT i.id, i.username, i.email, i.email_confirmed, i.created_at, i.updated_at
    FROM identities i
    JOIN identity_roles ir ON ir.identity_id = i.id
    WHERE ir.role = $1
    ORDER BY i.username
  `, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var idents []Identity
	for rows.Next() {
		var ident Identity
		if err := rows.Scan(&ident.ID, &ident.Username, &ident.Email, &ident.EmailConfirmed, &ident.CreatedAt, &ident.UpdatedAt); err != nil {
			return nil, err
		}
		idents = append(idents, ident)
	}
	return idents, rows.Err()
}
