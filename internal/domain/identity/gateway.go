package identity

import "context"

// Gateway wraps the identity store. Lookups return (nil, nil) when the
// record is absent. Mutators return false when the store refuses the
// operation (duplicate username, wrong current password); the error return
// is reserved for infrastructure failures. Callers convert a false result
// into a typed error when the operation must not silently no-op.
type Gateway interface {
	FindByID(ctx context.Context, id string) (*Identity, error)
	FindByEmail(ctx context.Context, email string) (*Identity, error)
	FindByName(ctx context.Context, username string) (*Identity, error)

	Create(ctx context.Context, ident *Identity, password string) (bool, error)
	CreateWithoutPassword(ctx context.Context, ident *Identity) (bool, error)
	Update(ctx context.Context, ident *Identity) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)

	CheckPassword(ctx context.Context, id, password string) (bool, error)
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (bool, error)

	AddToRole(ctx context.Context, id, role string) (bool, error)
	RemoveFromRole(ctx context.Context, id, role string) (bool, error)
	UserRoles(ctx context.Context, id string) ([]string, error)
	UsersInRole(ctx context.Context, role string) ([]Identity, error)
}
