// Package repository defines the persistence contract shared by every
// resource service, parameterized over the entity type and its key type so
// uuid-keyed profiles and int-keyed records use one interface family.
package repository

import "context"

// Repository is the typed CRUD contract. GetByID returns (nil, nil) when the
// entity is absent; errors are reserved for store failures. Implementations
// set creation and update timestamps themselves; callers never supply them.
type Repository[T any, K comparable] interface {
	Create(ctx context.Context, entity *T) (*T, error)
	GetByID(ctx context.Context, id K) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id K) error
	Exists(ctx context.Context, id K) (bool, error)
	Count(ctx context.Context) (int, error)
}

// Owned adds the "find profile by owning identity" lookup used by the
// current-profile operations. Absent follows the GetByID convention.
type Owned[T any, K comparable] interface {
	Repository[T, K]
	GetByUserID(ctx context.Context, userID string) (*T, error)
}
