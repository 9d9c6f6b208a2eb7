package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ocena/internal/domain/admins"
	"ocena/internal/domain/identity"
	"ocena/internal/platform/config"
)

// Seed bootstraps the first administrator account: identity, Admin role
// membership, and the profile row. It is idempotent and does nothing when
// the seed credentials are not configured.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	users := identity.NewStore(pool)

	ident, err := users.FindByEmail(ctx, cfg.SeedAdminEmail)
	if err != nil {
		return err
	}
	if ident == nil {
		ident = &identity.Identity{
			Username:       cfg.SeedAdminUsername,
			Email:          cfg.SeedAdminEmail,
			EmailConfirmed: true,
		}
		created, err := users.Create(ctx, ident, cfg.SeedAdminPassword)
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("seed admin username %q is already taken", cfg.SeedAdminUsername)
		}
	}

	if _, err := users.AddToRole(ctx, ident.ID, identity.RoleAdmin); err != nil {
		return err
	}

	profiles := admins.NewStore(pool)
	existing, err := profiles.GetByUserID(ctx, ident.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		if _, err := profiles.Create(ctx, &admins.Admin{
			UserID:    ident.ID,
			FirstName: "System",
			LastName:  "Administrator",
		}); err != nil {
			return err
		}
	}

	return nil
}
