package authz

import (
	"testing"

	"ocena/internal/apperr"
	"ocena/internal/domain/identity"
)

func TestAllow(t *testing.T) {
	tests := []struct {
		name    string
		actor   identity.Actor
		ownerID string
		roles   []string
		allowed bool
	}{
		{
			name:    "role grant",
			actor:   identity.Actor{ID: "u1", Roles: []string{identity.RoleAdmin}},
			roles:   []string{identity.RoleAdmin},
			allowed: true,
		},
		{
			name:    "any of several roles",
			actor:   identity.Actor{ID: "u1", Roles: []string{identity.RoleManager}},
			roles:   []string{identity.RoleAdmin, identity.RoleManager},
			allowed: true,
		},
		{
			name:    "owner grant without role",
			actor:   identity.Actor{ID: "u1", Roles: []string{identity.RoleUser}},
			ownerID: "u1",
			roles:   []string{identity.RoleAdmin},
			allowed: true,
		},
		{
			name:    "neither role nor owner",
			actor:   identity.Actor{ID: "u1", Roles: []string{identity.RoleUser}},
			ownerID: "u2",
			roles:   []string{identity.RoleAdmin},
			allowed: false,
		},
		{
			name:    "anonymous actor",
			actor:   identity.Actor{},
			ownerID: "u1",
			roles:   []string{identity.RoleAdmin},
			allowed: false,
		},
		{
			name:    "empty owner id disables ownership branch",
			actor:   identity.Actor{ID: "", Roles: nil},
			ownerID: "",
			roles:   []string{identity.RoleAdmin},
			allowed: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Allow(tc.actor, tc.ownerID, tc.roles...)
			if tc.allowed && err != nil {
				t.Fatalf("expected grant, got %v", err)
			}
			if !tc.allowed {
				if err == nil {
					t.Fatal("expected Forbidden")
				}
				if apperr.KindOf(err) != apperr.Forbidden {
					t.Fatalf("expected Forbidden kind, got %d", apperr.KindOf(err))
				}
			}
		})
	}
}

func TestRequireHasNoOwnershipBranch(t *testing.T) {
	actor := identity.Actor{ID: "u1", Roles: []string{identity.RoleUser}}
	if err := Require(actor, identity.RoleAdmin); err == nil {
		t.Fatal("expected Forbidden for non-admin")
	}
	if err := Require(identity.Actor{ID: "u1", Roles: []string{identity.RoleAdmin}}, identity.RoleAdmin); err != nil {
		t.Fatalf("expected grant, got %v", err)
	}
}
