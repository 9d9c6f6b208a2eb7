// Package authz holds the role-or-owner predicate shared by all resource
// services.
package authz

import (
	"ocena/internal/apperr"
	"ocena/internal/domain/identity"
)

// Allow grants access when the actor holds any of the required roles or owns
// the identity id guarding the resource. Pass an empty ownerID to disable the
// ownership branch. Returns a Forbidden error on denial.
func Allow(actor identity.Actor, ownerID string, roles ...string) error {
	for _, role := range roles {
		if actor.HasRole(role) {
			return nil
		}
	}
	if actor.IsOwner(ownerID) {
		return nil
	}
	return apperr.New(apperr.Forbidden, "")
}

// Require grants access only on role membership, with no ownership branch.
func Require(actor identity.Actor, roles ...string) error {
	return Allow(actor, "", roles...)
}
