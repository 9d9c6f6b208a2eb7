// Package identity defines the authentication records, role constants, and
// the gateway contract the resource services depend on. The concrete store
// lives behind the Gateway interface so service logic stays independent of
// the identity backend.
package identity

import "time"

const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
	RoleUser     = "User"
)

// User-facing messages for account operations against the identity store.
const (
	MsgAccountCreateFailed  = "Błąd podczas tworzenia konta"
	MsgAccountUpdateFailed  = "Błąd podczas aktualizacji konta"
	MsgAccountDeleteFailed  = "Błąd podczas usuwania konta"
	MsgPasswordChangeFailed = "Błąd podczas zmiany hasła"
)

// Identity is the login record, distinct from the domain profiles that
// reference it through their IdentityUserID.
type Identity struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Actor is the authenticated caller of a service operation: the identity id
// plus the role claims established by the transport layer. A zero Actor is
// an anonymous caller.
type Actor struct {
	ID    string
	Roles []string
}

func (a Actor) Authenticated() bool {
	return a.ID != ""
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

func (a Actor) IsManager() bool {
	return a.HasRole(RoleManager)
}

func (a Actor) IsEmployee() bool {
	return a.HasRole(RoleEmployee)
}

// IsOwner reports whether the actor is the account owner of the given
// identity id. An anonymous actor owns nothing.
func (a Actor) IsOwner(userID string) bool {
	return a.ID != "" && a.ID == userID
}
