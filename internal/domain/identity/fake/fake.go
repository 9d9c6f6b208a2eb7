// Package fake provides an in-memory identity.Gateway for tests. It records
// per-method call counts so tests can assert that an operation never reached
// the store, and exposes refusal switches to simulate the gateway's boolean
// failure mode.
package fake

import (
	"context"
	"fmt"
	"sync"

	"ocena/internal/domain/identity"
)

type Option func(*Gateway)

// WithIdentity seeds an identity with a password and role memberships.
func WithIdentity(ident identity.Identity, password string, roles ...string) Option {
	return func(g *Gateway) {
		stored := ident
		g.identities[ident.ID] = &stored
		g.passwords[ident.ID] = password
		for _, role := range roles {
			g.addRole(ident.ID, role)
		}
	}
}

type Gateway struct {
	mu         sync.Mutex
	identities map[string]*identity.Identity
	passwords  map[string]string
	roles      map[string][]string
	seq        int

	// Refusal switches make the corresponding mutator report false.
	RefuseCreate         bool
	RefuseUpdate         bool
	RefuseDelete         bool
	RefuseChangePassword bool

	// Err, when set, is returned by every call as an infrastructure failure.
	Err error

	Calls map[string]int

	// OnCall, when set, observes every method invocation in order. Tests use
	// it to assert cross-store call ordering.
	OnCall func(method string)
}

func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		identities: make(map[string]*identity.Identity),
		passwords:  make(map[string]string),
		roles:      make(map[string][]string),
		Calls:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) record(method string) {
	g.Calls[method]++
	if g.OnCall != nil {
		g.OnCall(method)
	}
}

func (g *Gateway) addRole(id, role string) {
	for _, existing := range g.roles[id] {
		if existing == role {
			return
		}
	}
	g.roles[id] = append(g.roles[id], role)
}

func (g *Gateway) FindByID(ctx context.Context, id string) (*identity.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("FindByID")
	if g.Err != nil {
		return nil, g.Err
	}
	ident, ok := g.identities[id]
	if !ok {
		return nil, nil
	}
	copied := *ident
	return &copied, nil
}

func (g *Gateway) FindByEmail(ctx context.Context, email string) (*identity.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("FindByEmail")
	if g.Err != nil {
		return nil, g.Err
	}
	for _, ident := range g.identities {
		if ident.Email == email {
			copied := *ident
			return &copied, nil
		}
	}
	return nil, nil
}

func (g *Gateway) FindByName(ctx context.Context, username string) (*identity.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("FindByName")
	if g.Err != nil {
		return nil, g.Err
	}
	for _, ident := range g.identities {
		if ident.Username == username {
			copied := *ident
			return &copied, nil
		}
	}
	return nil, nil
}

func (g *Gateway) Create(ctx context.Context, ident *identity.Identity, password string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("Create")
	if g.Err != nil {
		return false, g.Err
	}
	if g.RefuseCreate {
		return false, nil
	}
	for _, existing := range g.identities {
		if existing.Username == ident.Username || existing.Email == ident.Email {
			return false, nil
		}
	}
	if ident.ID == "" {
		g.seq++
		ident.ID = fmt.Sprintf("identity-%d", g.seq)
	}
	stored := *ident
	g.identities[ident.ID] = &stored
	g.passwords[ident.ID] = password
	return true, nil
}

func (g *Gateway) CreateWithoutPassword(ctx context.Context, ident *identity.Identity) (bool, error) {
	return g.Create(ctx, ident, "")
}

func (g *Gateway) Update(ctx context.Context, ident *identity.Identity) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("Update")
	if g.Err != nil {
		return false, g.Err
	}
	if g.RefuseUpdate {
		return false, nil
	}
	existing, ok := g.identities[ident.ID]
	if !ok {
		return false, nil
	}
	existing.Username = ident.Username
	existing.Email = ident.Email
	existing.EmailConfirmed = ident.EmailConfirmed
	return true, nil
}

func (g *Gateway) Delete(ctx context.Context, id string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("Delete")
	if g.Err != nil {
		return false, g.Err
	}
	if g.RefuseDelete {
		return false, nil
	}
	if _, ok := g.identities[id]; !ok {
		return false, nil
	}
	delete(g.identities, id)
	delete(g.passwords, id)
	delete(g.roles, id)
	return true, nil
}

func (g *Gateway) CheckPassword(ctx context.Context, id, password string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("CheckPassword")
	if g.Err != nil {
		return false, g.Err
	}
	stored, ok := g.passwords[id]
	return ok && stored != "" && stored == password, nil
}

func (g *Gateway) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("ChangePassword")
	if g.Err != nil {
		return false, g.Err
	}
	if g.RefuseChangePassword {
		return false, nil
	}
	stored, ok := g.passwords[id]
	if !ok || stored != currentPassword {
		return false, nil
	}
	g.passwords[id] = newPassword
	return true, nil
}

func (g *Gateway) AddToRole(ctx context.Context, id, role string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("AddToRole")
	if g.Err != nil {
		return false, g.Err
	}
	if _, ok := g.identities[id]; !ok {
		return false, nil
	}
	g.addRole(id, role)
	return true, nil
}

func (g *Gateway) RemoveFromRole(ctx context.Context, id, role string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("RemoveFromRole")
	if g.Err != nil {
		return false, g.Err
	}
	roles := g.roles[id]
	for i, existing := range roles {
		if existing == role {
			g.roles[id] = append(roles[:i], roles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (g *Gateway) UserRoles(ctx context.Context, id string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("UserRoles")
	if g.Err != nil {
		return nil, g.Err
	}
	return append([]string(nil), g.roles[id]...), nil
}

func (g *Gateway) UsersInRole(ctx context.Context, role string) ([]identity.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.record("UsersInRole")
	if g.Err != nil {
		return nil, g.Err
	}
	var idents []identity.Identity
	for id, roles := range g.roles {
		for _, existing := range roles {
			if existing == role {
				if ident, ok := g.identities[id]; ok {
					idents = append(idents, *ident)
				}
				break
			}
		}
	}
	return idents, nil
}
