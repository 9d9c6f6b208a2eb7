package admins

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"ocena/internal/apperr"
	"ocena/internal/domain/identity"
	"ocena/internal/domain/identity/fake"
	"ocena/internal/domain/repository"
)

func newStore() *repository.Memory[Admin, string] {
	return repository.NewMemory(repository.MemoryConfig[Admin, string]{
		Key:     func(a Admin) string { return a.ID },
		WithKey: func(a Admin, id string) Admin { a.ID = id; return a },
		NextKey: func(seq int) string { return fmt.Sprintf("admin-%d", seq) },
		Touch: func(a Admin, now time.Time, created bool) Admin {
			if created {
				a.CreatedAt = now
			}
			a.UpdatedAt = now
			return a
		},
		UserID: func(a Admin) string { return a.UserID },
	})
}

func adminActor(id string) identity.Actor {
	return identity.Actor{ID: id, Roles: []string{identity.RoleAdmin}}
}

func userActor(id string) identity.Actor {
	return identity.Actor{ID: id, Roles: []string{identity.RoleUser}}
}

func seedAdmin(store *repository.Memory[Admin, string], gw *fake.Gateway, id, userID, username string) {
	fake.WithIdentity(identity.Identity{ID: userID, Username: username, Email: username + "@example.com"}, "pw", identity.RoleAdmin)(gw)
	store.Seed(Admin{ID: id, UserID: userID, FirstName: "Anna", LastName: "Nowak"})
}

func TestGetByIDNotFound(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	svc := NewService(store, gw)

	_, err := svc.GetByID(context.Background(), adminActor("u1"), "missing")
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGetByIDOwnerWithoutRole(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	view, err := svc.GetByID(context.Background(), userActor("u1"), "a1")
	if err != nil {
		t.Fatalf("owner should read own profile: %v", err)
	}
	if view.UserID != "u1" || view.Username != "anna" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestGetByIDForbiddenForStranger(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	_, err := svc.GetByID(context.Background(), userActor("u2"), "a1")
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
}

func TestGetByIDIdempotent(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	first, err := svc.GetByID(context.Background(), adminActor("u9"), "a1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	second, err := svc.GetByID(context.Background(), adminActor("u9"), "a1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated reads differ: %+v vs %+v", first, second)
	}
}

func TestGetAllRequiresAdminRole(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	_, err := svc.GetAll(context.Background(), userActor("u1"))
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden for standard user, got %v", err)
	}
}

func TestGetAllDrawsFromRoleMembership(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	seedAdmin(store, gw, "a2", "u2", "jan")

	// A profile row whose identity no longer holds the Admin role must not
	// appear in the listing.
	fake.WithIdentity(identity.Identity{ID: "u3", Username: "basia", Email: "basia@example.com"}, "pw", identity.RoleUser)(gw)
	store.Seed(Admin{ID: "a3", UserID: "u3", FirstName: "Basia", LastName: "Kowalska"})

	svc := NewService(store, gw)
	views, err := svc.GetAll(context.Background(), adminActor("u1"))
	if err != nil {
		t.Fatalf("get all error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 admins, got %d: %+v", len(views), views)
	}
	seen := map[string]bool{}
	for _, v := range views {
		seen[v.UserID] = true
	}
	if !seen["u1"] || !seen["u2"] {
		t.Fatalf("listing should include self and the other role member: %+v", views)
	}
}

func TestGetAllRoleMemberWithoutProfile(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	fake.WithIdentity(identity.Identity{ID: "u1", Username: "anna", Email: "anna@example.com"}, "pw", identity.RoleAdmin)(gw)

	svc := NewService(store, gw)
	_, err := svc.GetAll(context.Background(), adminActor("u1"))
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound for role member without profile, got %v", err)
	}
}

func TestCurrent(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	if _, err := svc.Current(context.Background(), identity.Actor{}); apperr.KindOf(err) != apperr.Unauthorized {
		t.Fatalf("expected Unauthorized for anonymous actor, got %v", err)
	}

	if _, err := svc.Current(context.Background(), adminActor("u9")); apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound for actor without profile, got %v", err)
	}

	view, err := svc.Current(context.Background(), adminActor("u1"))
	if err != nil {
		t.Fatalf("current error: %v", err)
	}
	if view.ID != "a1" {
		t.Fatalf("unexpected profile: %+v", view)
	}
}

func TestAddValidatesBeforeCreatingAccount(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	svc := NewService(store, gw)

	_, err := svc.Add(context.Background(), adminActor("u1"), CreateRequest{
		Username: "nowy", Email: "nowy@example.com", Password: "pw",
		FirstName: "   ", LastName: "Nowak",
	})
	if apperr.KindOf(err) != apperr.BadRequest {
		t.Fatalf("expected BadRequest for blank first name, got %v", err)
	}
	if gw.Calls["Create"] != 0 {
		t.Fatal("no identity may be created when validation fails")
	}
	if store.Calls["Create"] != 0 {
		t.Fatal("no profile may be created when validation fails")
	}
}

func TestAddForbiddenLeavesNoTrace(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	svc := NewService(store, gw)

	_, err := svc.Add(context.Background(), userActor("u1"), CreateRequest{
		Username: "nowy", Email: "nowy@example.com", Password: "pw",
		FirstName: "Jan", LastName: "Nowak",
	})
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if gw.Calls["Create"] != 0 || store.Calls["Create"] != 0 {
		t.Fatalf("mutation happened despite Forbidden: gateway=%v store=%v", gw.Calls, store.Calls)
	}
}

func TestAddAccountCreationFailure(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	gw.RefuseCreate = true
	svc := NewService(store, gw)

	_, err := svc.Add(context.Background(), adminActor("u1"), CreateRequest{
		Username: "nowy", Email: "nowy@example.com", Password: "pw",
		FirstName: "Jan", LastName: "Nowak",
	})
	if apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	if err.Error() != identity.MsgAccountCreateFailed {
		t.Fatalf("expected fixed message, got %q", err.Error())
	}
	if store.Calls["Create"] != 0 {
		t.Fatal("no orphaned profile may be created")
	}
}

func TestAddCompensatesWhenProfilePersistFails(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	store.Err = fmt.Errorf("insert failed")
	svc := NewService(store, gw)

	_, err := svc.Add(context.Background(), adminActor("u1"), CreateRequest{
		Username: "nowy", Email: "nowy@example.com", Password: "pw",
		FirstName: "Jan", LastName: "Nowak",
	})
	if apperr.KindOf(err) != apperr.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	if gw.Calls["Delete"] != 1 {
		t.Fatalf("expected orphaned identity cleanup, calls=%v", gw.Calls)
	}
}

func TestAddThenGetByIDRoundTrip(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	svc := NewService(store, gw)
	ctx := context.Background()

	created, err := svc.Add(ctx, adminActor("boss"), CreateRequest{
		Username: "nowy", Email: "nowy@example.com", Password: "pw",
		FirstName: "Jan", LastName: "Nowak",
	})
	if err != nil {
		t.Fatalf("add error: %v", err)
	}

	ident, err := gw.FindByName(ctx, "nowy")
	if err != nil || ident == nil {
		t.Fatalf("created identity missing: %v", err)
	}
	if created.UserID != ident.ID {
		t.Fatalf("view UserID %q should equal created identity id %q", created.UserID, ident.ID)
	}
	roles, _ := gw.UserRoles(ctx, ident.ID)
	if len(roles) != 1 || roles[0] != identity.RoleAdmin {
		t.Fatalf("expected Admin role membership, got %v", roles)
	}

	got, err := svc.GetByID(ctx, adminActor("boss"), created.ID)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.FirstName != "Jan" || got.LastName != "Nowak" || got.Username != "nowy" || got.Email != "nowy@example.com" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestUpdateNotFoundBeforeAuthorization(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	svc := NewService(store, gw)

	_, err := svc.Update(context.Background(), userActor("u2"), "missing", UpdateRequest{FirstName: "X"})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound for absent profile, got %v", err)
	}
}

func TestUpdateDanglingIdentity(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	store.Seed(Admin{ID: "a1", UserID: "ghost", FirstName: "Anna", LastName: "Nowak"})
	svc := NewService(store, gw)

	_, err := svc.Update(context.Background(), adminActor("u1"), "a1", UpdateRequest{FirstName: "X"})
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound for dangling identity, got %v", err)
	}
	if store.Calls["Update"] != 0 || gw.Calls["Update"] != 0 {
		t.Fatal("no mutation may happen for a dangling identity")
	}
}

func TestUpdateForbiddenWithoutMutation(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	_, err := svc.Update(context.Background(), userActor("u2"), "a1", UpdateRequest{FirstName: "X"})
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if store.Calls["Update"] != 0 || gw.Calls["Update"] != 0 {
		t.Fatalf("mutation happened despite Forbidden: gateway=%v store=%v", gw.Calls, store.Calls)
	}
}

func TestUpdateAccountFailureSurfaces(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	gw.RefuseUpdate = true
	svc := NewService(store, gw)

	_, err := svc.Update(context.Background(), adminActor("u9"), "a1", UpdateRequest{Username: "anna2"})
	if apperr.KindOf(err) != apperr.Internal || err.Error() != identity.MsgAccountUpdateFailed {
		t.Fatalf("expected fixed Internal error, got %v", err)
	}
	if store.Calls["Update"] != 0 {
		t.Fatal("profile must not change when the account update fails")
	}
}

func TestDeleteRequiresAdminRole(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	_, err := svc.Delete(context.Background(), userActor("u1"), "a1")
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if gw.Calls["Delete"] != 0 || store.Calls["Delete"] != 0 {
		t.Fatal("no deletion may happen for a forbidden actor")
	}
}

func TestDeleteSelfRefused(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	_, err := svc.Delete(context.Background(), adminActor("u1"), "a1")
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if err.Error() != "Nie można usunąć własnego konta administratora" {
		t.Fatalf("expected the self-deletion message, got %q", err.Error())
	}
	if exists, _ := store.Exists(context.Background(), "a1"); !exists {
		t.Fatal("profile must survive a refused self-deletion")
	}
	if gw.Calls["Delete"] != 0 {
		t.Fatal("identity must survive a refused self-deletion")
	}
}

func TestDeleteRemovesIdentityBeforeProfile(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	svc := NewService(store, gw)

	var order []string
	gw.OnCall = func(method string) {
		if method == "Delete" {
			order = append(order, "identity.Delete")
		}
	}
	store.OnCall = func(method string) {
		if method == "Delete" {
			order = append(order, "profile.Delete")
		}
	}

	view, err := svc.Delete(context.Background(), adminActor("u9"), "a1")
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if view.FirstName != "Anna" {
		t.Fatalf("expected pre-deletion view, got %+v", view)
	}
	if len(order) != 2 || order[0] != "identity.Delete" || order[1] != "profile.Delete" {
		t.Fatalf("unexpected deletion order: %v", order)
	}
	if exists, _ := store.Exists(context.Background(), "a1"); exists {
		t.Fatal("profile row should be gone")
	}
}

func TestDeleteIdentityFailureKeepsProfile(t *testing.T) {
	store := newStore()
	gw := fake.NewGateway()
	seedAdmin(store, gw, "a1", "u1", "anna")
	gw.RefuseDelete = true
	svc := NewService(store, gw)

	_, err := svc.Delete(context.Background(), adminActor("u9"), "a1")
	if apperr.KindOf(err) != apperr.Internal || err.Error() != identity.MsgAccountDeleteFailed {
		t.Fatalf("expected fixed Internal error, got %v", err)
	}
	if exists, _ := store.Exists(context.Background(), "a1"); !exists {
		t.Fatal("profile must remain when the account deletion fails")
	}
}
