package admins

import (
	"context"
	"strings"

	"ocena/internal/apperr"
	"ocena/internal/domain/authz"
	"ocena/internal/domain/identity"
	"ocena/internal/domain/repository"
)

const msgProfileMissing = "Nie znaleziono profilu administratora"

// Service enforces the administrator authorization rules: reads are
// admin-or-owner, listing and account management are admin only, and an
// administrator can never delete their own account.
type Service struct {
	repo  repository.Owned[Admin, string]
	users identity.Gateway
}

func NewService(repo repository.Owned[Admin, string], users identity.Gateway) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) GetByID(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	admin, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, admin.UserID, identity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.view(ctx, admin)
}

// GetAll lists administrators from the Admin role membership, not the
// profile table; role assignment is the source of truth and may drift from
// profile existence.
func (s *Service) GetAll(ctx context.Context, actor identity.Actor) ([]View, error) {
	if err := authz.Require(actor, identity.RoleAdmin); err != nil {
		return nil, err
	}

	idents, err := s.users.UsersInRole(ctx, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(idents))
	for _, ident := range idents {
		admin, err := s.repo.GetByUserID(ctx, ident.ID)
		if err != nil {
			return nil, err
		}
		if admin == nil {
			return nil, apperr.New(apperr.NotFound, msgProfileMissing)
		}
		views = append(views, makeView(admin, &ident))
	}
	return views, nil
}

// Current resolves the caller's own administrator profile.
func (s *Service) Current(ctx context.Context, actor identity.Actor) (*View, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.Unauthorized, "")
	}

	admin, err := s.repo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperr.New(apperr.NotFound, msgProfileMissing)
	}
	return s.view(ctx, admin)
}

func (s *Service) Add(ctx context.Context, actor identity.Actor, req CreateRequest) (*View, error) {
	if err := authz.Require(actor, identity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	ident := &identity.Identity{Username: req.Username, Email: req.Email, EmailConfirmed: true}
	created, err := s.users.Create(ctx, ident, req.Password)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountCreateFailed)
	}

	if ok, err := s.users.AddToRole(ctx, ident.ID, identity.RoleAdmin); err != nil || !ok {
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	admin, err := s.repo.Create(ctx, &Admin{UserID: ident.ID, FirstName: req.FirstName, LastName: req.LastName})
	if err != nil {
		// Undo the account so no orphaned identity is left behind.
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	view := makeView(admin, ident)
	return &view, nil
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, id string, req UpdateRequest) (*View, error) {
	admin, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	ident, err := s.identityOf(ctx, admin)
	if err != nil {
		return nil, err
	}

	if err := authz.Allow(actor, admin.UserID, identity.RoleAdmin); err != nil {
		return nil, err
	}

	if req.Username != "" {
		ident.Username = req.Username
	}
	if req.Email != "" {
		ident.Email = req.Email
	}
	updated, err := s.users.Update(ctx, ident)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountUpdateFailed)
	}

	if req.FirstName != "" {
		admin.FirstName = req.FirstName
	}
	if req.LastName != "" {
		admin.LastName = req.LastName
	}
	admin, err = s.repo.Update(ctx, admin)
	if err != nil {
		return nil, err
	}

	view := makeView(admin, ident)
	return &view, nil
}

// Delete removes the identity first, then the profile row. Self-deletion is
// refused even for administrators.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	admin, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Require(actor, identity.RoleAdmin); err != nil {
		return nil, err
	}
	if actor.IsOwner(admin.UserID) {
		return nil, apperr.New(apperr.Forbidden, "Nie można usunąć własnego konta administratora")
	}

	ident, err := s.identityOf(ctx, admin)
	if err != nil {
		return nil, err
	}
	view := makeView(admin, ident)

	deleted, err := s.users.Delete(ctx, admin.UserID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountDeleteFailed)
	}

	if err := s.repo.Delete(ctx, admin.ID); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Service) load(ctx context.Context, id string) (*Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, apperr.New(apperr.NotFound, "administrator not found")
	}
	return admin, nil
}

func (s *Service) identityOf(ctx context.Context, admin *Admin) (*identity.Identity, error) {
	ident, err := s.users.FindByID(ctx, admin.UserID)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, apperr.New(apperr.NotFound, "administrator account not found")
	}
	return ident, nil
}

func (s *Service) view(ctx context.Context, admin *Admin) (*View, error) {
	ident, err := s.identityOf(ctx, admin)
	if err != nil {
		return nil, err
	}
	view := makeView(admin, ident)
	return &view, nil
}

func makeView(admin *Admin, ident *identity.Identity) View {
	return View{
		ID:        admin.ID,
		UserID:    admin.UserID,
		Username:  ident.Username,
		Email:     ident.Email,
		FirstName: admin.FirstName,
		LastName:  admin.LastName,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}

func validateCreate(req CreateRequest) error {
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return apperr.New(apperr.BadRequest, "first name is required")
	case strings.TrimSpace(req.LastName) == "":
		return apperr.New(apperr.BadRequest, "last name is required")
	case strings.TrimSpace(req.Username) == "":
		return apperr.New(apperr.BadRequest, "username is required")
	case strings.TrimSpace(req.Email) == "":
		return apperr.New(apperr.BadRequest, "email is required")
	case req.Password == "":
		return apperr.New(apperr.BadRequest, "password is required")
	}
	return nil
}
