package managers

import (
	"context"
	"strings"

	"ocena/internal/apperr"
	"ocena/internal/domain/authz"
	"ocena/internal/domain/identity"
	"ocena/internal/domain/repository"
)

const msgProfileMissing = "Nie znaleziono profilu menedżera"

// Service enforces the manager authorization rules: reads and updates are
// admin-or-owner, listing and creation are admin only, deletion is
// admin-or-owner.
type Service struct {
	repo  repository.Owned[Manager, string]
	users identity.Gateway
}

func NewService(repo repository.Owned[Manager, string], users identity.Gateway) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) GetByID(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	manager, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, manager.UserID, identity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.view(ctx, manager)
}

func (s *Service) GetAll(ctx context.Context, actor identity.Actor) ([]View, error) {
	if err := authz.Require(actor, identity.RoleAdmin); err != nil {
		return nil, err
	}

	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(all))
	for i := range all {
		view, err := s.view(ctx, &all[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// Current resolves the caller's own manager profile.
func (s *Service) Current(ctx context.Context, actor identity.Actor) (*View, error) {
	if !actor.Authenticated() {
		return nil, apperr.New(apperr.Unauthorized, "")
	}

	manager, err := s.repo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, apperr.New(apperr.NotFound, msgProfileMissing)
	}
	return s.view(ctx, manager)
}

func (s *Service) Add(ctx context.Context, actor identity.Actor, req CreateRequest) (*View, error) {
	if err := authz.Require(actor, identity.RoleAdmin); err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	ident := &identity.Identity{Username: req.Username, Email: req.Email}
	created, err := s.users.Create(ctx, ident, req.Password)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountCreateFailed)
	}

	if ok, err := s.users.AddToRole(ctx, ident.ID, identity.RoleManager); err != nil || !ok {
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	manager, err := s.repo.Create(ctx, &Manager{
		UserID:              ident.ID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		AchievementsSummary: req.AchievementsSummary,
	})
	if err != nil {
		// Undo the account so no orphaned identity is left behind.
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	view := makeView(manager, ident)
	return &view, nil
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, id string, req UpdateRequest) (*View, error) {
	manager, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	ident, err := s.identityOf(ctx, manager)
	if err != nil {
		return nil, err
	}

	if err := authz.Allow(actor, manager.UserID, identity.RoleAdmin); err != nil {
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
		manager.FirstName = req.FirstName
	}
	if req.LastName != "" {
		manager.LastName = req.LastName
	}
	if req.AchievementsSummary != "" {
		manager.AchievementsSummary = req.AchievementsSummary
	}
	manager, err = s.repo.Update(ctx, manager)
	if err != nil {
		return nil, err
	}

	view := makeView(manager, ident)
	return &view, nil
}

// Delete removes the identity first, then the profile row.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	manager, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Allow(actor, manager.UserID, identity.RoleAdmin); err != nil {
		return nil, err
	}

	ident, err := s.identityOf(ctx, manager)
	if err != nil {
		return nil, err
	}
	view := makeView(manager, ident)

	deleted, err := s.users.Delete(ctx, manager.UserID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountDeleteFailed)
	}

	if err := s.repo.Delete(ctx, manager.ID); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Service) load(ctx context.Context, id string) (*Manager, error) {
	manager, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if manager == nil {
		return nil, apperr.New(apperr.NotFound, "manager not found")
	}
	return manager, nil
}

func (s *Service) identityOf(ctx context.Context, manager *Manager) (*identity.Identity, error) {
	ident, err := s.users.FindByID(ctx, manager.UserID)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, apperr.New(apperr.NotFound, "manager account not found")
	}
	return ident, nil
}

func (s *Service) view(ctx context.Context, manager *Manager) (*View, error) {
	ident, err := s.identityOf(ctx, manager)
	if err != nil {
		return nil, err
	}
	view := makeView(manager, ident)
	return &view, nil
}

func makeView(manager *Manager, ident *identity.Identity) View {
	return View{
		ID:                  manager.ID,
		UserID:              manager.UserID,
		Username:            ident.Username,
		Email:               ident.Email,
		FirstName:           manager.FirstName,
		LastName:            manager.LastName,
		AchievementsSummary: manager.AchievementsSummary,
		CreatedAt:           manager.CreatedAt,
		UpdatedAt:           manager.UpdatedAt,
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
