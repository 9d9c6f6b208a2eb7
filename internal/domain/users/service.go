// Package users manages plain accounts: identities holding the User role
// with no elevated domain profile. It works directly against the identity
// gateway; there is no profile table behind it.
package users

import (
	"context"
	"strings"
	"time"

	"ocena/internal/apperr"
	"ocena/internal/domain/authz"
	"ocena/internal/domain/identity"
)

type View struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type Service struct {
	users identity.Gateway
}

func NewService(users identity.Gateway) *Service {
	return &Service{users: users}
}

func (s *Service) GetByID(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	ident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, ident.ID, identity.RoleAdmin); err != nil {
		return nil, err
	}
	return s.view(ctx, ident)
}

func (s *Service) GetAll(ctx context.Context, actor identity.Actor) ([]View, error) {
	if err := authz.Require(actor, identity.RoleAdmin); err != nil {
		return nil, err
	}

	idents, err := s.users.UsersInRole(ctx, identity.RoleUser)
	if err != nil {
		return nil, err
	}

	views := make([]View, 0, len(idents))
	for i := range idents {
		view, err := s.view(ctx, &idents[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
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

	if ok, err := s.users.AddToRole(ctx, ident.ID, identity.RoleUser); err != nil || !ok {
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	return s.view(ctx, ident)
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, id string, req UpdateRequest) (*View, error) {
	ident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, ident.ID, identity.RoleAdmin); err != nil {
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

	return s.view(ctx, ident)
}

func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	ident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, ident.ID, identity.RoleAdmin); err != nil {
		return nil, err
	}

	view, err := s.view(ctx, ident)
	if err != nil {
		return nil, err
	}

	deleted, err := s.users.Delete(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountDeleteFailed)
	}
	return view, nil
}

// ChangePassword is owner-only; a wrong current password surfaces as
// BadRequest, not Internal.
func (s *Service) ChangePassword(ctx context.Context, actor identity.Actor, id string, req ChangePasswordRequest) error {
	ident, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsOwner(ident.ID) {
		return apperr.New(apperr.Forbidden, "")
	}
	if req.NewPassword == "" {
		return apperr.New(apperr.BadRequest, "new password is required")
	}

	changed, err := s.users.ChangePassword(ctx, ident.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	if !changed {
		return apperr.New(apperr.BadRequest, identity.MsgPasswordChangeFailed)
	}
	return nil
}

func (s *Service) load(ctx context.Context, id string) (*identity.Identity, error) {
	ident, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return ident, nil
}

func (s *Service) view(ctx context.Context, ident *identity.Identity) (*View, error) {
	roles, err := s.users.UserRoles(ctx, ident.ID)
	if err != nil {
		return nil, err
	}
	return &View{
		ID:        ident.ID,
		Username:  ident.Username,
		Email:     ident.Email,
		Roles:     roles,
		CreatedAt: ident.CreatedAt,
		UpdatedAt: ident.UpdatedAt,
	}, nil
}

func validateCreate(req CreateRequest) error {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return apperr.New(apperr.BadRequest, "username is required")
	case strings.TrimSpace(req.Email) == "":
		return apperr.New(apperr.BadRequest, "email is required")
	case req.Password == "":
		return apperr.New(apperr.BadRequest, "password is required")
	}
	return nil
}
