package employees

import (
	"context"
	"strings"

	"ocena/internal/apperr"
	"ocena/internal/domain/authz"
	"ocena/internal/domain/identity"
	"ocena/internal/domain/repository"
)

// Service enforces the employee authorization rules. Any manager may read
// and edit any employee; there is no manages-this-subordinate check. The
// employee themselves gets owner access to their own profile.
type Service struct {
	repo  repository.Repository[Employee, string]
	users identity.Gateway
}

func NewService(repo repository.Repository[Employee, string], users identity.Gateway) *Service {
	return &Service{repo: repo, users: users}
}

func (s *Service) GetByID(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	employee, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Allow(actor, employee.UserID, identity.RoleAdmin, identity.RoleManager); err != nil {
		return nil, err
	}
	return s.view(ctx, employee)
}

func (s *Service) GetAll(ctx context.Context, actor identity.Actor) ([]View, error) {
	if err := authz.Require(actor, identity.RoleAdmin, identity.RoleManager); err != nil {
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

func (s *Service) Add(ctx context.Context, actor identity.Actor, req CreateRequest) (*View, error) {
	if err := authz.Require(actor, identity.RoleAdmin, identity.RoleManager); err != nil {
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

	if ok, err := s.users.AddToRole(ctx, ident.ID, identity.RoleEmployee); err != nil || !ok {
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	employee, err := s.repo.Create(ctx, &Employee{
		UserID:              ident.ID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Position:            req.Position,
		EvaluationPeriod:    req.EvaluationPeriod,
		FinalScore:          req.FinalScore,
		AchievementsSummary: req.AchievementsSummary,
	})
	if err != nil {
		// Undo the account so no orphaned identity is left behind.
		_, _ = s.users.Delete(ctx, ident.ID)
		return nil, apperr.Wrap(apperr.Internal, identity.MsgAccountCreateFailed, err)
	}

	view := makeView(employee, ident)
	return &view, nil
}

func (s *Service) Update(ctx context.Context, actor identity.Actor, id string, req UpdateRequest) (*View, error) {
	employee, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	ident, err := s.identityOf(ctx, employee)
	if err != nil {
		return nil, err
	}

	if err := authz.Allow(actor, employee.UserID, identity.RoleAdmin, identity.RoleManager); err != nil {
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
		employee.FirstName = req.FirstName
	}
	if req.LastName != "" {
		employee.LastName = req.LastName
	}
	if req.Position != "" {
		employee.Position = req.Position
	}
	if req.EvaluationPeriod != "" {
		employee.EvaluationPeriod = req.EvaluationPeriod
	}
	if req.FinalScore != "" {
		employee.FinalScore = req.FinalScore
	}
	if req.AchievementsSummary != "" {
		employee.AchievementsSummary = req.AchievementsSummary
	}
	employee, err = s.repo.Update(ctx, employee)
	if err != nil {
		return nil, err
	}

	view := makeView(employee, ident)
	return &view, nil
}

// Delete removes the identity first, then the profile row.
func (s *Service) Delete(ctx context.Context, actor identity.Actor, id string) (*View, error) {
	employee, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := authz.Allow(actor, employee.UserID, identity.RoleAdmin, identity.RoleManager); err != nil {
		return nil, err
	}

	ident, err := s.identityOf(ctx, employee)
	if err != nil {
		return nil, err
	}
	view := makeView(employee, ident)

	deleted, err := s.users.Delete(ctx, employee.UserID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperr.New(apperr.Internal, identity.MsgAccountDeleteFailed)
	}

	if err := s.repo.Delete(ctx, employee.ID); err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *Service) load(ctx context.Context, id string) (*Employee, error) {
	employee, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperr.New(apperr.NotFound, "employee not found")
	}
	return employee, nil
}

func (s *Service) identityOf(ctx context.Context, employee *Employee) (*identity.Identity, error) {
	ident, err := s.users.FindByID(ctx, employee.UserID)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, apperr.New(apperr.NotFound, "employee account not found")
	}
	return ident, nil
}

func (s *Service) view(ctx context.Context, employee *Employee) (*View, error) {
	ident, err := s.identityOf(ctx, employee)
	if err != nil {
		return nil, err
	}
	view := makeView(employee, ident)
	return &view, nil
}

func makeView(employee *Employee, ident *identity.Identity) View {
	return View{
		ID:                  employee.ID,
		UserID:              employee.UserID,
		Username:            ident.Username,
		Email:               ident.Email,
		FirstName:           employee.FirstName,
		LastName:            employee.LastName,
		Position:            employee.Position,
		EvaluationPeriod:    employee.EvaluationPeriod,
		FinalScore:          employee.FinalScore,
		AchievementsSummary: employee.AchievementsSummary,
		CreatedAt:           employee.CreatedAt,
		UpdatedAt:           employee.UpdatedAt,
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
