package examples

import (
	"context"
	"strings"

	"ocena/internal/apperr"
	"ocena/internal/domain/repository"
)

type Service struct {
	repo repository.Repository[Example, int]
}

func NewService(repo repository.Repository[Example, int]) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int) (*Example, error) {
	example, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if example == nil {
		return nil, apperr.New(apperr.NotFound, "example not found")
	}
	return example, nil
}

func (s *Service) GetAll(ctx context.Context) ([]Example, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) Add(ctx context.Context, req Request) (*Example, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperr.New(apperr.BadRequest, "name is required")
	}
	return s.repo.Create(ctx, &Example{Name: req.Name, Description: req.Description, Detail: req.Detail})
}

func (s *Service) Update(ctx context.Context, id int, req Request) (*Example, error) {
	example, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		example.Name = req.Name
	}
	if req.Description != "" {
		example.Description = req.Description
	}
	if req.Detail != "" {
		example.Detail = req.Detail
	}
	return s.repo.Update(ctx, example)
}

func (s *Service) Delete(ctx context.Context, id int) (*Example, error) {
	example, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return example, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}
