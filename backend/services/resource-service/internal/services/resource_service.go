package services

import (
	"context"

	"github.com/leetaniau/foodmap/backend/shared/go-models"
	"github.com/leetaniau/foodmap/backend/shared/go-repositories"
	"github.com/leetaniau/foodmap/backend/shared/go-utils"

	"github.com/leetaniau/foodmap/backend/services/resource-service/internal/dtos"
)

type ResourceService interface {
	GetResource(ctx context.Context, id string) (*models.Resource, error)
	CreateResource(ctx context.Context, req dtos.CreateResourceRequest) (*models.Resource, error)
	SetFavorite(ctx context.Context, id string, isFavorite bool) (*models.Resource, error)
	Ping(ctx context.Context) error
}

type resourceService struct {
	repo repositories.ResourceRepository
}

func NewResourceService(repo repositories.ResourceRepository) ResourceService {
	return &resourceService{repo: repo}
}

func (s *resourceService) GetResource(ctx context.Context, id string) (*models.Resource, error) {
	return s.repo.GetResource(ctx, id)
}

func (s *resourceService) CreateResource(ctx context.Context, req dtos.CreateResourceRequest) (*models.Resource, error) {
	created, err := s.repo.CreateResource(ctx, req.ToModel())
	if err != nil {
		return nil, err
	}
	utils.Logger.WithField("resource_id", created.ID).Infof("Created resource %q", created.Name)
	return created, nil
}

func (s *resourceService) SetFavorite(ctx context.Context, id string, isFavorite bool) (*models.Resource, error) {
	return s.repo.UpdateResource(ctx, id, models.FavoriteUpdate{IsFavorite: isFavorite})
}

func (s *resourceService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
