package services

import (
	"context"
	"fmt"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/retry"
)

// CatalogService serves course and review queries.
type CatalogService struct {
	api api.Client
}

func NewCatalogService(apiClient api.Client) *CatalogService {
	return &CatalogService{api: apiClient}
}

func (s *CatalogService) Courses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := retry.Do(ctx, retry.Reads, func(ctx context.Context) error {
		var callErr error
		courses, callErr = s.api.Courses(ctx)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}
	return courses, nil
}

func (s *CatalogService) PublicModules(ctx context.Context) ([]models.Module, error) {
	var mods []models.Module
	err := retry.Do(ctx, retry.Reads, func(ctx context.Context) error {
		var callErr error
		mods, callErr = s.api.PublicModules(ctx)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch public modules: %w", err)
	}
	return mods, nil
}

func (s *CatalogService) Reviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := retry.Do(ctx, retry.Reads, func(ctx context.Context) error {
		var callErr error
		reviews, callErr = s.api.Reviews(ctx)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("fetch reviews: %w", err)
	}
	return reviews, nil
}

// PostReview publishes a review under the write retry policy.
func (s *CatalogService) PostReview(ctx context.Context, in models.ReviewInput) error {
	err := retry.Do(ctx, retry.Writes, func(ctx context.Context) error {
		return s.api.PostReview(ctx, in)
	})
	if err != nil {
		return fmt.Errorf("post review: %w", err)
	}
	return nil
}
