package services

import (
	"context"
	"fmt"

	"github.com/learnpath/lmscli/internal/client/api"
	"github.com/learnpath/lmscli/internal/client/models"
	"github.com/learnpath/lmscli/internal/client/retry"
)

// EnrollmentService starts the paid enrollment flow. The actual payment
// happens on the external gateway page the returned URL points at.
type EnrollmentService struct {
	api api.Client
}

func NewEnrollmentService(apiClient api.Client) *EnrollmentService {
	return &EnrollmentService{api: apiClient}
}

// Initiate asks the backend for a checkout session. Mutating call: the
// stricter write policy applies, so an ambiguous client error never
// produces a duplicate order.
func (s *EnrollmentService) Initiate(ctx context.Context) (*models.Enrollment, error) {
	var enr *models.Enrollment
	err := retry.Do(ctx, retry.Writes, func(ctx context.Context) error {
		var callErr error
		enr, callErr = s.api.InitiateEnrollment(ctx)
		return callErr
	})
	if err != nil {
		return nil, fmt.Errorf("initiate enrollment: %w", err)
	}
	return enr, nil
}
