package ports

import (
	"context"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

// AssessmentRepository defines the persistence interface for scored
// assessment submissions.
type AssessmentRepository interface {
	Insert(ctx context.Context, assessment *domain.Assessment) error
	ListByUser(ctx context.Context, userID string) ([]domain.Assessment, error)
}
