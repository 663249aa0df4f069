package ports

import (
	"context"

	"github.com/neuronet-health/neuronet/internal/core/domain"
)

// AssessmentTypeInfo describes one available questionnaire for listing.
type AssessmentTypeInfo struct {
	Type     domain.AssessmentType `json:"type"`
	Title    string                `json:"title"`
	Duration string                `json:"duration"`
}

// SubmitAssessmentInput is the DTO passed from the transport layer.
type SubmitAssessmentInput struct {
	Type      domain.AssessmentType
	Responses []domain.Response
}

// AssessmentResult is the scored outcome of a submission.
type AssessmentResult struct {
	TotalScore int    `json:"total_score"`
	RiskLevel  string `json:"risk_level"`
}

type AssessmentService interface {
	Types() []AssessmentTypeInfo
	Questions(typ domain.AssessmentType) ([]domain.Question, error)
	Submit(ctx context.Context, userID string, input SubmitAssessmentInput) (*AssessmentResult, error)
	History(ctx context.Context, userID string) ([]domain.Assessment, error)
}
