package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/neuronet-health/neuronet/internal/core/domain"
	"github.com/neuronet-health/neuronet/internal/core/ports"
)

// AssessmentService serves the PHQ-9 and GAD-7 questionnaires and scores
// submissions.
type AssessmentService struct {
	repo   ports.AssessmentRepository
	logger zerolog.Logger
}

func NewAssessmentService(repo ports.AssessmentRepository, logger zerolog.Logger) *AssessmentService {
	return &AssessmentService{repo: repo, logger: logger}
}

func (s *AssessmentService) Types() []ports.AssessmentTypeInfo {
	return []ports.AssessmentTypeInfo{
		{Type: domain.PHQ9, Title: "Mental Wellness Check", Duration: "5 min"},
		{Type: domain.GAD7, Title: "Anxiety & Stress Assessment", Duration: "10 min"},
	}
}

func (s *AssessmentService) Questions(typ domain.AssessmentType) ([]domain.Question, error) {
	return domain.Questions(typ)
}

// Submit validates the responses, scores them, and persists the result.
func (s *AssessmentService) Submit(ctx context.Context, userID string, input ports.SubmitAssessmentInput) (*ports.AssessmentResult, error) {
	if err := domain.ValidateResponses(input.Type, input.Responses); err != nil {
		return nil, err
	}

	total, risk := domain.Score(input.Responses)

	assessment := &domain.Assessment{
		UserID:     userID,
		Type:       input.Type,
		Responses:  input.Responses,
		TotalScore: total,
		RiskLevel:  risk,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, assessment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("type", string(input.Type)).
		Int("total_score", total).
		Str("risk_level", risk).
		Msg("assessment submitted")

	return &ports.AssessmentResult{TotalScore: total, RiskLevel: risk}, nil
}

// History returns the user's past submissions, newest first.
func (s *AssessmentService) History(ctx context.Context, userID string) ([]domain.Assessment, error) {
	return s.repo.ListByUser(ctx, userID)
}
