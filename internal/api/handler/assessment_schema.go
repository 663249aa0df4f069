package handler

import "time"

type responseItem struct {
	QuestionID int `json:"question_id" validate:"required,gte=1"`
	Score      int `json:"score"       validate:"gte=0,lte=3"`
}

type submitAssessmentRequest struct {
	Type      string         `json:"type"      validate:"required,oneof=PHQ-9 GAD-7"`
	Responses []responseItem `json:"responses" validate:"required,min=1,dive"`
}

type submitAssessmentResponse struct {
	TotalScore int    `json:"total_score"`
	RiskLevel  string `json:"risk_level"`
}

type assessmentRecord struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	TotalScore int       `json:"total_score"`
	RiskLevel  string    `json:"risk_level"`
	CreatedAt  time.Time `json:"created_at"`
}
