package domain

import (
	"errors"
	"fmt"
	"time"
)

// AssessmentType identifies a clinical questionnaire.
type AssessmentType string

const (
	PHQ9 AssessmentType = "PHQ-9"
	GAD7 AssessmentType = "GAD-7"
)

// Risk levels derived from the total score. Both instruments share the same
// cut points: 0-9 low, 10-14 moderate, 15+ high.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

var ErrUnknownAssessment = errors.New("assessment type not found")
var ErrInvalidResponses = errors.New("invalid assessment responses")

// QuestionOption is one selectable answer with its score contribution.
type QuestionOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question is a single questionnaire item.
type Question struct {
	ID      int              `json:"id"`
	Text    string           `json:"text"`
	Options []QuestionOption `json:"options"`
}

// Response is a user's answer to one question.
type Response struct {
	QuestionID int `json:"question_id" bson:"question_id"`
	Score      int `json:"score" bson:"score"`
}

// Assessment is a completed, scored questionnaire submission.
type Assessment struct {
	ID         string         `json:"id"`
	UserID     string         `json:"-"`
	Type       AssessmentType `json:"type"`
	Responses  []Response     `json:"-"`
	TotalScore int            `json:"total_score"`
	RiskLevel  string         `json:"risk_level"`
	CreatedAt  time.Time      `json:"created_at"`
}

// standardOptions is the 4-point frequency scale shared by every question in
// both instruments.
var standardOptions = []QuestionOption{
	{Value: 0, Label: "Not at all"},
	{Value: 1, Label: "Several days"},
	{Value: 2, Label: "More than half the days"},
	{Value: 3, Label: "Nearly every day"},
}

var phq9Texts = []string{
	"Little interest or pleasure in doing things",
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself - or that you are a failure or have let yourself or your family down",
	"Trouble concentrating on things, such as reading the newspaper or watching television",
	"Moving or speaking so slowly that other people could have noticed. Or the opposite - being so fidgety or restless that you have been moving around a lot more than usual",
	"Thoughts that you would be better off dead, or of hurting yourself in some way",
}

var gad7Texts = []string{
	"Feeling nervous, anxious, or on edge",
	"Not being able to stop or control worrying",
	"Worrying too much about different things",
	"Trouble relaxing",
	"Being so restless that it is hard to sit still",
	"Becoming easily annoyed or irritable",
	"Feeling afraid, as if something awful might happen",
}

var questionBanks = map[AssessmentType][]Question{
	PHQ9: buildQuestions(phq9Texts),
	GAD7: buildQuestions(gad7Texts),
}

func buildQuestions(texts []string) []Question {
	qs := make([]Question, len(texts))
	for i, text := range texts {
		qs[i] = Question{ID: i + 1, Text: text, Options: standardOptions}
	}
	return qs
}

// Questions returns the question bank for an assessment type.
func Questions(typ AssessmentType) ([]Question, error) {
	qs, ok := questionBanks[typ]
	if !ok {
		return nil, ErrUnknownAssessment
	}
	return qs, nil
}

// ValidateResponses checks a submission against the question bank: exact
// question count, no duplicate question IDs, IDs within range, scores 0-3.
func ValidateResponses(typ AssessmentType, responses []Response) error {
	qs, ok := questionBanks[typ]
	if !ok {
		return ErrUnknownAssessment
	}

	if len(responses) != len(qs) {
		return fmt.Errorf("%w: %s requires exactly %d responses", ErrInvalidResponses, typ, len(qs))
	}

	seen := make(map[int]struct{}, len(responses))
	for _, r := range responses {
		if r.QuestionID < 1 || r.QuestionID > len(qs) {
			return fmt.Errorf("%w: invalid question_id %d", ErrInvalidResponses, r.QuestionID)
		}
		if _, dup := seen[r.QuestionID]; dup {
			return fmt.Errorf("%w: duplicate question_id %d", ErrInvalidResponses, r.QuestionID)
		}
		seen[r.QuestionID] = struct{}{}
		if r.Score < 0 || r.Score > 3 {
			return fmt.Errorf("%w: score %d out of range 0-3", ErrInvalidResponses, r.Score)
		}
	}
	return nil
}

// Score sums the response scores and maps the total to a risk level.
// Responses must already be validated.
func Score(responses []Response) (total int, risk string) {
	for _, r := range responses {
		total += r.Score
	}

	switch {
	case total <= 9:
		risk = RiskLow
	case total <= 14:
		risk = RiskModerate
	default:
		risk = RiskHigh
	}
	return total, risk
}
