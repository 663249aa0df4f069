package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/neuronet-health/neuronet/internal/api/metrics"
	"github.com/neuronet-health/neuronet/internal/core/domain"
	"github.com/neuronet-health/neuronet/internal/core/ports"
)

// AssessmentHandler serves the PHQ-9 and GAD-7 questionnaire endpoints.
type AssessmentHandler struct {
	service ports.AssessmentService
}

func NewAssessmentHandler(service ports.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// Types handles GET /assessments/types.
//
// @Summary      List available assessment types
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   ports.AssessmentTypeInfo
// @Failure      401   {object}  errorResponse
// @Router       /assessments/types [get]
func (h *AssessmentHandler) Types(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.service.Types())
}

// Questions handles GET /assessments/:type/questions.
//
// @Summary      Get questions for an assessment type
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Param        type  path      string  true  "Assessment type (PHQ-9 or GAD-7)"
// @Success      200   {array}   domain.Question
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /assessments/{type}/questions [get]
func (h *AssessmentHandler) Questions(c echo.Context) error {
	if _, err := ctxUserID(c); err != nil {
		return err
	}

	typ := domain.AssessmentType(c.Param("type"))
	questions, err := h.service.Questions(typ)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questions)
}

// Submit handles POST /assessments/submit — validates, scores, and persists.
//
// @Summary      Submit assessment responses
// @Tags         assessments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitAssessmentRequest  true  "Assessment responses"
// @Success      200   {object}  submitAssessmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /assessments/submit [post]
func (h *AssessmentHandler) Submit(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req submitAssessmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	}

	input := ports.SubmitAssessmentInput{
		Type:      domain.AssessmentType(req.Type),
		Responses: make([]domain.Response, 0, len(req.Responses)),
	}
	for _, r := range req.Responses {
		input.Responses = append(input.Responses, domain.Response{
			QuestionID: r.QuestionID,
			Score:      r.Score,
		})
	}

	result, err := h.service.Submit(c.Request().Context(), userID, input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidResponses) {
			return c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		}
		return err
	}

	metrics.AssessmentsSubmittedTotal.WithLabelValues(req.Type, result.RiskLevel).Inc()
	return c.JSON(http.StatusOK, submitAssessmentResponse{
		TotalScore: result.TotalScore,
		RiskLevel:  result.RiskLevel,
	})
}

// History handles GET /assessments/history.
//
// @Summary      List the authenticated user's past assessments
// @Tags         assessments
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   assessmentRecord
// @Failure      401   {object}  errorResponse
// @Router       /assessments/history [get]
func (h *AssessmentHandler) History(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	history, err := h.service.History(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	records := make([]assessmentRecord, 0, len(history))
	for _, a := range history {
		records = append(records, assessmentRecord{
			ID:         a.ID,
			Type:       string(a.Type),
			TotalScore: a.TotalScore,
			RiskLevel:  a.RiskLevel,
			CreatedAt:  a.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, records)
}
