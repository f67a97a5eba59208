package handler

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question generation HTTP requests
type QuestionHandler struct {
	service domain.QuestionGenerator
	logger  *zap.Logger
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service domain.QuestionGenerator, logger *zap.Logger) *QuestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionHandler{
		service: service,
		logger:  logger,
	}
}

// GenerateQuestions handles POST /api/questions.
// The body must already be validated by middleware.ValidateGenerateQuestions.
func (h *QuestionHandler) GenerateQuestions(c *fiber.Ctx) error {
	req, ok := c.Locals(middleware.ValidatedRequestKey).(*dto.GenerateQuestionsRequest)
	if !ok {
		return domain.NewInternalError("validated request missing from context", nil)
	}

	questionType, err := domain.ParseQuestionType(req.Type)
	if err != nil {
		return err
	}

	questions, err := h.service.GenerateQuestions(c.UserContext(), req.Topic, req.Amount, questionType)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		h.logger.Warn("Question generation exhausted",
			zap.String("topic", req.Topic),
			zap.Int("amount", req.Amount),
			zap.String("type", req.Type),
		)
		return domain.NewGenerationFailedError()
	}

	return c.JSON(dto.GenerateQuestionsResponse{Questions: toQuestionResponses(questions)})
}

// Health handles GET /api/health
func (h *QuestionHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "ok"})
}

func toQuestionResponses(questions []domain.Question) []dto.QuestionResponse {
	out := make([]dto.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp := dto.QuestionResponse{
			Question:     q.Question,
			Answer:       q.Answer,
			QuestionType: string(q.QuestionType),
		}
		if q.QuestionType == domain.QuestionTypeMCQ {
			idx := q.AnswerIndex
			resp.Options = q.Options
			resp.AnswerIndex = &idx
		}
		out = append(out, resp)
	}
	return out
}
