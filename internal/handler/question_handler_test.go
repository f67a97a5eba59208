package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/handler"
	"quiz-forge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) GenerateQuestions(ctx context.Context, topic string, amount int, questionType domain.QuestionType) ([]domain.Question, error) {
	args := m.Called(ctx, topic, amount, questionType)
	var questions []domain.Question
	if q := args.Get(0); q != nil {
		questions = q.([]domain.Question)
	}
	return questions, args.Error(1)
}

func setupApp(svc domain.QuestionGenerator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.NewQuestionHandler(svc, nil)
	vm := middleware.NewValidationMiddleware()

	api := app.Group("/api")
	api.Get("/health", h.Health)
	api.Post("/questions", vm.ValidateGenerateQuestions(), h.GenerateQuestions)
	return app
}

func postQuestions(t *testing.T, app *fiber.App, body interface{}) (*http.Response, []byte) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/questions", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestGenerateQuestions_MCQ(t *testing.T) {
	svc := new(MockQuestionGenerator)
	svc.On("GenerateQuestions", mock.Anything, "golang", 2, domain.QuestionTypeMCQ).Return([]domain.Question{
		{Question: "Q1", Answer: "A", Options: []string{"B", "A", "C", "D"}, AnswerIndex: 1, QuestionType: domain.QuestionTypeMCQ},
		{Question: "Q2", Answer: "X", Options: []string{"X", "Y", "Z", "W"}, AnswerIndex: 0, QuestionType: domain.QuestionTypeMCQ},
	}, nil)
	app := setupApp(svc)

	resp, raw := postQuestions(t, app, dto.GenerateQuestionsRequest{Topic: "golang", Amount: 2, Type: "mcq"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var out dto.GenerateQuestionsResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Questions, 2)
	assert.Equal(t, []string{"B", "A", "C", "D"}, out.Questions[0].Options)
	require.NotNil(t, out.Questions[0].AnswerIndex)
	assert.Equal(t, 1, *out.Questions[0].AnswerIndex)
	require.NotNil(t, out.Questions[1].AnswerIndex)
	assert.Equal(t, 0, *out.Questions[1].AnswerIndex)
	svc.AssertExpectations(t)
}

func TestGenerateQuestions_OpenEndedOmitsOptions(t *testing.T) {
	svc := new(MockQuestionGenerator)
	svc.On("GenerateQuestions", mock.Anything, "databases", 1, domain.QuestionTypeOpenEnded).Return([]domain.Question{
		{Question: "What is an index?", Answer: "A lookup structure", AnswerIndex: -1, QuestionType: domain.QuestionTypeOpenEnded},
	}, nil)
	app := setupApp(svc)

	resp, raw := postQuestions(t, app, map[string]interface{}{"topic": "  databases ", "amount": 1, "type": "open_ended"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var generic map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic["questions"], 1)
	assert.NotContains(t, generic["questions"][0], "options")
	assert.NotContains(t, generic["questions"][0], "answer_index")
	assert.Equal(t, "open_ended", generic["questions"][0]["question_type"])
	svc.AssertExpectations(t)
}

func TestGenerateQuestions_ExhaustedReturns500(t *testing.T) {
	svc := new(MockQuestionGenerator)
	svc.On("GenerateQuestions", mock.Anything, "golang", 3, domain.QuestionTypeMCQ).Return([]domain.Question{}, nil)
	app := setupApp(svc)

	resp, raw := postQuestions(t, app, dto.GenerateQuestionsRequest{Topic: "golang", Amount: 3, Type: "mcq"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var out middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, string(domain.ErrGenerationFailed), out.Code)
	assert.Equal(t, "Failed to generate questions. Please try again.", out.Error)
}

func TestGenerateQuestions_ValidationFailures(t *testing.T) {
	tests := []struct {
		name  string
		body  interface{}
		field string
	}{
		{"missing topic", map[string]interface{}{"amount": 1, "type": "mcq"}, "topic"},
		{"topic too short", map[string]interface{}{"topic": "go", "amount": 1, "type": "mcq"}, "topic"},
		{"amount zero", map[string]interface{}{"topic": "golang", "amount": 0, "type": "mcq"}, "amount"},
		{"amount too large", map[string]interface{}{"topic": "golang", "amount": 11, "type": "mcq"}, "amount"},
		{"unknown type", map[string]interface{}{"topic": "golang", "amount": 1, "type": "essay"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockQuestionGenerator)
			app := setupApp(svc)

			resp, raw := postQuestions(t, app, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var out middleware.ValidationErrorResponse
			require.NoError(t, json.Unmarshal(raw, &out))
			assert.Equal(t, string(domain.ErrValidation), out.Code)
			require.NotEmpty(t, out.Errors)
			assert.Equal(t, tt.field, out.Errors[0].Field)
			svc.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateQuestions_MalformedBody(t *testing.T) {
	svc := new(MockQuestionGenerator)
	app := setupApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/questions", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuestions_ServiceInvalidInput(t *testing.T) {
	svc := new(MockQuestionGenerator)
	svc.On("GenerateQuestions", mock.Anything, "golang", 1, domain.QuestionTypeMCQ).
		Return(nil, domain.NewInvalidInputError("topic must not be empty"))
	app := setupApp(svc)

	resp, raw := postQuestions(t, app, dto.GenerateQuestionsRequest{Topic: "golang", Amount: 1, Type: "mcq"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, string(domain.ErrInvalidInput), out.Code)
}

func TestHealth(t *testing.T) {
	app := setupApp(new(MockQuestionGenerator))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out.Status)
}
