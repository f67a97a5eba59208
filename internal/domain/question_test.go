package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    QuestionType
		wantErr bool
	}{
		{"mcq", "mcq", QuestionTypeMCQ, false},
		{"open ended", "open_ended", QuestionTypeOpenEnded, false},
		{"surrounding spaces", " mcq ", QuestionTypeMCQ, false},
		{"unknown", "unknown_type", "", true},
		{"empty", "", "", true},
		{"wrong case", "MCQ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuestionType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, HasCode(err, ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestQuestion_CorrectOption(t *testing.T) {
	q := Question{Answer: "A", Options: []string{"B", "A", "C", "D"}, AnswerIndex: 1, QuestionType: QuestionTypeMCQ}
	assert.Equal(t, "A", q.CorrectOption())

	open := Question{Question: "Q", Answer: "A", QuestionType: QuestionTypeOpenEnded}
	assert.Equal(t, "", open.CorrectOption())
}

func TestDomainError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewLLMServiceError(cause)

	assert.Equal(t, "Failed to process with LLM service: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, ErrLLMServiceError))
	assert.False(t, HasCode(cause, ErrLLMServiceError))

	body, marshalErr := err.MarshalJSON()
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"code":"LLM_SERVICE_ERROR","message":"Failed to process with LLM service"}`, string(body))

	assert.Equal(t, "answer not in json output", NewConformanceError("answer").Error())
}
