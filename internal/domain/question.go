package domain

import "strings"

// QuestionType tags the shape of a generated question.
type QuestionType string

const (
	QuestionTypeMCQ       QuestionType = "mcq"
	QuestionTypeOpenEnded QuestionType = "open_ended"
)

// ParseQuestionType maps a request tag to a QuestionType.
// Unknown tags yield an INVALID_INPUT DomainError.
func ParseQuestionType(s string) (QuestionType, error) {
	switch QuestionType(strings.TrimSpace(s)) {
	case QuestionTypeMCQ:
		return QuestionTypeMCQ, nil
	case QuestionTypeOpenEnded:
		return QuestionTypeOpenEnded, nil
	}
	return "", NewInvalidQuestionTypeError(s)
}

func (t QuestionType) Valid() bool {
	return t == QuestionTypeMCQ || t == QuestionTypeOpenEnded
}

// Question is a generated quiz item handed to the caller.
// Options is only set for multiple-choice questions; AnswerIndex is -1 otherwise.
type Question struct {
	Question     string       `json:"question"`
	Answer       string       `json:"answer"`
	Options      []string     `json:"options,omitempty"`
	AnswerIndex  int          `json:"answer_index"`
	QuestionType QuestionType `json:"question_type"`
}

// CorrectOption returns the option holding the answer, or "" for open-ended questions.
func (q Question) CorrectOption() string {
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.AnswerIndex]
}
