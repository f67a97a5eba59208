package domain

import "context"

// TextGenerator is the generative model client consumed by the generation loop.
// Implementations own transport, auth and rate limiting.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// QuestionGenerator produces quiz questions for a topic.
// The only error it returns is INVALID_INPUT; an exhausted generation
// yields an empty slice and a nil error.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, topic string, amount int, questionType QuestionType) ([]Question, error)
}
