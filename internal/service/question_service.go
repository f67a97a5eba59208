package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/generation"
	"quiz-forge/internal/util"

	"go.uber.org/zap"
)

const (
	mcqSystemPrompt = "You are a helpful AI that is able to generate mcq questions and answers, " +
		"the length of each answer should not be more than 15 words, " +
		"store all answers and questions and options in a JSON array"
	openEndedSystemPrompt = "You are a helpful AI that is able to generate a pair of question and answers, " +
		"the length of each answer should not be more than 15 words, " +
		"store all the pairs of answers and questions in a JSON array"

	mcqUserPrompt       = "You are to generate a random hard mcq question about %s"
	openEndedUserPrompt = "You are to generate a random hard open-ended questions about %s"
)

var (
	mcqSchema = generation.Schema{
		generation.Describe("question", "question"),
		generation.Describe("answer", "answer with max length of 15 words"),
		generation.Describe("option1", "option1 with max length of 15 words"),
		generation.Describe("option2", "option2 with max length of 15 words"),
		generation.Describe("option3", "option3 with max length of 15 words"),
	}
	openEndedSchema = generation.Schema{
		generation.Describe("question", "question"),
		generation.Describe("answer", "answer with max length of 15 words"),
	}
)

// RecordGenerator runs one generation call; an empty result means it failed.
type RecordGenerator interface {
	Generate(ctx context.Context, req generation.Request) []generation.Record
}

// questionService implements domain.QuestionGenerator.
type questionService struct {
	records     RecordGenerator
	temperature float64
	maxAttempts int
	shuffle     func(n int, swap func(i, j int))
	logger      *zap.Logger
}

type QuestionServiceOption func(*questionService)

// WithRand makes option shuffling use r. r must not be shared across goroutines.
func WithRand(r *rand.Rand) QuestionServiceOption {
	return func(s *questionService) {
		s.shuffle = r.Shuffle
	}
}

// NewQuestionService creates a new instance of questionService.
func NewQuestionService(records RecordGenerator, llmCfg config.LLMConfig, logger *zap.Logger, opts ...QuestionServiceOption) domain.QuestionGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &questionService{
		records:     records,
		temperature: llmCfg.Temperature,
		maxAttempts: llmCfg.MaxAttempts,
		shuffle:     rand.Shuffle,
		logger:      logger,
	}
	if s.maxAttempts < 1 {
		s.maxAttempts = config.DefaultMaxAttempts
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateQuestions picks the schema and prompts for questionType, runs the
// generation loop and shapes the records into questions. Bad arguments fail
// before the model is called; a failed generation returns an empty slice.
func (s *questionService) GenerateQuestions(ctx context.Context, topic string, amount int, questionType domain.QuestionType) ([]domain.Question, error) {
	var (
		systemPrompt string
		userPrompt   string
		schema       generation.Schema
	)
	switch questionType {
	case domain.QuestionTypeMCQ:
		systemPrompt, userPrompt, schema = mcqSystemPrompt, mcqUserPrompt, mcqSchema
	case domain.QuestionTypeOpenEnded:
		systemPrompt, userPrompt, schema = openEndedSystemPrompt, openEndedUserPrompt, openEndedSchema
	default:
		return nil, domain.NewInvalidQuestionTypeError(string(questionType))
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.NewInvalidInputError("topic is required")
	}
	if amount <= 0 {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("amount must be greater than 0, got %d", amount))
	}

	userPrompts := make([]string, amount)
	for i := range userPrompts {
		userPrompts[i] = fmt.Sprintf(userPrompt, topic)
	}

	req := generation.Request{
		ID:           util.NewULID(),
		SystemPrompt: systemPrompt,
		UserPrompts:  userPrompts,
		Schema:       schema,
		Temperature:  s.temperature,
		MaxAttempts:  s.maxAttempts,
	}

	s.logger.Info("Generating questions",
		zap.String("generation_id", req.ID),
		zap.String("topic", topic),
		zap.Int("amount", amount),
		zap.String("type", string(questionType)))

	records := s.records.Generate(ctx, req)
	if len(records) == 0 {
		s.logger.Warn("No questions generated", zap.String("generation_id", req.ID), zap.String("topic", topic))
		return []domain.Question{}, nil
	}

	questions := make([]domain.Question, 0, len(records))
	for _, record := range records {
		if questionType == domain.QuestionTypeMCQ {
			questions = append(questions, s.toMCQ(record))
		} else {
			questions = append(questions, toOpenEnded(record))
		}
	}
	return questions, nil
}

func toOpenEnded(record generation.Record) domain.Question {
	question, _ := record.String("question")
	answer, _ := record.String("answer")
	return domain.Question{
		Question:     question,
		Answer:       answer,
		AnswerIndex:  -1,
		QuestionType: domain.QuestionTypeOpenEnded,
	}
}

// toMCQ mixes the answer into the three distractors in random order.
func (s *questionService) toMCQ(record generation.Record) domain.Question {
	question, _ := record.String("question")
	answer, _ := record.String("answer")
	choices := make([]string, 0, 4)
	for _, key := range []string{"option1", "option2", "option3"} {
		option, _ := record.String(key)
		choices = append(choices, option)
	}
	choices = append(choices, answer)

	// Track the answer by position, not by text: a distractor may repeat it.
	order := []int{0, 1, 2, 3}
	s.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	options := make([]string, len(order))
	answerIndex := -1
	for pos, idx := range order {
		options[pos] = choices[idx]
		if idx == len(choices)-1 {
			answerIndex = pos
		}
	}

	return domain.Question{
		Question:     question,
		Answer:       answer,
		Options:      options,
		AnswerIndex:  answerIndex,
		QuestionType: domain.QuestionTypeMCQ,
	}
}

var _ domain.QuestionGenerator = (*questionService)(nil)
