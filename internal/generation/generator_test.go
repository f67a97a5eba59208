package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRequest(maxAttempts int) Request {
	return Request{
		ID:           "test",
		SystemPrompt: "You generate quiz questions.",
		UserPrompts:  []string{"Ask about Go"},
		Schema:       openEndedSchema,
		Temperature:  1,
		MaxAttempts:  maxAttempts,
	}
}

func TestGenerator_SucceedsOnFirstAttempt(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.AnythingOfType("string"), 1.0).
		Return(`[{"question":"Q","answer":"A"}]`, nil).Once()

	g := NewGenerator(model, WithLogger(zap.NewNop()))
	records := g.Generate(context.Background(), newRequest(3))

	require.Len(t, records, 1)
	assert.Equal(t, "Q", records[0]["question"])
	model.AssertNumberOfCalls(t, "Generate", 1)
	model.AssertExpectations(t)
}

func TestGenerator_RetriesWithMissingKeyInPrompt(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(`[{"question":"Q"}]`, nil).Once()
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(`[{"question":"Q","answer":"A"}]`, nil).Once()

	g := NewGenerator(model)
	records := g.Generate(context.Background(), newRequest(3))

	require.Len(t, records, 1)
	model.AssertNumberOfCalls(t, "Generate", 2)
	assert.NotContains(t, model.promptAt(0), "not in json output")
	second := model.promptAt(1)
	assert.Contains(t, second, "answer not in json output")
	assert.Contains(t, second, `Result: [{"question":"Q"}]`)
}

func TestGenerator_RetriesOnParseErrorWithRawText(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(`Sure! Here is your quiz`, nil).Once()
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(`[{'question':'Q','answer':'It's A'}]`, nil).Once()

	g := NewGenerator(model)
	records := g.Generate(context.Background(), newRequest(2))

	require.Len(t, records, 1)
	assert.Equal(t, "It's A", records[0]["answer"])
	second := model.promptAt(1)
	assert.Contains(t, second, "Result: Sure! Here is your quiz")
	assert.Contains(t, second, "Error message: model output is not valid json")
}

func TestGenerator_ExhaustsOnModelErrors(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("upstream unavailable"))

	g := NewGenerator(model)
	records := g.Generate(context.Background(), newRequest(3))

	assert.NotNil(t, records)
	assert.Empty(t, records)
	model.AssertNumberOfCalls(t, "Generate", 3)
	assert.Contains(t, model.promptAt(1), "Error generating content: upstream unavailable")
	assert.Contains(t, model.promptAt(2), "Error generating content: upstream unavailable")
}

func TestGenerator_ErrorContextIsReplacedNotAccumulated(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("first failure")).Once()
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(`[{"answer":"A"}]`, nil).Once()
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return(`[{"question":"Q","answer":"A"}]`, nil).Once()

	g := NewGenerator(model)
	records := g.Generate(context.Background(), newRequest(3))

	require.Len(t, records, 1)
	third := model.promptAt(2)
	assert.Contains(t, third, "question not in json output")
	assert.NotContains(t, third, "first failure")
}

func TestGenerator_ClampsMaxAttempts(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("not json", nil)

	g := NewGenerator(model)
	records := g.Generate(context.Background(), newRequest(0))

	assert.Empty(t, records)
	model.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGenerator_CancelledContextMakesNoCalls(t *testing.T) {
	model := new(MockTextGenerator)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGenerator(model)
	records := g.Generate(ctx, newRequest(3))

	assert.Empty(t, records)
	model.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerator_TimeoutBoundsWholeLoop(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			<-args.Get(0).(context.Context).Done()
		}).
		Return("", context.DeadlineExceeded)

	g := NewGenerator(model, WithTimeout(30*time.Millisecond))
	start := time.Now()
	records := g.Generate(context.Background(), newRequest(5))

	assert.Empty(t, records)
	assert.Less(t, time.Since(start), 2*time.Second)
	model.AssertNumberOfCalls(t, "Generate", 1)
}

func TestGenerator_PassesTemperature(t *testing.T) {
	model := new(MockTextGenerator)
	model.On("Generate", mock.Anything, mock.Anything, 0.2).
		Return(`{"question":"Q","answer":"A"}`, nil).Once()

	req := newRequest(1)
	req.Temperature = 0.2
	records := NewGenerator(model, WithVerbose(true)).Generate(context.Background(), req)

	assert.Len(t, records, 1)
	model.AssertExpectations(t)
}
