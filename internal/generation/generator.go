package generation

import (
	"context"
	"fmt"
	"time"

	"quiz-forge/internal/domain"

	"go.uber.org/zap"
)

// Request is one generation call. It is built per call and not retained.
type Request struct {
	// ID correlates the log lines of one call; optional.
	ID           string
	SystemPrompt string
	// UserPrompts holds one prompt per expected output element.
	UserPrompts []string
	Schema      Schema
	Temperature float64
	MaxAttempts int
}

// Generator drives the bounded prompt, parse, validate and retry loop
// against a domain.TextGenerator. It holds no per-call state and is safe
// for concurrent use.
type Generator struct {
	model   domain.TextGenerator
	logger  *zap.Logger
	timeout time.Duration
	verbose bool
}

type Option func(*Generator)

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTimeout bounds the whole multi-attempt loop, not each attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(g *Generator) {
		g.timeout = timeout
	}
}

// WithVerbose logs composed prompts and raw responses at debug level.
func WithVerbose(verbose bool) Option {
	return func(g *Generator) {
		g.verbose = verbose
	}
}

func NewGenerator(model domain.TextGenerator, opts ...Option) *Generator {
	g := &Generator{
		model:  model,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// attemptOutcome is the result of one loop iteration: either validated
// records, or a failure whose errorContext feeds the next prompt.
type attemptOutcome struct {
	records      []Record
	err          error
	errorContext string
}

// Generate returns the validated records of the first successful attempt.
// When every attempt fails, or ctx is done, it returns an empty slice.
// Attempt errors never escape this method.
func (g *Generator) Generate(ctx context.Context, req Request) []Record {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	l := g.logger.With(zap.String("generation_id", req.ID))

	errorContext := ""
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			l.Warn("Generation stopped before attempt", zap.Int("attempt", attempt), zap.Error(err))
			break
		}

		outcome := g.attempt(ctx, l, req, errorContext)
		if outcome.err == nil {
			l.Info("Generation succeeded",
				zap.Int("attempt", attempt),
				zap.Int("num_records", len(outcome.records)))
			return outcome.records
		}

		l.Warn("Generation attempt failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(outcome.err))
		errorContext = outcome.errorContext
	}

	l.Error("Generation exhausted all attempts", zap.Int("max_attempts", maxAttempts))
	return []Record{}
}

func (g *Generator) attempt(ctx context.Context, l *zap.Logger, req Request, errorContext string) attemptOutcome {
	prompt := ComposePrompt(req.SystemPrompt, req.UserPrompts, req.Schema, errorContext)
	if g.verbose {
		l.Debug("Composed generation prompt", zap.String("prompt", prompt))
	}

	raw, err := g.model.Generate(ctx, prompt, req.Temperature)
	if err != nil {
		return attemptOutcome{
			err:          domain.NewLLMServiceError(err),
			errorContext: fmt.Sprintf("\n\nError generating content: %v", err),
		}
	}

	text := NormalizeResponse(raw)
	if g.verbose {
		l.Debug("Normalized model response", zap.String("response", text))
	}

	parsed, err := ParseResponse(text)
	if err != nil {
		return failedOutcome(text, err)
	}
	records, err := ValidateRecords(parsed, req.Schema)
	if err != nil {
		return failedOutcome(text, err)
	}
	return attemptOutcome{records: records}
}

func failedOutcome(text string, err error) attemptOutcome {
	return attemptOutcome{
		err:          err,
		errorContext: fmt.Sprintf("\n\nResult: %s\n\nError message: %v", text, err),
	}
}
