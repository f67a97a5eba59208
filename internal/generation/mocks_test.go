package generation

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// --- MockTextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

// promptAt returns the prompt passed to the i-th Generate call.
func (m *MockTextGenerator) promptAt(i int) string {
	return m.Calls[i].Arguments.String(1)
}
