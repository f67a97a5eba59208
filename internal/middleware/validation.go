package middleware

import (
	"quiz-forge/internal/domain"
	"quiz-forge/internal/dto"
	"quiz-forge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedRequestKey is the fiber.Locals key holding the validated request body.
const ValidatedRequestKey = "validated_request"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuestions parses and validates the POST /api/questions body.
func (vm *ValidationMiddleware) ValidateGenerateQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuestionsRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ValidationErrors{
				{Field: "body", Message: "request body must be a json object"},
			}
		}

		if errs := vm.validator.ValidateGenerateQuestionsRequest(&req); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler
		}

		c.Locals(ValidatedRequestKey, &req)
		return c.Next()
	}
}
