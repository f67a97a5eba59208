package main

import (
	"encoding/json"
	"fmt"
	"io"

	"quiz-forge/internal/bootstrap"
	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions about a topic and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, _ := cmd.Flags().GetString("topic")
			amount, _ := cmd.Flags().GetInt("amount")
			typeFlag, _ := cmd.Flags().GetString("type")

			questionType, err := domain.ParseQuestionType(typeFlag)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := logger.Initialize(cfg.Logger); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logger.Sync()

			svc, cleanup, err := bootstrap.QuestionService(cmd.Context(), cfg, logger.Get())
			if err != nil {
				return err
			}
			defer cleanup()

			return runGenerate(cmd, svc, topic, amount, questionType)
		},
	}

	cmd.Flags().String("topic", "", "Topic to generate questions about")
	cmd.Flags().Int("amount", 1, "Number of questions to generate")
	cmd.Flags().String("type", string(domain.QuestionTypeMCQ), "Question type: mcq or open_ended")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func runGenerate(cmd *cobra.Command, svc domain.QuestionGenerator, topic string, amount int, questionType domain.QuestionType) error {
	questions, err := svc.GenerateQuestions(cmd.Context(), topic, amount, questionType)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		logger.Get().Warn("Question generation exhausted", zap.String("topic", topic))
		return domain.NewGenerationFailedError()
	}
	return writeQuestions(cmd.OutOrStdout(), questions)
}

func writeQuestions(w io.Writer, questions []domain.Question) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string][]domain.Question{"questions": questions})
}
