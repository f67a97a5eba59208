package dto

// GenerateQuestionsRequest is the body of POST /api/questions.
type GenerateQuestionsRequest struct {
	Topic  string `json:"topic" validate:"required,min=4,max=50"`
	Amount int    `json:"amount" validate:"required,min=1,max=10"`
	Type   string `json:"type" validate:"required,oneof=mcq open_ended"`
}

// QuestionResponse is one generated question. Options and AnswerIndex are set for mcq only.
type QuestionResponse struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Options      []string `json:"options,omitempty"`
	AnswerIndex  *int     `json:"answer_index,omitempty"`
	QuestionType string   `json:"question_type"`
}

type GenerateQuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
