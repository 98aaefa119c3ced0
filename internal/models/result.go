package models

// Error tags recorded on a per-answer check when a submitted index cannot
// be resolved against the stored content document.
const (
	ErrorQuestionOutOfRange = "QUESTION_INDEX_OUT_OF_RANGE"
	ErrorAnswerOutOfRange   = "ANSWER_INDEX_OUT_OF_RANGE"
)

// NoAnswerText is reported when no canonical correct answer can be named.
const NoAnswerText = "N/A"

type AnswerSubmission struct {
	QuestionIndex       int `json:"question_index"`
	SelectedAnswerIndex int `json:"selected_answer_index"`
}

type CheckAnswersRequest struct {
	Answers []AnswerSubmission `json:"answers" binding:"required"`
}

// AnswerCheck is the outcome for one submitted pair. Out-of-range indexes
// are encoded here via Error, never as an operation failure.
type AnswerCheck struct {
	QuestionIndex       int    `json:"question_index"`
	SelectedAnswerIndex int    `json:"selected_answer_index"`
	IsCorrect           bool   `json:"is_correct"`
	SelectedAnswerText  string `json:"selected_answer_text"`
	CorrectAnswerIndex  int    `json:"correct_answer_index"`
	CorrectAnswerText   string `json:"correct_answer_text"`
	Error               string `json:"error,omitempty"`
}

type ScoreResult struct {
	TotalQuestions   int           `json:"total_questions"`
	TotalAnswered    int           `json:"total_answered"`
	CorrectAnswers   int           `json:"correct_answers"`
	IncorrectAnswers int           `json:"incorrect_answers"`
	Score            float64       `json:"score"`
	MaxScore         float64       `json:"max_score"`
	Percentage       float64       `json:"percentage"`
	Results          []AnswerCheck `json:"results"`
}
