package service

import (
	"context"
	"log"
	"math"

	"quiz-content-service/internal/apperr"
	"quiz-content-service/internal/event"
	"quiz-content-service/internal/models"
)

// QuizReader is the read path used by scoring. Satisfied by the repository
// directly or by the Redis read-through cache wrapped around it.
type QuizReader interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
}

// ScoringService evaluates submitted answers against a stored quiz.
type ScoringService struct {
	Quizzes QuizReader
	Events  event.Publisher
}

func NewScoringService(quizzes QuizReader, events event.Publisher) *ScoringService {
	return &ScoringService{Quizzes: quizzes, Events: events}
}

// CheckAnswers scores a batch of submitted (question, answer) index pairs.
// Each pair is evaluated independently; a bad index is recorded as an
// incorrect result with an error tag, never as an operation failure.
func (s *ScoringService) CheckAnswers(ctx context.Context, quizID string, answers []models.AnswerSubmission) (*models.ScoreResult, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperr.NotFound("quiz %s not found", quizID)
	}

	content := quiz.Content
	results := make([]models.AnswerCheck, 0, len(answers))
	correct := 0
	for _, sub := range answers {
		check := checkAnswer(content, sub)
		if check.IsCorrect {
			correct++
		}
		results = append(results, check)
	}

	totalQuestions := len(content.Questions)
	score := float64(correct) * content.ScorePerQuestion
	maxScore := float64(totalQuestions) * content.ScorePerQuestion
	percentage := 0.0
	if maxScore > 0 {
		percentage = math.Round(score/maxScore*100*100) / 100
	}

	result := &models.ScoreResult{
		TotalQuestions:   totalQuestions,
		TotalAnswered:    len(answers),
		CorrectAnswers:   correct,
		IncorrectAnswers: len(answers) - correct,
		Score:            score,
		MaxScore:         maxScore,
		Percentage:       percentage,
		Results:          results,
	}

	if s.Events != nil {
		if err := s.Events.PublishAnswersChecked(ctx, quizID, score, maxScore); err != nil {
			log.Printf("Error publishing quiz.answers_checked for %s: %v", quizID, err)
		}
	}

	return result, nil
}

// checkAnswer evaluates a single pair. The canonical correct answer is the
// first answer flagged is_correct; a question configured without one is a
// data anomaly and reports index -1 / "N/A".
func checkAnswer(content models.QuizContent, sub models.AnswerSubmission) models.AnswerCheck {
	check := models.AnswerCheck{
		QuestionIndex:       sub.QuestionIndex,
		SelectedAnswerIndex: sub.SelectedAnswerIndex,
		CorrectAnswerIndex:  -1,
		CorrectAnswerText:   models.NoAnswerText,
	}

	if sub.QuestionIndex < 0 || sub.QuestionIndex >= len(content.Questions) {
		check.Error = models.ErrorQuestionOutOfRange
		return check
	}
	question := content.Questions[sub.QuestionIndex]

	if sub.SelectedAnswerIndex < 0 || sub.SelectedAnswerIndex >= len(question.Answers) {
		check.Error = models.ErrorAnswerOutOfRange
		return check
	}

	for i, a := range question.Answers {
		if a.IsCorrect {
			check.CorrectAnswerIndex = i
			check.CorrectAnswerText = a.AnswerText
			break
		}
	}

	selected := question.Answers[sub.SelectedAnswerIndex]
	check.SelectedAnswerText = selected.AnswerText
	check.IsCorrect = selected.IsCorrect

	return check
}
