package service

import (
	"context"
	"testing"

	"quiz-content-service/internal/apperr"
	"quiz-content-service/internal/models"
)

type fakeQuizReader struct {
	quiz *models.Quiz
	err  error
}

func (f *fakeQuizReader) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	return f.quiz, f.err
}

func twoQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		ID: "quiz-1",
		Content: models.QuizContent{
			ScorePerQuestion: 10,
			Questions: []models.Question{
				{
					QuestionText: "Q0",
					Answers: []models.Answer{
						{AnswerText: "wrong", IsCorrect: false},
						{AnswerText: "right", IsCorrect: true},
					},
				},
				{
					QuestionText: "Q1",
					Answers: []models.Answer{
						{AnswerText: "right", IsCorrect: true},
						{AnswerText: "wrong", IsCorrect: false},
					},
				},
			},
		},
	}
}

func TestCheckAnswersScoring(t *testing.T) {
	svc := NewScoringService(&fakeQuizReader{quiz: twoQuestionQuiz()}, nil)

	result, err := svc.CheckAnswers(context.Background(), "quiz-1", []models.AnswerSubmission{
		{QuestionIndex: 0, SelectedAnswerIndex: 1},
		{QuestionIndex: 1, SelectedAnswerIndex: 1},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.CorrectAnswers != 1 {
		t.Errorf("Expected 1 correct answer, got %d", result.CorrectAnswers)
	}
	if result.IncorrectAnswers != 1 {
		t.Errorf("Expected 1 incorrect answer, got %d", result.IncorrectAnswers)
	}
	if result.Score != 10 {
		t.Errorf("Expected score 10, got %v", result.Score)
	}
	if result.MaxScore != 20 {
		t.Errorf("Expected max_score 20, got %v", result.MaxScore)
	}
	if result.Percentage != 50.00 {
		t.Errorf("Expected percentage 50.00, got %v", result.Percentage)
	}
	if result.TotalQuestions != 2 || result.TotalAnswered != 2 {
		t.Errorf("Unexpected totals: %+v", result)
	}
	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 per-pair results, got %d", len(result.Results))
	}

	first := result.Results[0]
	if !first.IsCorrect || first.CorrectAnswerIndex != 1 || first.CorrectAnswerText != "right" {
		t.Errorf("Unexpected first result: %+v", first)
	}
	second := result.Results[1]
	if second.IsCorrect || second.CorrectAnswerIndex != 0 || second.SelectedAnswerText != "wrong" {
		t.Errorf("Unexpected second result: %+v", second)
	}
}

func TestCheckAnswersPercentageRounding(t *testing.T) {
	quiz := twoQuestionQuiz()
	quiz.Content.Questions = append(quiz.Content.Questions, models.Question{
		QuestionText: "Q2",
		Answers: []models.Answer{
			{AnswerText: "right", IsCorrect: true},
			{AnswerText: "wrong", IsCorrect: false},
		},
	})
	svc := NewScoringService(&fakeQuizReader{quiz: quiz}, nil)

	// 1 of 3 correct: 33.333... rounds to 33.33.
	result, err := svc.CheckAnswers(context.Background(), "quiz-1", []models.AnswerSubmission{
		{QuestionIndex: 0, SelectedAnswerIndex: 1},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Percentage != 33.33 {
		t.Errorf("Expected percentage 33.33, got %v", result.Percentage)
	}
}

func TestCheckAnswersOutOfRange(t *testing.T) {
	testCases := []struct {
		name        string
		submission  models.AnswerSubmission
		expectedTag string
	}{
		{"question index too large", models.AnswerSubmission{QuestionIndex: 99, SelectedAnswerIndex: 0}, models.ErrorQuestionOutOfRange},
		{"negative question index", models.AnswerSubmission{QuestionIndex: -1, SelectedAnswerIndex: 0}, models.ErrorQuestionOutOfRange},
		{"answer index too large", models.AnswerSubmission{QuestionIndex: 0, SelectedAnswerIndex: 5}, models.ErrorAnswerOutOfRange},
		{"negative answer index", models.AnswerSubmission{QuestionIndex: 0, SelectedAnswerIndex: -2}, models.ErrorAnswerOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewScoringService(&fakeQuizReader{quiz: twoQuestionQuiz()}, nil)

			result, err := svc.CheckAnswers(context.Background(), "quiz-1", []models.AnswerSubmission{tc.submission})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if result.CorrectAnswers != 0 {
				t.Errorf("Out-of-range pair must not count as correct, got %d", result.CorrectAnswers)
			}
			check := result.Results[0]
			if check.IsCorrect {
				t.Error("Expected is_correct false")
			}
			if check.CorrectAnswerIndex != -1 {
				t.Errorf("Expected correct_answer_index -1, got %d", check.CorrectAnswerIndex)
			}
			if check.CorrectAnswerText != models.NoAnswerText {
				t.Errorf("Expected correct_answer_text %q, got %q", models.NoAnswerText, check.CorrectAnswerText)
			}
			if check.Error != tc.expectedTag {
				t.Errorf("Expected error tag %q, got %q", tc.expectedTag, check.Error)
			}
		})
	}
}

func TestCheckAnswersBadPairDoesNotAbortBatch(t *testing.T) {
	svc := NewScoringService(&fakeQuizReader{quiz: twoQuestionQuiz()}, nil)

	result, err := svc.CheckAnswers(context.Background(), "quiz-1", []models.AnswerSubmission{
		{QuestionIndex: 99, SelectedAnswerIndex: 0},
		{QuestionIndex: 0, SelectedAnswerIndex: 1},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.CorrectAnswers != 1 {
		t.Errorf("Expected the valid pair to still score, got %d correct", result.CorrectAnswers)
	}
	if result.Results[0].Error == "" || result.Results[1].Error != "" {
		t.Errorf("Unexpected per-pair errors: %+v", result.Results)
	}
}

func TestCheckAnswersZeroMaxScore(t *testing.T) {
	testCases := []struct {
		name string
		quiz *models.Quiz
	}{
		{
			name: "zero score per question",
			quiz: func() *models.Quiz {
				q := twoQuestionQuiz()
				q.Content.ScorePerQuestion = 0
				return q
			}(),
		},
		{
			name: "zero questions",
			quiz: &models.Quiz{ID: "quiz-1", Content: models.QuizContent{ScorePerQuestion: 10}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewScoringService(&fakeQuizReader{quiz: tc.quiz}, nil)

			result, err := svc.CheckAnswers(context.Background(), "quiz-1", []models.AnswerSubmission{
				{QuestionIndex: 0, SelectedAnswerIndex: 1},
			})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.Percentage != 0 {
				t.Errorf("Expected percentage 0 when max_score is 0, got %v", result.Percentage)
			}
		})
	}
}

func TestCheckAnswersNoCorrectAnswerConfigured(t *testing.T) {
	quiz := &models.Quiz{
		ID: "quiz-1",
		Content: models.QuizContent{
			ScorePerQuestion: 10,
			Questions: []models.Question{
				{
					QuestionText: "broken",
					Answers: []models.Answer{
						{AnswerText: "a", IsCorrect: false},
						{AnswerText: "b", IsCorrect: false},
					},
				},
			},
		},
	}
	svc := NewScoringService(&fakeQuizReader{quiz: quiz}, nil)

	result, err := svc.CheckAnswers(context.Background(), "quiz-1", []models.AnswerSubmission{
		{QuestionIndex: 0, SelectedAnswerIndex: 0},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	check := result.Results[0]
	if check.IsCorrect {
		t.Error("Expected is_correct false")
	}
	if check.CorrectAnswerIndex != -1 {
		t.Errorf("Expected correct_answer_index -1, got %d", check.CorrectAnswerIndex)
	}
	if check.CorrectAnswerText != models.NoAnswerText {
		t.Errorf("Expected correct_answer_text %q, got %q", models.NoAnswerText, check.CorrectAnswerText)
	}
	if check.Error != "" {
		t.Errorf("A data anomaly is not a submission error, got tag %q", check.Error)
	}
}

func TestCheckAnswersQuizNotFound(t *testing.T) {
	svc := NewScoringService(&fakeQuizReader{quiz: nil}, nil)

	_, err := svc.CheckAnswers(context.Background(), "missing", nil)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("Expected not_found error, got %v", err)
	}
}
