package service

import (
	"reflect"
	"testing"

	"quiz-content-service/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestBuildContentResolvesImages(t *testing.T) {
	params := ContentParams{
		ScorePerQuestion: floatPtr(10),
		Questions: []models.QuestionInput{
			question(1, 2, models.UploadImage(0)),
			question(1, 2, models.NoImage()),
		},
	}
	uploaded := []string{"quiz/images/new.png"}

	content := BuildContent(params, uploaded, nil)

	if len(content.Questions) != 2 {
		t.Fatalf("Expected 2 questions, got %d", len(content.Questions))
	}
	first := content.Questions[0]
	if first.QuestionImage == nil || *first.QuestionImage != "quiz/images/new.png" {
		t.Errorf("Expected first question image to be the uploaded ref, got %v", first.QuestionImage)
	}
	if content.Questions[1].QuestionImage != nil {
		t.Errorf("Expected second question image to be nil, got %v", *content.Questions[1].QuestionImage)
	}
	if content.ScorePerQuestion != 10 {
		t.Errorf("Expected score_per_question 10, got %v", content.ScorePerQuestion)
	}
}

func TestBuildContentKeepsExistingReferences(t *testing.T) {
	params := ContentParams{
		Questions: []models.QuestionInput{
			question(1, 2, models.ExistingImage("quiz/images/kept.png")),
		},
	}

	content := BuildContent(params, nil, nil)

	img := content.Questions[0].QuestionImage
	if img == nil || *img != "quiz/images/kept.png" {
		t.Errorf("Expected kept reference, got %v", img)
	}
}

func TestBuildContentScalarFallbacks(t *testing.T) {
	previous := &models.QuizContent{
		ScorePerQuestion:     5,
		IsQuestionRandomized: true,
		IsAnswerRandomized:   true,
		Questions:            []models.Question{{QuestionText: "old"}},
	}

	testCases := []struct {
		name     string
		params   ContentParams
		previous *models.QuizContent
		expected models.QuizContent
	}{
		{
			name:     "all omitted falls back to previous",
			params:   ContentParams{},
			previous: previous,
			expected: models.QuizContent{
				ScorePerQuestion:     5,
				IsQuestionRandomized: true,
				IsAnswerRandomized:   true,
				Questions:            previous.Questions,
			},
		},
		{
			name: "new values win over previous",
			params: ContentParams{
				ScorePerQuestion:     floatPtr(20),
				IsQuestionRandomized: boolPtr(false),
				IsAnswerRandomized:   boolPtr(false),
			},
			previous: previous,
			expected: models.QuizContent{
				ScorePerQuestion: 20,
				Questions:        previous.Questions,
			},
		},
		{
			name:     "no previous document defaults to zero values",
			params:   ContentParams{},
			previous: nil,
			expected: models.QuizContent{Questions: []models.Question{}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := BuildContent(tc.params, nil, tc.previous)
			if !reflect.DeepEqual(content, tc.expected) {
				t.Errorf("Expected %+v, got %+v", tc.expected, content)
			}
		})
	}
}

// Resubmitting the stored document unchanged must reproduce it exactly, or
// updates would churn assets and content for no reason.
func TestBuildContentUpdateIdempotence(t *testing.T) {
	img := "quiz/images/existing.png"
	previous := models.QuizContent{
		ScorePerQuestion:     10,
		IsQuestionRandomized: true,
		Questions: []models.Question{
			{
				QuestionText:  "Capital of France?",
				QuestionImage: &img,
				Answers: []models.Answer{
					{AnswerText: "Paris", IsCorrect: true},
					{AnswerText: "Lyon", IsCorrect: false},
				},
			},
		},
	}

	params := ContentParams{
		Questions: []models.QuestionInput{
			{
				QuestionText: "Capital of France?",
				Image:        models.ExistingImage(img),
				Answers: []models.AnswerInput{
					{AnswerText: "Paris", IsCorrect: true},
					{AnswerText: "Lyon", IsCorrect: false},
				},
			},
		},
	}

	rebuilt := BuildContent(params, nil, &previous)
	if !reflect.DeepEqual(rebuilt.Questions[0].Answers, previous.Questions[0].Answers) {
		t.Errorf("Answers changed: %+v vs %+v", rebuilt.Questions[0].Answers, previous.Questions[0].Answers)
	}
	if *rebuilt.Questions[0].QuestionImage != img {
		t.Errorf("Image changed: %v", *rebuilt.Questions[0].QuestionImage)
	}
	if rebuilt.ScorePerQuestion != previous.ScorePerQuestion || rebuilt.IsQuestionRandomized != previous.IsQuestionRandomized {
		t.Errorf("Scalars changed: %+v", rebuilt)
	}

	if stale := StaleRefs(previous.AssetRefs(""), rebuilt.AssetRefs("")); len(stale) != 0 {
		t.Errorf("Expected zero stale refs, got %v", stale)
	}
}
