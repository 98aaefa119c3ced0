package service

import (
	"quiz-content-service/internal/models"
)

// ContentParams is the authoring input for one content document. Nil
// pointers fall back to the previous document's value (update) or the zero
// value (create). A nil Questions slice carries the previous questions over
// verbatim.
type ContentParams struct {
	ScorePerQuestion     *float64
	IsQuestionRandomized *bool
	IsAnswerRandomized   *bool
	Questions            []models.QuestionInput
}

// BuildContent assembles the canonical content document. uploaded holds the
// asset references returned for this call's file uploads, ordered to match
// upload order; previous is nil on create.
func BuildContent(params ContentParams, uploaded []string, previous *models.QuizContent) models.QuizContent {
	var content models.QuizContent

	switch {
	case params.ScorePerQuestion != nil:
		content.ScorePerQuestion = *params.ScorePerQuestion
	case previous != nil:
		content.ScorePerQuestion = previous.ScorePerQuestion
	}
	switch {
	case params.IsQuestionRandomized != nil:
		content.IsQuestionRandomized = *params.IsQuestionRandomized
	case previous != nil:
		content.IsQuestionRandomized = previous.IsQuestionRandomized
	}
	switch {
	case params.IsAnswerRandomized != nil:
		content.IsAnswerRandomized = *params.IsAnswerRandomized
	case previous != nil:
		content.IsAnswerRandomized = previous.IsAnswerRandomized
	}

	if params.Questions == nil {
		if previous != nil && previous.Questions != nil {
			content.Questions = previous.Questions
		} else {
			content.Questions = []models.Question{}
		}
		return content
	}

	questions := make([]models.Question, 0, len(params.Questions))
	for _, in := range params.Questions {
		answers := make([]models.Answer, 0, len(in.Answers))
		for _, a := range in.Answers {
			answers = append(answers, models.Answer{
				AnswerText: a.AnswerText,
				IsCorrect:  a.IsCorrect,
			})
		}

		var image *string
		switch in.Image.Kind() {
		case models.ImageRefUpload:
			// Validation guarantees the index is in range; guard anyway so a
			// bad index degrades to "no image" instead of a panic.
			if idx := in.Image.UploadIndex(); idx >= 0 && idx < len(uploaded) {
				ref := uploaded[idx]
				image = &ref
			}
		case models.ImageRefExisting:
			ref := in.Image.Path()
			image = &ref
		}

		questions = append(questions, models.Question{
			QuestionText:  in.QuestionText,
			QuestionImage: image,
			Answers:       answers,
		})
	}
	content.Questions = questions

	return content
}
