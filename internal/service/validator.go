package service

import (
	"quiz-content-service/internal/apperr"
	"quiz-content-service/internal/models"
)

// ValidateQuestions enforces the authoring invariants before any asset
// upload happens, so invalid submissions never leave orphaned uploads.
//
// Every question must have exactly one correct answer, and the number of
// questions referencing an upload by numeric index must match the number of
// files carried with the request.
func ValidateQuestions(questions []models.QuestionInput, uploadCount int) error {
	for i, q := range questions {
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return apperr.Validation("question %d must have exactly one correct answer", i+1)
		}
	}

	indexed := 0
	for _, q := range questions {
		if q.Image.Kind() == models.ImageRefUpload {
			indexed++
		}
	}
	if indexed != uploadCount {
		if indexed < uploadCount {
			return apperr.Validation("all uploaded files must be used")
		}
		return apperr.Validation("%d questions reference an uploaded image but only %d files were uploaded", indexed, uploadCount)
	}

	return nil
}
