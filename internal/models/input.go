package models

// UploadFile is one raw file carried with an authoring request. Handlers
// read multipart parts into this shape so services stay transport-free.
type UploadFile struct {
	Name        string
	ContentType string
	Content     []byte
}

type AnswerInput struct {
	AnswerText string `json:"answer_text"`
	IsCorrect  bool   `json:"is_correct"`
}

type QuestionInput struct {
	QuestionText string        `json:"question_text"`
	Image        ImageRef      `json:"question_image_array_index"`
	Answers      []AnswerInput `json:"answers"`
}

type CreateQuizInput struct {
	Name                 string
	Description          string
	ScorePerQuestion     float64
	IsQuestionRandomized bool
	IsAnswerRandomized   bool
	IsPublishImmediately bool
	Questions            []QuestionInput
	Thumbnail            *UploadFile
	FilesToUpload        []UploadFile
}

// UpdateQuizInput is a partial update: nil pointers and nil slices mean
// "keep the stored value".
type UpdateQuizInput struct {
	Name                 *string
	Description          *string
	ScorePerQuestion     *float64
	IsQuestionRandomized *bool
	IsAnswerRandomized   *bool
	IsPublished          *bool
	Questions            []QuestionInput
	Thumbnail            *UploadFile
	FilesToUpload        []UploadFile
}
