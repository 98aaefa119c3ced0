package models

import "time"

const (
	// QuizTemplateSlug is the fixed game-template slug resolved at creation.
	QuizTemplateSlug = "quiz"

	// RoleSuperAdmin bypasses ownership checks on quiz records.
	RoleSuperAdmin = "SUPER_ADMIN"
)

type Answer struct {
	AnswerText string `bson:"answer_text" json:"answer_text"`
	IsCorrect  bool   `bson:"is_correct" json:"is_correct"`
}

type Question struct {
	QuestionText  string   `bson:"question_text" json:"question_text"`
	QuestionImage *string  `bson:"question_image" json:"question_image"`
	Answers       []Answer `bson:"answers" json:"answers"`
}

// QuizContent is the content document embedded in a quiz record.
type QuizContent struct {
	ScorePerQuestion     float64    `bson:"score_per_question" json:"score_per_question"`
	IsQuestionRandomized bool       `bson:"is_question_randomized" json:"is_question_randomized"`
	IsAnswerRandomized   bool       `bson:"is_answer_randomized" json:"is_answer_randomized"`
	Questions            []Question `bson:"questions" json:"questions"`
}

// AssetRefs returns the thumbnail plus every question image as a flat list.
// Used to compute the old/new reference sets during update reconciliation.
func (c QuizContent) AssetRefs(thumbnail string) []string {
	refs := make([]string, 0, len(c.Questions)+1)
	if thumbnail != "" {
		refs = append(refs, thumbnail)
	}
	for _, q := range c.Questions {
		if q.QuestionImage != nil && *q.QuestionImage != "" {
			refs = append(refs, *q.QuestionImage)
		}
	}
	return refs
}

type Quiz struct {
	ID             string      `bson:"_id,omitempty" json:"id"`
	GameTemplateID string      `bson:"game_template_id" json:"game_template_id"`
	CreatorID      string      `bson:"creator_id" json:"creator_id"`
	Name           string      `bson:"name" json:"name"`
	Description    string      `bson:"description" json:"description"`
	ThumbnailImage string      `bson:"thumbnail_image" json:"thumbnail_image"`
	IsPublished    bool        `bson:"is_published" json:"is_published"`
	Content        QuizContent `bson:"content" json:"content"`
	CreatedAt      time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updated_at"`
}

// QuizDetail is the owner-facing view of a quiz record. Internal fields
// (game_template_id, creator_id, updated_at) are not exposed.
type QuizDetail struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	ThumbnailImage string      `json:"thumbnail_image"`
	IsPublished    bool        `json:"is_published"`
	Content        QuizContent `json:"content"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (q *Quiz) Detail() QuizDetail {
	return QuizDetail{
		ID:             q.ID,
		Name:           q.Name,
		Description:    q.Description,
		ThumbnailImage: q.ThumbnailImage,
		IsPublished:    q.IsPublished,
		Content:        q.Content,
		CreatedAt:      q.CreatedAt,
	}
}

// PublicAnswer hides is_correct from players.
type PublicAnswer struct {
	AnswerText string `json:"answer_text"`
}

type PublicQuestion struct {
	QuestionText  string         `json:"question_text"`
	QuestionImage *string        `json:"question_image"`
	Answers       []PublicAnswer `json:"answers"`
}

// QuizPublicView is the player-facing view of a published quiz.
type QuizPublicView struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Description          string           `json:"description"`
	ThumbnailImage       string           `json:"thumbnail_image"`
	ScorePerQuestion     float64          `json:"score_per_question"`
	IsQuestionRandomized bool             `json:"is_question_randomized"`
	IsAnswerRandomized   bool             `json:"is_answer_randomized"`
	Questions            []PublicQuestion `json:"questions"`
}

func (q *Quiz) PublicView() QuizPublicView {
	questions := make([]PublicQuestion, 0, len(q.Content.Questions))
	for _, question := range q.Content.Questions {
		answers := make([]PublicAnswer, 0, len(question.Answers))
		for _, a := range question.Answers {
			answers = append(answers, PublicAnswer{AnswerText: a.AnswerText})
		}
		questions = append(questions, PublicQuestion{
			QuestionText:  question.QuestionText,
			QuestionImage: question.QuestionImage,
			Answers:       answers,
		})
	}
	return QuizPublicView{
		ID:                   q.ID,
		Name:                 q.Name,
		Description:          q.Description,
		ThumbnailImage:       q.ThumbnailImage,
		ScorePerQuestion:     q.Content.ScorePerQuestion,
		IsQuestionRandomized: q.Content.IsQuestionRandomized,
		IsAnswerRandomized:   q.Content.IsAnswerRandomized,
		Questions:            questions,
	}
}
