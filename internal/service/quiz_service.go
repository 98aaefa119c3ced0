package service

import (
	"context"
	"log"

	"quiz-content-service/internal/apperr"
	"quiz-content-service/internal/event"
	"quiz-content-service/internal/models"
	"quiz-content-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

// Upload prefixes for quiz assets inside the bucket.
const (
	thumbnailPrefix = "quiz/thumbnails"
	imagePrefix     = "quiz/images"
)

// QuizStore abstracts the quiz record collection.
type QuizStore interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	FindByName(ctx context.Context, name string) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) (string, error)
	Update(ctx context.Context, id string, update bson.M) error
}

// TemplateStore resolves game templates by slug.
type TemplateStore interface {
	FindBySlug(ctx context.Context, slug string) (*models.GameTemplate, error)
}

// AssetStore stores raw file content and hands back stable references.
type AssetStore interface {
	Upload(ctx context.Context, prefix string, file models.UploadFile) (string, error)
	Remove(ctx context.Context, ref string) error
}

// CacheInvalidator drops cached read models after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

// QuizService orchestrates quiz authoring: create, detail and update with
// asset reconciliation.
type QuizService struct {
	Store     QuizStore
	Templates TemplateStore
	Assets    AssetStore
	Events    event.Publisher
	Cache     CacheInvalidator
}

func NewQuizService(store QuizStore, templates TemplateStore, assets AssetStore, events event.Publisher, cache CacheInvalidator) *QuizService {
	return &QuizService{
		Store:     store,
		Templates: templates,
		Assets:    assets,
		Events:    events,
		Cache:     cache,
	}
}

// Create validates the input, uploads the thumbnail and question images,
// and persists a new quiz record. Returns the new record's id.
func (s *QuizService) Create(ctx context.Context, input models.CreateQuizInput, userID string) (string, error) {
	existing, err := s.Store.FindByName(ctx, input.Name)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", apperr.Conflict("quiz name %q is already taken", input.Name)
	}

	template, err := s.Templates.FindBySlug(ctx, models.QuizTemplateSlug)
	if err != nil {
		return "", err
	}
	if template == nil {
		return "", apperr.NotFound("game template %q not found", models.QuizTemplateSlug)
	}

	// Validation runs before any upload so a rejected request leaves no
	// orphaned assets behind.
	if err := ValidateQuestions(input.Questions, len(input.FilesToUpload)); err != nil {
		return "", err
	}

	thumbnail := ""
	if input.Thumbnail != nil {
		thumbnail, err = s.Assets.Upload(ctx, thumbnailPrefix, *input.Thumbnail)
		if err != nil {
			return "", err
		}
	}

	uploaded, err := s.uploadFiles(ctx, input.FilesToUpload)
	if err != nil {
		return "", err
	}

	content := BuildContent(ContentParams{
		ScorePerQuestion:     &input.ScorePerQuestion,
		IsQuestionRandomized: &input.IsQuestionRandomized,
		IsAnswerRandomized:   &input.IsAnswerRandomized,
		Questions:            input.Questions,
	}, uploaded, nil)

	quiz := &models.Quiz{
		GameTemplateID: template.ID,
		CreatorID:      userID,
		Name:           input.Name,
		Description:    input.Description,
		ThumbnailImage: thumbnail,
		IsPublished:    input.IsPublishImmediately,
		Content:        content,
	}

	id, err := s.Store.Create(ctx, quiz)
	if err != nil {
		// Two creates can race past the FindByName fast path; the unique
		// index on name is the real constraint.
		if repository.IsDuplicateKey(err) {
			return "", apperr.Conflict("quiz name %q is already taken", input.Name)
		}
		return "", err
	}

	if s.Events != nil {
		if err := s.Events.PublishQuizCreated(ctx, id, userID); err != nil {
			log.Printf("Error publishing quiz.created for %s: %v", id, err)
		}
	}

	return id, nil
}

// GetDetail returns the owner-facing record view.
func (s *QuizService) GetDetail(ctx context.Context, id, userID, role string) (*models.QuizDetail, error) {
	quiz, err := s.authorize(ctx, id, userID, role)
	if err != nil {
		return nil, err
	}
	detail := quiz.Detail()
	return &detail, nil
}

// GetPublic returns the player-facing view of a published quiz, with
// correct answers stripped.
func (s *QuizService) GetPublic(ctx context.Context, id string) (*models.QuizPublicView, error) {
	quiz, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil || !quiz.IsPublished {
		return nil, apperr.NotFound("quiz %s not found", id)
	}
	view := quiz.PublicView()
	return &view, nil
}

// Update applies a partial update to a quiz record and reconciles image
// assets: files uploaded with this call are wired in by index, existing
// references passed back are kept, and references dropped from the new
// document are removed from storage after the write succeeds.
func (s *QuizService) Update(ctx context.Context, id string, input models.UpdateQuizInput, userID, role string) (string, error) {
	quiz, err := s.authorize(ctx, id, userID, role)
	if err != nil {
		return "", err
	}

	// Snapshot the old reference set before anything mutates.
	oldRefs := quiz.Content.AssetRefs(quiz.ThumbnailImage)

	if err := ValidateQuestions(input.Questions, len(input.FilesToUpload)); err != nil {
		return "", err
	}

	thumbnail := quiz.ThumbnailImage
	if input.Thumbnail != nil {
		thumbnail, err = s.Assets.Upload(ctx, thumbnailPrefix, *input.Thumbnail)
		if err != nil {
			return "", err
		}
	}

	uploaded, err := s.uploadFiles(ctx, input.FilesToUpload)
	if err != nil {
		return "", err
	}

	content := BuildContent(ContentParams{
		ScorePerQuestion:     input.ScorePerQuestion,
		IsQuestionRandomized: input.IsQuestionRandomized,
		IsAnswerRandomized:   input.IsAnswerRandomized,
		Questions:            input.Questions,
	}, uploaded, &quiz.Content)

	name := quiz.Name
	if input.Name != nil {
		name = *input.Name
	}
	description := quiz.Description
	if input.Description != nil {
		description = *input.Description
	}
	published := quiz.IsPublished
	if input.IsPublished != nil {
		published = *input.IsPublished
	}

	// Metadata and content go out as one write; cleanup only runs after it
	// succeeded.
	update := bson.M{
		"name":            name,
		"description":     description,
		"thumbnail_image": thumbnail,
		"is_published":    published,
		"content":         content,
	}
	if err := s.Store.Update(ctx, id, update); err != nil {
		if repository.IsDuplicateKey(err) {
			return "", apperr.Conflict("quiz name %q is already taken", name)
		}
		return "", err
	}

	if s.Cache != nil {
		s.Cache.Invalidate(ctx, id)
	}
	if s.Events != nil {
		if err := s.Events.PublishQuizUpdated(ctx, id, userID); err != nil {
			log.Printf("Error publishing quiz.updated for %s: %v", id, err)
		}
	}

	newRefs := content.AssetRefs(thumbnail)
	s.cleanupStaleAssets(ctx, id, oldRefs, newRefs)

	return id, nil
}

func (s *QuizService) authorize(ctx context.Context, id, userID, role string) (*models.Quiz, error) {
	quiz, err := s.Store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperr.NotFound("quiz %s not found", id)
	}
	if role != models.RoleSuperAdmin && quiz.CreatorID != userID {
		return nil, apperr.Forbidden("quiz %s does not belong to user %s", id, userID)
	}
	return quiz, nil
}

func (s *QuizService) uploadFiles(ctx context.Context, files []models.UploadFile) ([]string, error) {
	refs := make([]string, 0, len(files))
	for _, f := range files {
		ref, err := s.Assets.Upload(ctx, imagePrefix, f)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// cleanupStaleAssets removes old references absent from the new set, best
// effort. A failed removal is logged and reported, never fatal.
func (s *QuizService) cleanupStaleAssets(ctx context.Context, quizID string, oldRefs, newRefs []string) {
	for _, ref := range StaleRefs(oldRefs, newRefs) {
		if err := s.Assets.Remove(ctx, ref); err != nil {
			log.Printf("Warning: failed to delete stale asset %s of quiz %s: %v", ref, quizID, err)
			if s.Events != nil {
				if pubErr := s.Events.PublishAssetCleanupFailed(ctx, quizID, ref, err); pubErr != nil {
					log.Printf("Error publishing quiz.asset_cleanup_failed for %s: %v", quizID, pubErr)
				}
			}
		}
	}
}
