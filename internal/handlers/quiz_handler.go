package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"quiz-content-service/internal/apperr"
	"quiz-content-service/internal/models"
	"quiz-content-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service *service.QuizService
	Scoring *service.ScoringService
}

func NewQuizHandler(s *service.QuizService, scoring *service.ScoringService) *QuizHandler {
	return &QuizHandler{Service: s, Scoring: scoring}
}

// CreateQuiz handles the multipart create form: scalar fields as values,
// questions as a JSON-encoded field, thumbnail_image as a single file and
// files as a repeated file field (upload order = field order).
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	input, err := bindCreateInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Service.Create(context.Background(), *input, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	detail, err := h.Service.GetDetail(context.Background(), c.Param("id"), c.GetHeader("X-User-ID"), c.GetHeader("X-User-Role"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *QuizHandler) GetPublicQuiz(c *gin.Context) {
	view, err := h.Service.GetPublic(context.Background(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	role := c.GetHeader("X-User-Role")
	input, err := bindUpdateInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Service.Update(context.Background(), c.Param("id"), *input, userID, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *QuizHandler) CheckAnswers(c *gin.Context) {
	var req models.CheckAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Scoring.CheckAnswers(context.Background(), c.Param("id"), req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bindCreateInput(c *gin.Context) (*models.CreateQuizInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	input := &models.CreateQuizInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	if v := c.PostForm("score_per_question"); v != "" {
		input.ScorePerQuestion, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("score_per_question must be a number")
		}
		if input.ScorePerQuestion < 0 {
			return nil, fmt.Errorf("score_per_question must be non-negative")
		}
	}
	input.IsQuestionRandomized = formBool(c, "is_question_randomized")
	input.IsAnswerRandomized = formBool(c, "is_answer_randomized")
	input.IsPublishImmediately = formBool(c, "is_publish_immediately")

	if v := c.PostForm("questions"); v != "" {
		if err := json.Unmarshal([]byte(v), &input.Questions); err != nil {
			return nil, fmt.Errorf("invalid questions payload: %w", err)
		}
	}

	if files := form.File["thumbnail_image"]; len(files) > 0 {
		input.Thumbnail, err = readUpload(files[0])
		if err != nil {
			return nil, err
		}
	}
	input.FilesToUpload, err = readUploads(form.File["files"])
	if err != nil {
		return nil, err
	}

	return input, nil
}

func bindUpdateInput(c *gin.Context) (*models.UpdateQuizInput, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	input := &models.UpdateQuizInput{}
	if v, ok := c.GetPostForm("name"); ok {
		input.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		input.Description = &v
	}
	if v, ok := c.GetPostForm("score_per_question"); ok {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("score_per_question must be a number")
		}
		if score < 0 {
			return nil, fmt.Errorf("score_per_question must be non-negative")
		}
		input.ScorePerQuestion = &score
	}
	if v, ok := c.GetPostForm("is_question_randomized"); ok {
		b, _ := strconv.ParseBool(v)
		input.IsQuestionRandomized = &b
	}
	if v, ok := c.GetPostForm("is_answer_randomized"); ok {
		b, _ := strconv.ParseBool(v)
		input.IsAnswerRandomized = &b
	}
	if v, ok := c.GetPostForm("is_published"); ok {
		b, _ := strconv.ParseBool(v)
		input.IsPublished = &b
	}
	if v, ok := c.GetPostForm("questions"); ok {
		if err := json.Unmarshal([]byte(v), &input.Questions); err != nil {
			return nil, fmt.Errorf("invalid questions payload: %w", err)
		}
	}

	if files := form.File["thumbnail_image"]; len(files) > 0 {
		input.Thumbnail, err = readUpload(files[0])
		if err != nil {
			return nil, err
		}
	}
	input.FilesToUpload, err = readUploads(form.File["files"])
	if err != nil {
		return nil, err
	}

	return input, nil
}

func formBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(c.PostForm(key))
	return b
}

func readUpload(fh *multipart.FileHeader) (*models.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening uploaded file %s: %w", fh.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading uploaded file %s: %w", fh.Filename, err)
	}

	return &models.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

func readUploads(headers []*multipart.FileHeader) ([]models.UploadFile, error) {
	var files []models.UploadFile
	for _, fh := range headers {
		f, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

func respondError(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
