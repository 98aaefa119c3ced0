package repository

import (
	"context"
	"log"
	"time"

	"quiz-content-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

// EnsureIndexes creates the unique index on name. The application-level
// uniqueness check is only a fast path; this index is the real constraint.
func (r *QuizRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.Col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("Error creating unique name index on quizzes: %v", err)
	}
	return err
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) FindByName(ctx context.Context, name string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.Col.FindOne(ctx, bson.M{"name": name}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

// Create inserts the record with a freshly generated id and returns it.
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) (string, error) {
	quiz.ID = primitive.NewObjectID().Hex()
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt
	_, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return "", err
	}
	return quiz.ID, nil
}

// IsDuplicateKey reports whether err is the unique-index violation raised
// when two creates race on the same name.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

func (r *QuizRepository) Update(ctx context.Context, id string, update bson.M) error {
	update["updated_at"] = time.Now()
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	return err
}
