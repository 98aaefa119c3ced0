package repository

import (
	"context"

	"quiz-content-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type TemplateRepository struct {
	Col *mongo.Collection
}

func NewTemplateRepository(db *mongo.Database) *TemplateRepository {
	return &TemplateRepository{Col: db.Collection("game_templates")}
}

func (r *TemplateRepository) FindBySlug(ctx context.Context, slug string) (*models.GameTemplate, error) {
	var template models.GameTemplate
	err := r.Col.FindOne(ctx, bson.M{"slug": slug}).Decode(&template)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}
