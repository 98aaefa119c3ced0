package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"quiz-content-service/internal/models"

	"github.com/redis/go-redis/v9"
)

// QuizLoader fetches a quiz record from the backing store on cache miss.
type QuizLoader interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
}

// QuizCache is a read-through Redis cache for quiz records, keyed by quiz
// id. The scoring path is read-heavy; authoring invalidates on update.
type QuizCache struct {
	client *redis.Client
	loader QuizLoader
	ttl    time.Duration
}

func NewQuizCache(client *redis.Client, loader QuizLoader, ttl time.Duration) *QuizCache {
	return &QuizCache{client: client, loader: loader, ttl: ttl}
}

func (c *QuizCache) key(id string) string {
	return "quiz:" + id
}

func (c *QuizCache) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == nil {
		var quiz models.Quiz
		if err := json.Unmarshal(raw, &quiz); err == nil {
			return &quiz, nil
		}
		// Corrupt entry, fall through to the loader.
	}

	quiz, err := c.loader.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz != nil {
		if raw, err := json.Marshal(quiz); err == nil {
			if err := c.client.Set(ctx, c.key(id), raw, c.ttl).Err(); err != nil {
				log.Printf("Error caching quiz %s: %v", id, err)
			}
		}
	}
	return quiz, nil
}

// Invalidate drops the cached record after an update.
func (c *QuizCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		log.Printf("Error invalidating quiz cache %s: %v", id, err)
	}
}
