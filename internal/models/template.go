package models

import "time"

// GameTemplate is a fixed game category; quizzes reference it by id after a
// one-time slug lookup at creation.
type GameTemplate struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Slug      string    `bson:"slug" json:"slug"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
