package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SightingDocument is one persisted person sighting. Memory stays
// authoritative in-process; this collection is the durable history behind it.
type SightingDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Person     string             `bson:"person"`
	Room       string             `bson:"room"`
	ObservedAt time.Time          `bson:"observed_at"`
	CreatedAt  time.Time          `bson:"created_at"`
}

// KnowledgeDocument is one knowledge-base chunk stored for text search.
type KnowledgeDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Content string             `bson:"content"`
	Class   string             `bson:"class"`
	Source  string             `bson:"source"`
}
