package db

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dbmodels "robot/db/models"
	"robot/models"
)

// SightingRepository persists person sighting history. It implements
// memory.SightingSink; writes are best-effort and happen off the calling
// goroutine so a slow database never stalls a task step.
type SightingRepository struct{}

// NewSightingRepository returns a repository over the sightings collection.
func NewSightingRepository() *SightingRepository {
	return &SightingRepository{}
}

// RecordSighting queues one sighting for durable storage. The insert runs in
// the background with retry for transient failures.
func (r *SightingRepository) RecordSighting(record models.PersonRecord) {
	if strings.TrimSpace(record.Name) == "" {
		log.Printf("[SIGHTING_SKIP] Skipping sighting with empty person name")
		return
	}
	if database == nil {
		log.Printf("[SIGHTING_SKIP] No database connection, dropping sighting of %s", record.Name)
		return
	}

	doc := dbmodels.SightingDocument{
		Person:     record.Name,
		Room:       record.LastRoom,
		ObservedAt: record.ObservedAt,
		CreatedAt:  time.Now(),
	}

	go r.insertWithRetry(doc)
}

func (r *SightingRepository) insertWithRetry(doc dbmodels.SightingDocument) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := GetCollection("sightings")

	var lastErr error
	for i := 0; i < 3; i++ {
		_, err := collection.InsertOne(ctx, doc)
		if err == nil {
			return
		}
		lastErr = err
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1)) // Exponential backoff
	}

	log.Printf("[SIGHTING_ERROR] Failed to persist sighting of %s: %v", doc.Person, lastErr)
}

// History retrieves paginated sighting history for one person, newest first.
func (r *SightingRepository) History(ctx context.Context, person string, limit, offset int) ([]dbmodels.SightingDocument, int64, error) {
	collection := GetCollection("sightings")
	filter := bson.M{}
	if person != "" {
		filter["person"] = person
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "observed_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var sightings []dbmodels.SightingDocument
	if err := cursor.All(ctx, &sightings); err != nil {
		return nil, 0, err
	}

	return sightings, total, nil
}

// CreateSightingIndexes creates the indexes the history queries rely on.
func CreateSightingIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "person", Value: 1},
				{Key: "observed_at", Value: -1},
			},
		},
	}

	collection := GetCollection("sightings")
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("Failed to create sighting indexes: %v", err)
	}
}
