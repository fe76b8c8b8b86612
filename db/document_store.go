package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	dbmodels "robot/db/models"
	"robot/models"
)

// DocumentStore serves knowledge-base lookups from a text-indexed Mongo
// collection. It implements retrieval.Searcher; the federation layer on top
// never knows what backs the search.
type DocumentStore struct{}

// NewDocumentStore returns a store over the knowledge collection.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{}
}

// Search runs a ranked text search, optionally constrained to a document
// class via the filter's "class" key.
func (s *DocumentStore) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Document, error) {
	collection := GetCollection("knowledge")

	mongoFilter := bson.M{"$text": bson.M{"$search": query}}
	if class, ok := filter["class"]; ok && class != "" {
		mongoFilter["class"] = class
	}

	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(k))

	cursor, err := collection.Find(ctx, mongoFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []dbmodels.KnowledgeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	results := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		results = append(results, models.Document{
			Content: doc.Content,
			Class:   doc.Class,
			Source:  doc.Source,
		})
	}
	return results, nil
}

// AddDocuments loads knowledge chunks into the store, for ingest tooling.
func (s *DocumentStore) AddDocuments(ctx context.Context, docs []models.Document) error {
	collection := GetCollection("knowledge")

	records := make([]interface{}, 0, len(docs))
	for _, doc := range docs {
		records = append(records, dbmodels.KnowledgeDocument{
			Content: doc.Content,
			Class:   doc.Class,
			Source:  doc.Source,
		})
	}

	_, err := collection.InsertMany(ctx, records)
	return err
}

// CreateKnowledgeIndexes creates the text index the searches rely on.
func CreateKnowledgeIndexes() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "content", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "class", Value: 1}},
		},
	}

	collection := GetCollection("knowledge")
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Printf("Failed to create knowledge indexes: %v", err)
	}
}
