package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type flagDoc struct {
	Name      string    `bson:"name"`
	Enabled   bool      `bson:"enabled"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Store persists feature flags as documents in a MongoDB collection.
// It is safe for concurrent use.
type Store struct {
	col *mongo.Collection
}

// New creates a flag store on top of an existing collection. The store
// shares the underlying client by reference and never disconnects it.
func New(col *mongo.Collection) *Store {
	return &Store{col: col}
}

// Get returns the persisted value for a flag. A missing document is
// reported through the ok result, never as an error.
func (s *Store) Get(ctx context.Context, name string) (bool, bool, error) {
	var doc flagDoc
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, false, nil
		}
		return false, false, err
	}
	return doc.Enabled, true, nil
}

// Set persists a value for a flag, upserting the document.
func (s *Store) Set(ctx context.Context, name string, value bool) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"enabled": value, "updated_at": time.Now()}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

// Delete removes a flag's document. Deleting an absent flag is a no-op.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"name": name})
	return err
}

// Init creates the unique index on the flag name so concurrent upserts for
// the same flag cannot produce duplicate documents.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Persistent reports true: values survive process restarts.
func (s *Store) Persistent() bool {
	return true
}
