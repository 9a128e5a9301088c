// Package mongostore persists chunk records in MongoDB. It is the system's
// only durable state: embeddings survive restarts, so the corpus is only
// re-embedded when content changes.
package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"agency-support-chat/internal/vectorstore"
)

const Collection = "knowledge_chunks"

type Store struct {
	col *mongo.Collection
}

// storedRecord adds an insertion sequence number to the persisted shape. The
// search contract breaks similarity ties by insertion order, which a Mongo
// collection does not otherwise guarantee.
type storedRecord struct {
	vectorstore.Record `bson:",inline"`
	Seq                int64 `bson:"seq"`
}

func NewStore(db *mongo.Database) *Store {
	return &Store{col: db.Collection(Collection)}
}

func (s *Store) Upsert(ctx context.Context, rec vectorstore.Record) error {
	// Preserve the original seq on replace; assign the next one on insert.
	var existing storedRecord
	err := s.col.FindOne(ctx, bson.M{"chunk_id": rec.ID}).Decode(&existing)
	switch {
	case err == nil:
		doc := storedRecord{Record: rec, Seq: existing.Seq}
		_, err = s.col.ReplaceOne(ctx, bson.M{"chunk_id": rec.ID}, doc)
	case errors.Is(err, mongo.ErrNoDocuments):
		seq, seqErr := s.nextSeq(ctx)
		if seqErr != nil {
			return &vectorstore.StoreError{Op: "upsert", Err: seqErr}
		}
		doc := storedRecord{Record: rec, Seq: seq}
		_, err = s.col.InsertOne(ctx, doc)
	default:
		return &vectorstore.StoreError{Op: "upsert", Err: err}
	}
	if err != nil {
		return &vectorstore.StoreError{Op: "upsert", Err: err}
	}
	return nil
}

func (s *Store) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}})
	var last storedRecord
	err := s.col.FindOne(ctx, bson.M{}, opts).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Seq + 1, nil
}

func (s *Store) Get(ctx context.Context, id string) (*vectorstore.Record, error) {
	var doc storedRecord
	err := s.col.FindOne(ctx, bson.M{"chunk_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, &vectorstore.StoreError{Op: "get", Err: err}
	}
	return &doc.Record, nil
}

func (s *Store) All(ctx context.Context) ([]vectorstore.Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, &vectorstore.StoreError{Op: "all", Err: err}
	}
	defer cursor.Close(ctx)

	var docs []storedRecord
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &vectorstore.StoreError{Op: "all", Err: err}
	}
	records := make([]vectorstore.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.Record)
	}
	return records, nil
}

// Search loads every record and scores it in process. The corpus is tens to
// low hundreds of chunks, so a brute-force O(N*D) scan beats maintaining an
// ANN index; a larger corpus would swap the implementation behind the same
// contract.
func (s *Store) Search(ctx context.Context, query []float32, topK int, typeFilter string) ([]vectorstore.Retrieved, error) {
	records, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return vectorstore.Rank(records, query, topK, typeFilter), nil
}

func (s *Store) IsPopulated(ctx context.Context) (bool, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{}, options.Count().SetLimit(1))
	if err != nil {
		return false, &vectorstore.StoreError{Op: "count", Err: err}
	}
	return count > 0, nil
}

func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.col.DeleteMany(ctx, bson.M{}); err != nil {
		return &vectorstore.StoreError{Op: "clear", Err: err}
	}
	return nil
}
