package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbooking/internal/pricing"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type attemptDocument struct {
	FlightID string      `bson:"_id"`
	Attempts []time.Time `bson:"attempts"`
}

// MongoAttemptRepository keeps one document per flight holding its attempts.
type MongoAttemptRepository struct {
	collection *mongo.Collection
}

func NewMongoAttemptRepository(db *mongo.Database) *MongoAttemptRepository {
	return &MongoAttemptRepository{collection: db.Collection(attemptsCollection)}
}

func (r *MongoAttemptRepository) Load(ctx context.Context, flightID string) ([]time.Time, error) {
	var doc attemptDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": flightID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Attempts, nil
}

func (r *MongoAttemptRepository) Save(ctx context.Context, flightID string, attempts []time.Time) error {
	if len(attempts) == 0 {
		_, err := r.collection.DeleteOne(ctx, bson.M{"_id": flightID})
		return err
	}
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": flightID},
		attemptDocument{FlightID: flightID, Attempts: attempts},
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *MongoAttemptRepository) SweepBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if _, err := r.collection.UpdateMany(ctx, bson.M{}, pruneBefore(cutoff)); err != nil {
		return 0, err
	}
	res, err := r.collection.DeleteMany(ctx, emptyAttempts())
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func pruneBefore(cutoff time.Time) bson.M {
	return bson.M{"$pull": bson.M{"attempts": bson.M{"$lt": cutoff}}}
}

// emptyAttempts matches documents left with no attempts after a prune.
func emptyAttempts() bson.M {
	return bson.M{"attempts": bson.M{"$size": 0}}
}

var _ pricing.AttemptStore = (*MongoAttemptRepository)(nil)
