package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoFlightRepository struct {
	collection *mongo.Collection
}

func NewMongoFlightRepository(db *mongo.Database) FlightRepository {
	return &MongoFlightRepository{collection: db.Collection(flightsCollection)}
}

func (r *MongoFlightRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoFlightRepository) InsertMany(ctx context.Context, flights []domain.Flight) error {
	docs := make([]interface{}, 0, len(flights))
	for _, f := range flights {
		docs = append(docs, f)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *MongoFlightRepository) FindByRoute(ctx context.Context, from, to string, limit int) ([]domain.Flight, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"from": from, "to": to}, options.Find().
		SetSort(bson.D{{Key: "flightNumber", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := make([]domain.Flight, 0)
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	var f domain.Flight
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&f); err != nil {
		return nil, notFound(err, domain.ErrFlightNotFound)
	}
	return &f, nil
}

func (r *MongoFlightRepository) UpdatePrice(ctx context.Context, id string, price int64) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"price": price}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrFlightNotFound
	}
	return nil
}

var _ FlightRepository = (*MongoFlightRepository)(nil)
