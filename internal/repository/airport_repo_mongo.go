package repository

import (
	"context"
	"regexp"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoAirportRepository struct {
	collection *mongo.Collection
}

func NewMongoAirportRepository(db *mongo.Database) AirportRepository {
	return &MongoAirportRepository{collection: db.Collection(airportsCollection)}
}

func (r *MongoAirportRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *MongoAirportRepository) InsertMany(ctx context.Context, airports []domain.Airport) error {
	docs := make([]interface{}, 0, len(airports))
	for _, a := range airports {
		docs = append(docs, a)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *MongoAirportRepository) GetByCode(ctx context.Context, code string) (*domain.Airport, error) {
	var a domain.Airport
	if err := r.collection.FindOne(ctx, bson.M{"iataCode": code}).Decode(&a); err != nil {
		return nil, notFound(err, domain.ErrUnknownAirport)
	}
	return &a, nil
}

func (r *MongoAirportRepository) Search(ctx context.Context, query string, limit int) ([]domain.Airport, error) {
	cursor, err := r.collection.Find(ctx, searchFilter(query), options.Find().
		SetSort(bson.D{{Key: "iataCode", Value: 1}}).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	airports := make([]domain.Airport, 0)
	if err := cursor.All(ctx, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

// searchFilter matches query literally, ignoring case, inside any of the
// searchable fields.
func searchFilter(query string) bson.M {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	return bson.M{
		"$or": []bson.M{
			{"city": pattern},
			{"iataCode": pattern},
			{"name": pattern},
		},
	}
}

var _ AirportRepository = (*MongoAirportRepository)(nil)
