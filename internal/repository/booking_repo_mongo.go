package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoBookingRepository struct {
	collection *mongo.Collection
}

func NewMongoBookingRepository(db *mongo.Database) BookingRepository {
	return &MongoBookingRepository{collection: db.Collection(bookingsCollection)}
}

func (r *MongoBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	_, err := r.collection.InsertOne(ctx, booking)
	return err
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return nil, notFound(err, domain.ErrBookingMissing)
	}
	return &b, nil
}

func (r *MongoBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst()))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := make([]domain.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func newestFirst() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}}
}

var _ BookingRepository = (*MongoBookingRepository)(nil)
