package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"go.mongodb.org/mongo-driver/mongo"
)

// notFound maps a driver "no rows" error to the given domain error and
// leaves anything else untouched.
func notFound(err, domainErr error) error {
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, mongo.ErrNoDocuments) {
		return domainErr
	}
	return err
}
