package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TejasJagadale/backendofficial/internal/domain"
)

// UpsertFuelPrices replaces the city list for (date, state). Re-running a day's
// ingestion overwrites instead of accumulating duplicates; the unique index on
// (date, state) keeps racing upserts down to one document.
func (s *Store) UpsertFuelPrices(ctx context.Context, date, state string, cities []domain.CityPrice) error {
	_, err := s.fuel().UpdateOne(ctx,
		bson.M{"date": date, "state": state},
		bson.M{"$set": bson.M{"cities": cities}},
		options.Update().SetUpsert(true),
	)
	return err
}

// AddFuelCity appends one city snapshot to the day's document, creating it if
// needed. Used by the single-city live-fetch path.
func (s *Store) AddFuelCity(ctx context.Context, date, state string, city domain.CityPrice) error {
	// drop any stale entry for the same city first so the list never holds two
	if _, err := s.fuel().UpdateOne(ctx,
		bson.M{"date": date, "state": state},
		bson.M{"$pull": bson.M{"cities": bson.M{"city": city.City}}},
	); err != nil {
		return err
	}
	_, err := s.fuel().UpdateOne(ctx,
		bson.M{"date": date, "state": state},
		bson.M{"$push": bson.M{"cities": city}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *Store) FindFuelPrices(ctx context.Context, date, state string) (*domain.FuelPrice, error) {
	var fp domain.FuelPrice
	err := s.fuel().FindOne(ctx, bson.M{"date": date, "state": state}).Decode(&fp)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fp, nil
}
