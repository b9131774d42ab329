package seed

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/db"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// FromMongo reads every document in coll, ordered by id.
// Transient network failures are retried.
func FromMongo(ctx context.Context, coll *mongo.Collection) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.Try(func() error {
		opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
		cursor, err := coll.Find(ctx, bson.D{}, opts)
		if err != nil {
			return err
		}
		defer cursor.Close(ctx)

		var batch []models.Listing
		if err := cursor.All(ctx, &batch); err != nil {
			return err
		}
		listings = batch
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read listings from %s: %w", coll.Name(), err)
	}
	return listings, nil
}
