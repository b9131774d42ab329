// Package seed produces the listings the inventory starts with.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/db"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/models"
)

// Load returns the seed listings for the source selected in cfg.
func Load(ctx context.Context, cfg *config.Config) ([]models.Listing, error) {
	var (
		listings []models.Listing
		err      error
	)
	switch cfg.SeedSource {
	case config.SeedSourceBuiltin, "":
		listings = Builtin()
	case config.SeedSourceFile:
		listings, err = FromFile(cfg.SeedFile)
	case config.SeedSourceMongo:
		client, database, connErr := db.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDbName)
		if connErr != nil {
			return nil, connErr
		}
		defer func() {
			if err := db.DisconnectDB(client); err != nil {
				slog.Warn("Failed to disconnect seed database", "error", err)
			}
		}()
		listings, err = FromMongo(ctx, database.Collection(cfg.SeedCollection))
	default:
		return nil, fmt.Errorf("unknown seed source %q", cfg.SeedSource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s seed: %w", cfg.SeedSource, err)
	}
	slog.Info("Seed loaded", "source", cfg.SeedSource, "listings", len(listings))
	return listings, nil
}
