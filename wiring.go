package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/cache"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/config"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/email"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/logging"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/money"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/seed"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/services"
	"github.com/Jali2587/AA-Spanish-Property-Platform/internal/store"
)

// loadConfig reads configuration and installs the process logger.
func loadConfig(runMode string) (*config.Config, error) {
	cfg, err := config.Load(runMode)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	return cfg, nil
}

// catalogue is the seeded inventory with the listing service over it.
type catalogue struct {
	inventory      *store.Inventory
	listingService services.IListingService
}

func openCatalogue(ctx context.Context, cfg *config.Config, now func() time.Time) (*catalogue, error) {
	prices, err := money.NewFormatter(cfg.Locale, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCALE/CURRENCY: %w", err)
	}
	listings, err := seed.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	inventory, err := store.NewInventory(listings)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return &catalogue{
		inventory:      inventory,
		listingService: services.NewListingService(inventory, prices, now),
	}, nil
}

// connectRedis returns nil when Redis is not configured.
func connectRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if !cfg.NotificationsEnabled() {
		slog.Info("REDIS_ADDR not set, reservation follow-ups are only logged")
		return nil, nil
	}
	return cache.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}

// buildEmailSender assembles the sender chain: Redis capture or SMTP, plus an optional file log.
func buildEmailSender(cfg *config.Config, rdb *redis.Client) email.Sender {
	var primary email.Sender
	if cfg.MockServices && rdb != nil {
		slog.Info("MOCK_SERVICES enabled: using Redis email sender")
		primary = email.NewRedisSender(rdb, cfg.SmtpFromAddress)
	} else {
		primary = email.NewSMTPSender(cfg)
	}

	composite := email.NewCompositeEmailSender(primary)
	if cfg.LogEmailsPath != "" {
		fileSender, err := email.NewFileEmailSender(cfg.LogEmailsPath)
		if err != nil {
			slog.Warn("Failed to initialize file email sender, proceeding without it", "path", cfg.LogEmailsPath, "error", err)
		} else {
			composite.AddSender(fileSender)
			slog.Info("File email logger enabled", "path", cfg.LogEmailsPath)
		}
	}
	return composite
}
