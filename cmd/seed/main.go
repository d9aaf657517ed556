package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/livemart/livemart-backend/pkg/config"
	"github.com/livemart/livemart-backend/pkg/db"
	"github.com/livemart/livemart-backend/pkg/db/models"
	"github.com/livemart/livemart-backend/pkg/enums"
	"github.com/livemart/livemart-backend/pkg/logger"
	"github.com/livemart/livemart-backend/pkg/migrate"
	"github.com/livemart/livemart-backend/pkg/security"
)

// Seeds a development database with a handful of accounts, categories and
// listings. Safe to re-run: rows are matched by email or name before insert.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production database", nil)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	if err := seed(ctx, dbClient.DB(), cfg, logg); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seeding complete")
}

type seedUser struct {
	email string
	name  string
	phone string
	role  enums.UserRole
}

func seed(ctx context.Context, conn *gorm.DB, cfg *config.Config, logg *logger.Logger) error {
	hash, err := security.HashPassword("livemart-dev", cfg.Password)
	if err != nil {
		return err
	}

	seedUsers := []seedUser{
		{email: "customer@livemart.dev", name: "Dev Customer", phone: "+15550000001", role: enums.UserRoleCustomer},
		{email: "retailer@livemart.dev", name: "Corner Grocer", phone: "+15550000002", role: enums.UserRoleRetailer},
		{email: "wholesaler@livemart.dev", name: "Bulk Farms Co", phone: "+15550000003", role: enums.UserRoleWholesaler},
	}

	usersByEmail := map[string]*models.User{}
	for _, su := range seedUsers {
		user := &models.User{
			Email:        su.email,
			PasswordHash: hash,
			Name:         su.name,
			Phone:        su.phone,
			Role:         su.role,
			Verified:     true,
		}
		var existing models.User
		err := conn.WithContext(ctx).Where("email = ?", su.email).First(&existing).Error
		switch {
		case err == nil:
			usersByEmail[su.email] = &existing
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := conn.WithContext(ctx).Create(user).Error; err != nil {
			return err
		}
		usersByEmail[su.email] = user
		logg.Info(logg.WithField(ctx, "email", su.email), "seeded user")
	}

	categories := map[string]*models.Category{}
	for _, name := range []string{"Produce", "Dairy", "Pantry"} {
		var existing models.Category
		err := conn.WithContext(ctx).Where("name = ?", name).First(&existing).Error
		switch {
		case err == nil:
			categories[name] = &existing
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		category := &models.Category{Name: name}
		if err := conn.WithContext(ctx).Create(category).Error; err != nil {
			return err
		}
		categories[name] = category
		logg.Info(logg.WithField(ctx, "category", name), "seeded category")
	}

	retailer := usersByEmail["retailer@livemart.dev"]
	wholesaler := usersByEmail["wholesaler@livemart.dev"]

	products := []*models.Product{
		{
			Name:        "Basmati Rice 5kg",
			Description: "Long grain aged basmati",
			CategoryID:  categories["Pantry"].ID,
			Price:       decimal.RequireFromString("12.50"),
			Stock:       120,
			Unit:        "bag",
			Available:   true,
			SellerID:    wholesaler.ID,
			SellerName:  wholesaler.Name,
		},
		{
			Name:        "Whole Milk 1L",
			Description: "Pasteurized whole milk",
			CategoryID:  categories["Dairy"].ID,
			Price:       decimal.RequireFromString("1.20"),
			Stock:       60,
			Unit:        "bottle",
			Available:   true,
			SellerID:    retailer.ID,
			SellerName:  retailer.Name,
		},
		{
			Name:        "Roma Tomatoes",
			Description: "Fresh local tomatoes",
			CategoryID:  categories["Produce"].ID,
			Price:       decimal.RequireFromString("2.80"),
			Stock:       45,
			Unit:        "kg",
			Available:   true,
			SellerID:    retailer.ID,
			SellerName:  retailer.Name,
		},
	}
	for _, product := range products {
		var existing models.Product
		err := conn.WithContext(ctx).Where("name = ? AND seller_id = ?", product.Name, product.SellerID).First(&existing).Error
		switch {
		case err == nil:
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
		if err := conn.WithContext(ctx).Create(product).Error; err != nil {
			return err
		}
		logg.Info(logg.WithField(ctx, "product", product.Name), "seeded product")
	}

	return nil
}
