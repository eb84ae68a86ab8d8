package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/config"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/db/models"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/enums"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/logger"
	"github.com/shivaganesh9515/nextgen-organic-backend/pkg/security"
)

// Seeds a development database with a browsable storefront: an admin
// account, two approved vendors, categories, products, and a coupon.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}
	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production database", nil)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := seed(ctx, dbClient.DB(), cfg); err != nil {
		logg.Error(ctx, "seeding failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "seed data applied")
}

func seed(ctx context.Context, conn *gorm.DB, cfg *config.Config) error {
	conn = conn.WithContext(ctx)

	adminHash, err := security.HashPassword("admin-dev-password", cfg.Password)
	if err != nil {
		return err
	}
	admin := models.User{
		Email:        "admin@nextgen-organic.example",
		PasswordHash: adminHash,
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         enums.RoleAdmin,
	}
	if err := upsert(conn, "email", &admin); err != nil {
		return err
	}

	vendors := []models.Vendor{
		{
			Name:           "Green Valley Organics",
			Slug:           "green-valley-organics",
			DeliveryFee:    dec("40"),
			MinOrderAmount: dec("100"),
			Status:         enums.VendorStatusApproved,
			OwnerID:        admin.ID,
		},
		{
			Name:           "Sunrise Farm Fresh",
			Slug:           "sunrise-farm-fresh",
			DeliveryFee:    dec("50"),
			MinOrderAmount: dec("150"),
			Status:         enums.VendorStatusApproved,
			OwnerID:        admin.ID,
		},
	}
	for i := range vendors {
		if err := upsert(conn, "slug", &vendors[i]); err != nil {
			return err
		}
	}

	categories := []models.Category{
		{Name: "Fruits", Slug: "fruits", Position: 1},
		{Name: "Vegetables", Slug: "vegetables", Position: 2},
		{Name: "Bakery", Slug: "bakery", Position: 3},
		{Name: "Dairy", Slug: "dairy", Position: 4},
	}
	for i := range categories {
		if err := upsert(conn, "slug", &categories[i]); err != nil {
			return err
		}
	}

	products := []models.Product{
		{
			VendorID:   vendors[0].ID,
			CategoryID: categories[0].ID,
			Name:       "Organic Apples",
			Slug:       "organic-apples",
			Unit:       "kg",
			Price:      dec("100"),
			InStock:    true,
			IsOrganic:  true,
		},
		{
			VendorID:        vendors[0].ID,
			CategoryID:      categories[1].ID,
			Name:            "Heirloom Tomatoes",
			Slug:            "heirloom-tomatoes",
			Unit:            "kg",
			Price:           dec("64"),
			OriginalPrice:   decPtr("80"),
			DiscountPercent: decPtr("20"),
			InStock:         true,
			IsOrganic:       true,
		},
		{
			VendorID:   vendors[1].ID,
			CategoryID: categories[2].ID,
			Name:       "Sourdough Bread",
			Slug:       "sourdough-bread",
			Unit:       "piece",
			Price:      dec("450"),
			InStock:    true,
		},
		{
			VendorID:   vendors[1].ID,
			CategoryID: categories[3].ID,
			Name:       "A2 Cow Milk",
			Slug:       "a2-cow-milk",
			Unit:       "litre",
			Price:      dec("95"),
			InStock:    false,
		},
	}
	for i := range products {
		if err := upsert(conn, "slug", &products[i]); err != nil {
			return err
		}
	}

	coupon := models.Coupon{
		Code:        "WELCOME10",
		Type:        enums.CouponTypePercentage,
		Value:       dec("10"),
		MinSubtotal: dec("300"),
		MaxDiscount: decPtr("150"),
		IsActive:    true,
	}
	return upsert(conn, "code", &coupon)
}

// upsert inserts the record or reloads the existing row matched by the
// unique column, so reruns are safe and IDs stay stable.
func upsert(conn *gorm.DB, column string, record any) error {
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: column}},
		UpdateAll: true,
	}).Create(record).Error
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
