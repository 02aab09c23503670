package database

import (
	"errors"
	"fmt"

	"github.com/sangkips/boutique-api/internal/config"
	"github.com/sangkips/boutique-api/internal/domain/entity"
	"github.com/sangkips/boutique-api/internal/domain/enum"
	"github.com/sangkips/boutique-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a connection for the configured driver (postgres or mysql)
func NewDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres", "":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		})
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	log.Info("connected to database", zap.String("driver", dialector.Name()), zap.String("host", cfg.Host))
	return db, nil
}

// AutoMigrate creates or updates every table. Business collections use the
// configured table names.
func AutoMigrate(db *gorm.DB, tables config.CollectionConfig, log *zap.Logger) error {
	log.Info("running database migrations")

	collections := []struct {
		table string
		model interface{}
	}{
		{tables.Customers, &entity.Customer{}},
		{tables.Items, &entity.Item{}},
		{tables.Orders, &entity.Order{}},
		{tables.StitchingOrders, &entity.StitchingOrder{}},
		{tables.Fabrics, &entity.Fabric{}},
		{tables.Accessories, &entity.Accessory{}},
	}
	for _, c := range collections {
		if err := db.Table(c.table).AutoMigrate(c.model); err != nil {
			return fmt.Errorf("failed to migrate %s: %w", c.table, err)
		}
	}

	err := db.AutoMigrate(
		&entity.User{},
		&entity.ShopSettings{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the settings row and, when configured, the first
// owner account. Existing rows are left alone.
func SeedDefaultData(db *gorm.DB, owner config.OwnerConfig, log *zap.Logger) error {
	var settings entity.ShopSettings
	err := db.First(&settings, "id = ?", entity.ShopSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(entity.DefaultShopSettings()).Error; err != nil {
			return fmt.Errorf("failed to seed shop settings: %w", err)
		}
		log.Info("default shop settings created")
	} else if err != nil {
		return err
	}

	if owner.Email == "" || owner.Password == "" {
		return nil
	}

	var existing entity.User
	err = db.Where("email = ?", owner.Email).First(&existing).Error
	if err == nil {
		log.Debug("owner account already exists", zap.String("email", owner.Email))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := utils.HashPassword(owner.Password)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	name := owner.Name
	if name == "" {
		name = "Owner"
	}
	user := entity.User{
		Name:     name,
		Email:    owner.Email,
		Password: hashed,
		Provider: "local",
		Role:     enum.RoleOwner,
		Active:   true,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create owner account: %w", err)
	}
	log.Info("owner account created", zap.String("email", owner.Email))
	return nil
}
