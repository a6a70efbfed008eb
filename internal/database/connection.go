package database

import (
	"fmt"
	"stickyflow-backend/internal/config"
	"stickyflow-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// 首次启动时写入的默认帮助文案
const defaultHelpContent = "Welcome to Sticky Flow — a wall of memories and thoughts.\n\n" +
	"Each note carries meaning. The red bloody X marks moments of regret, danger, or unfinished memories.\n\n" +
	"Tap or click a note to flip and reveal what lies behind."

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db
	fmt.Println("数据库连接成功")
	return db, nil
}

func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("database connection not initialized")
	}

	err := DB.AutoMigrate(
		&models.Note{},
		&models.HelpText{},
		&models.VisitorRecord{},
		&models.VisitorConsent{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}

	if err := insertDefaultHelp(); err != nil {
		return fmt.Errorf("failed to insert default help text: %w", err)
	}

	return nil
}

func insertDefaultHelp() error {
	var existing models.HelpText
	if err := DB.First(&existing, 1).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return DB.Create(&models.HelpText{ID: 1, Content: defaultHelpContent}).Error
		}
		return err
	}
	return nil
}
