package store

import (
	"github.com/PDPSchoolTeam/Metsenat-API/configs"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/logger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func NewDB() {
	dsn := configs.AppConfig.DB.DSN
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: false,
	}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db
	logger.Log.Info("connected to the database")
}

func DBMigrate() {
	DB.AutoMigrate(
		&models.User{},
		&models.University{},
		&models.Student{},
		&models.Sponsor{},
		&models.Allocation{},
	)
	logger.Log.Info("migrations loaded")
}
