package seed

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/PDPSchoolTeam/Metsenat-API/internal/logger"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/models"
	"github.com/PDPSchoolTeam/Metsenat-API/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	adminEmail    = "admin@metsenat.local"
	adminUsername = "admin"
	adminPassword = "password123"
)

var universities = []string{
	"National University of Uzbekistan",
	"Tashkent University of Information Technologies",
	"Samarkand State University",
}

func Run() {
	db := store.DB

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal("failed to hash seed password", zap.Error(err))
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email:    adminEmail,
			Username: adminUsername,
			Role:     models.RoleAdmin,
			Password: string(hash),
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		for _, name := range universities {
			if err := tx.Create(&models.University{Name: name}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded admin user and universities", zap.String("email", adminEmail))
}
