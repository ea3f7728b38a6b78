package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/example/donorfinder/internal/config"
	"github.com/example/donorfinder/internal/models"
	"github.com/example/donorfinder/internal/utils"
)

// SeedAdmin creates the bootstrap admin account from env configuration if
// no admin with that email exists yet. A blank email or password skips the
// seed entirely.
func SeedAdmin(conn *gorm.DB, cfg *config.Config) error {
	if cfg.AdminSeedEmail == "" || cfg.AdminSeedPassword == "" {
		return nil
	}

	var existing models.Admin
	err := conn.Where("email = ?", cfg.AdminSeedEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := utils.HashPassword(cfg.AdminSeedPassword)
	if err != nil {
		return err
	}

	name := cfg.AdminSeedName
	if name == "" {
		name = "Administrator"
	}

	admin := models.Admin{
		Name:         name,
		Email:        cfg.AdminSeedEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}

	if err := conn.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("seeded admin account %s", admin.Email)
	return nil
}
