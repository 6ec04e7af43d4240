package database

import (
	"errors"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultMenu is the starter catalog loaded by SeedMenu.
var DefaultMenu = []models.MenuItem{
	{Name: "Nasi Goreng Spesial", Price: 25000, Category: models.CategoryFood},
	{Name: "Mie Goreng", Price: 22000, Category: models.CategoryFood},
	{Name: "Ayam Bakar", Price: 35000, Category: models.CategoryFood},
	{Name: "Sate Ayam (10 tusuk)", Price: 30000, Category: models.CategoryFood},
	{Name: "Gado-gado", Price: 20000, Category: models.CategoryFood},
	{Name: "Rendang", Price: 40000, Category: models.CategoryFood},
	{Name: "Soto Ayam", Price: 22000, Category: models.CategoryFood},
	{Name: "Bakso Urat", Price: 25000, Category: models.CategoryFood},
	{Name: "Es Teh Manis", Price: 5000, Category: models.CategoryDrink},
	{Name: "Es Jeruk", Price: 8000, Category: models.CategoryDrink},
	{Name: "Kopi Susu", Price: 15000, Category: models.CategoryDrink},
	{Name: "Jus Alpukat", Price: 18000, Category: models.CategoryDrink},
	{Name: "Es Campur", Price: 15000, Category: models.CategoryDrink},
	{Name: "Air Mineral", Price: 4000, Category: models.CategoryDrink},
	{Name: "Teh Hangat", Price: 4000, Category: models.CategoryDrink},
	{Name: "Lemon Tea", Price: 10000, Category: models.CategoryDrink},
	{Name: "Paket Hemat A", Price: 35000, Category: models.CategoryPackage},
	{Name: "Paket Hemat B", Price: 40000, Category: models.CategoryPackage},
	{Name: "Paket Keluarga", Price: 120000, Category: models.CategoryPackage},
	{Name: "Paket Nasi + Ayam + Es Teh", Price: 45000, Category: models.CategoryPackage},
	{Name: "Paket Mie + Bakso + Jeruk", Price: 42000, Category: models.CategoryPackage},
}

// SeedAdmin creates the first user when the users table is empty.
// It is a no-op if any user exists or password is empty.
func SeedAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		utils.InfoLogger.Warn("no users exist and ADMIN_PASSWORD is empty; skipping admin seed")
		return nil
	}
	if username == "" {
		return errors.New("admin username must not be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.Create(&models.User{Username: username, Password: string(hashed)}).Error; err != nil {
		return err
	}
	utils.InfoLogger.WithField("username", username).Info("seeded admin user")
	return nil
}

// SeedMenu inserts DefaultMenu when the catalog is empty.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := make([]models.MenuItem, len(DefaultMenu))
	copy(items, DefaultMenu)
	for i := range items {
		items[i].IsActive = true
	}
	if err := db.Create(&items).Error; err != nil {
		return err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"items": len(items)}).Info("seeded default menu")
	return nil
}
