package database

import (
	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"gorm.io/gorm"
)

// Models lists every table owned by the application, parents first.
var Models = []interface{}{
	&models.User{},
	&models.RevokedSession{},
	&models.MenuItem{},
	&models.Voucher{},
	&models.Order{},
	&models.OrderItem{},
	&models.VoucherUsageLog{},
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
