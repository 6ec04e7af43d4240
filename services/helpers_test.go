package services

import (
	"context"
	"testing"
	"time"

	"github.com/Xfhreall/armaso-pos/database"
	"github.com/Xfhreall/armaso-pos/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. One connection keeps every query on
// the same sqlite memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price int64, category models.MenuCategory) *models.MenuItem {
	t.Helper()
	item, err := NewMenuService(db).Create(context.Background(), MenuInput{Name: name, Price: price, Category: category})
	require.NoError(t, err)
	return item
}

func placeOrder(t *testing.T, svc *OrderService, customer string, items ...OrderItemInput) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName:  customer,
		PaymentMethod: models.PaymentCash,
		Items:         items,
	})
	require.NoError(t, err)
	return order
}

// backdate moves an order's creation time; used to build day-boundary fixtures.
func backdate(t *testing.T, db *gorm.DB, orderID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", orderID).
		UpdateColumn("created_at", at.UTC()).Error)
}

func seedVoucher(t *testing.T, db *gorm.DB, code string, discount int64, maxUsage *int) *models.Voucher {
	t.Helper()
	v, err := NewVoucherService(db).Create(context.Background(), VoucherInput{
		Code:     code,
		Discount: discount,
		MaxUsage: maxUsage,
	})
	require.NoError(t, err)
	return v
}

func intPtr(n int) *int { return &n }
