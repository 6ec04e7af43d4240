package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderItemInput struct {
	MenuID   uint  `json:"menu_id"`
	Quantity int   `json:"quantity"`
	Price    int64 `json:"price"`
}

type CreateOrderInput struct {
	CustomerName  string               `json:"customer_name"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	Notes         string               `json:"notes"`
	Items         []OrderItemInput     `json:"items"`
	Discount      int64                `json:"discount"`
	VoucherCode   string               `json:"voucher_code"`
}

func (in *CreateOrderInput) normalize() error {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Notes = strings.TrimSpace(in.Notes)
	in.VoucherCode = NormalizeCode(in.VoucherCode)

	if in.CustomerName == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if !in.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, in.PaymentMethod)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if in.Discount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	for i, it := range in.Items {
		if it.MenuID == 0 {
			return fmt.Errorf("%w: item %d has no menu id", ErrInvalidInput, i)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: item %d quantity must be at least 1", ErrInvalidInput, i)
		}
		if it.Price < 0 {
			return fmt.Errorf("%w: item %d price must not be negative", ErrInvalidInput, i)
		}
	}
	return nil
}

// Subtotal sums the line totals.
func Subtotal(lines []models.OrderItem) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.LineTotal()
	}
	return sum
}

func orderLines(items []OrderItemInput) []models.OrderItem {
	lines := make([]models.OrderItem, len(items))
	for i, it := range items {
		lines[i] = models.OrderItem{
			MenuID:    it.MenuID,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
		}
	}
	return lines
}

var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// containsPattern builds a LIKE pattern matching s literally anywhere. Use with ESCAPE '!'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

type OrderFilter struct {
	Status models.OrderStatus
	Search string
	Limit  int
}

// CreateOrder persists a PAID order with its lines. When a voucher code is given it is
// redeemed in the same transaction, its discount replaces in.Discount, and any voucher
// failure aborts the order.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	now := clockNow(s.Now)
	lines := orderLines(in.Items)
	subtotal := Subtotal(lines)

	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureMenusExist(tx, in.Items); err != nil {
			return err
		}

		discount := in.Discount
		var voucher *models.Voucher
		if in.VoucherCode != "" {
			v, err := findVoucherByCode(tx, in.VoucherCode)
			if err != nil {
				return err
			}
			if err := checkRedeemable(v, now); err != nil {
				return err
			}
			voucher = v
			discount = v.Discount
		}

		order = models.Order{
			CustomerName:  in.CustomerName,
			Subtotal:      subtotal,
			Discount:      discount,
			Total:         models.ComputeTotal(subtotal, discount),
			PaymentMethod: in.PaymentMethod,
			Status:        models.OrderStatusPaid,
			Notes:         in.Notes,
		}
		if voucher != nil {
			code := voucher.Code
			order.VoucherCode = &code
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = order.ID
		}
		if err := tx.Omit("Menu").Create(&lines).Error; err != nil {
			return err
		}

		if voucher != nil {
			if _, err := redeemInTx(tx, voucher, order.ID, discount, now); err != nil {
				return err
			}
		}

		return tx.Preload("Items.Menu").First(&order, order.ID).Error
	})
	if err != nil {
		if !IsDomainError(err) {
			utils.ErrorLogger.WithError(err).Error("error creating order")
		}
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"customer": order.CustomerName,
		"total":    order.Total,
		"payment":  order.PaymentMethod,
	}).Info("order placed")
	return &order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Preload("Items.Menu").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetOrders returns orders newest first.
func (s *OrderService) GetOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := s.DB.WithContext(ctx).Preload("Items.Menu")
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		q = q.Where("LOWER(customer_name) LIKE ? ESCAPE '!'", containsPattern(search))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var orders []models.Order
	if err := q.Order("created_at desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetKitchenOrders returns PAID orders oldest first.
func (s *OrderService) GetKitchenOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items.Menu").
		Where("status = ?", models.OrderStatusPaid).
		Order("created_at asc, id asc").
		Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus moves a single order from PAID to SERVED.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return ErrInvalidTransition
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, order.Status).
			Updates(map[string]interface{}{
				"status":     status,
				"updated_at": clockNow(s.Now),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// lost a race with another update
			return ErrInvalidTransition
		}
		return tx.Preload("Items.Menu").First(&order, id).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{"order_id": id, "status": status}).Info("order status updated")
	return &order, nil
}

// UpdateMultipleOrderStatus moves every listed PAID order to status and returns the ids
// that moved, ascending. Missing ids and orders already past PAID are skipped.
func (s *OrderService) UpdateMultipleOrderStatus(ctx context.Context, ids []uint, status models.OrderStatus) ([]uint, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no order ids given", ErrInvalidInput)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if !models.OrderStatusPaid.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	moved := []uint{}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidates []uint
		if err := tx.Model(&models.Order{}).
			Where("id IN ? AND status = ?", ids, models.OrderStatusPaid).
			Order("id asc").
			Pluck("id", &candidates).Error; err != nil {
			return err
		}

		now := clockNow(s.Now)
		for _, id := range candidates {
			// guarded per row so a concurrent move is not reported twice
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ?", id, models.OrderStatusPaid).
				Updates(map[string]interface{}{
					"status":     status,
					"updated_at": now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				moved = append(moved, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"requested": len(ids),
		"moved":     len(moved),
		"status":    status,
	}).Info("bulk order status updated")
	return moved, nil
}

func ensureMenusExist(tx *gorm.DB, items []OrderItemInput) error {
	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.MenuID]; ok {
			continue
		}
		seen[it.MenuID] = struct{}{}
		ids = append(ids, it.MenuID)
	}

	var n int64
	if err := tx.Model(&models.MenuItem{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return ErrMenuNotFound
	}
	return nil
}
