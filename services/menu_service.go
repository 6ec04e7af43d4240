package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

type MenuInput struct {
	Name     string
	Price    int64
	Category models.MenuCategory
}

func (in *MenuInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	return nil
}

func (s *MenuService) List(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.DB.WithContext(ctx).Order("name asc, id asc").Find(&items).Error
	return items, err
}

// ListActive returns what the POS may sell.
func (s *MenuService) ListActive(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc, id asc").
		Find(&items).Error
	return items, err
}

func (s *MenuService) ListByCategory(ctx context.Context, category models.MenuCategory) ([]models.MenuItem, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	var items []models.MenuItem
	err := s.DB.WithContext(ctx).
		Where("category = ?", category).
		Order("name asc, id asc").
		Find(&items).Error
	return items, err
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	return findMenu(s.DB.WithContext(ctx), id)
}

func (s *MenuService) Create(ctx context.Context, in MenuInput) (*models.MenuItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	item := models.MenuItem{
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		IsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"menu_id": item.ID, "name": item.Name}).Info("menu item created")
	return &item, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, in MenuInput) (*models.MenuItem, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	item, err := findMenu(db, id)
	if err != nil {
		return nil, err
	}
	item.Name = in.Name
	item.Price = in.Price
	item.Category = in.Category
	if err := db.Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a menu item that no order references.
func (s *MenuService) Delete(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findMenu(tx, id); err != nil {
			return err
		}
		var refs int64
		if err := tx.Model(&models.OrderItem{}).Where("menu_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrMenuInUse
		}
		return tx.Delete(&models.MenuItem{}, id).Error
	})
}

func (s *MenuService) SetActive(ctx context.Context, id uint, active bool) (*models.MenuItem, error) {
	db := s.DB.WithContext(ctx)
	item, err := findMenu(db, id)
	if err != nil {
		return nil, err
	}
	if err := db.Model(item).Update("is_active", active).Error; err != nil {
		return nil, err
	}
	item.IsActive = active
	return item, nil
}

func findMenu(db *gorm.DB, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return &item, nil
}
