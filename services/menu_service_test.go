package services

import (
	"context"
	"testing"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCreateAndList(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, MenuInput{Name: "  Soto Ayam ", Price: 22000, Category: models.CategoryFood})
	require.NoError(t, err)
	_, err = svc.Create(ctx, MenuInput{Name: "Es Teh Manis", Price: 5000, Category: models.CategoryDrink})
	require.NoError(t, err)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Es Teh Manis", items[0].Name)
	assert.Equal(t, "Soto Ayam", items[1].Name)
	assert.True(t, items[1].IsActive)
}

func TestMenuCreateRejectsInvalidInput(t *testing.T) {
	svc := NewMenuService(newTestDB(t))

	cases := map[string]MenuInput{
		"blank name":       {Name: "  ", Price: 1000, Category: models.CategoryFood},
		"negative price":   {Name: "Kopi", Price: -1, Category: models.CategoryDrink},
		"unknown category": {Name: "Kopi", Price: 1000, Category: "SNACK"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestMenuUpdatePriceIsVisibleInCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()
	item := seedMenuItem(t, db, "Bakso", 20000, models.CategoryFood)

	_, err := svc.Update(ctx, item.ID, MenuInput{Name: "Bakso Urat", Price: 25000, Category: models.CategoryFood})
	require.NoError(t, err)

	got, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bakso Urat", got.Name)
	assert.Equal(t, int64(25000), got.Price)

	_, err = svc.Update(ctx, 999, MenuInput{Name: "X", Price: 1, Category: models.CategoryFood})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestMenuSetActiveAndFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()
	food := seedMenuItem(t, db, "Rendang", 40000, models.CategoryFood)
	seedMenuItem(t, db, "Es Jeruk", 8000, models.CategoryDrink)

	updated, err := svc.SetActive(ctx, food.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Es Jeruk", active[0].Name)

	foods, err := svc.ListByCategory(ctx, models.CategoryFood)
	require.NoError(t, err)
	require.Len(t, foods, 1)
	assert.Equal(t, "Rendang", foods[0].Name)

	_, err = svc.ListByCategory(ctx, "DESSERT")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMenuDeleteRefusesItemsOnOrders(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db)
	ctx := context.Background()
	sold := seedMenuItem(t, db, "Mie Goreng", 22000, models.CategoryFood)
	unsold := seedMenuItem(t, db, "Gado-gado", 20000, models.CategoryFood)
	placeOrder(t, NewOrderService(db), "Budi", OrderItemInput{MenuID: sold.ID, Quantity: 1, Price: 22000})

	assert.ErrorIs(t, svc.Delete(ctx, sold.ID), ErrMenuInUse)
	require.NoError(t, svc.Delete(ctx, unsold.ID))
	assert.ErrorIs(t, svc.Delete(ctx, unsold.ID), ErrMenuNotFound)

	_, err := svc.Get(ctx, sold.ID)
	assert.NoError(t, err)
}
