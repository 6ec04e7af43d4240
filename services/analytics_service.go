package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"gorm.io/gorm"
)

const (
	dailyTopItems  = 10
	weeklyTopItems = 5
	weekDays       = 7
	dayKeyLayout   = "2006-01-02"
)

// Short weekday names indexed by time.Weekday.
var weekdayNames = map[string][7]string{
	"id": {"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"},
	"en": {"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
}

// AnalyticsService recomputes sales figures from the order ledger on every call.
// Day boundaries follow Location.
type AnalyticsService struct {
	DB       *gorm.DB
	Location *time.Location
	Locale   string
	Now      func() time.Time
}

func NewAnalyticsService(db *gorm.DB, loc *time.Location, locale string) *AnalyticsService {
	return &AnalyticsService{DB: db, Location: loc, Locale: locale}
}

// ItemSales is one menu item's share of the period. Revenue uses the current catalog price.
type ItemSales struct {
	MenuID   uint   `json:"menu_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

type DailyStats struct {
	Date         string      `json:"date"`
	TotalRevenue int64       `json:"total_revenue"`
	TotalOrders  int         `json:"total_orders"`
	PopularItems []ItemSales `json:"popular_items"`
}

type DayBucket struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Orders  int    `json:"orders"`
	Revenue int64  `json:"revenue"`
}

type WeeklyStats struct {
	From         string      `json:"from"`
	To           string      `json:"to"`
	TotalRevenue int64       `json:"total_revenue"`
	TotalOrders  int         `json:"total_orders"`
	Days         []DayBucket `json:"days"`
	TopItems     []ItemSales `json:"top_items"`
}

func (s *AnalyticsService) GetDailyStats(ctx context.Context) (*DailyStats, error) {
	start := s.startOfToday()
	end := start.AddDate(0, 0, 1)

	orders, err := s.ordersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	stats := &DailyStats{
		Date:         start.Format(dayKeyLayout),
		TotalOrders:  len(orders),
		PopularItems: topItems(aggregateItems(orders), dailyTopItems),
	}
	for _, o := range orders {
		stats.TotalRevenue += o.Total
	}
	return stats, nil
}

// GetWeeklyStats covers the trailing seven calendar days, today included.
func (s *AnalyticsService) GetWeeklyStats(ctx context.Context) (*WeeklyStats, error) {
	today := s.startOfToday()
	start := today.AddDate(0, 0, -(weekDays - 1))
	end := today.AddDate(0, 0, 1)

	orders, err := s.ordersBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	names, err := s.weekdayNames()
	if err != nil {
		return nil, err
	}

	days := make([]DayBucket, weekDays)
	index := make(map[string]int, weekDays)
	for i := range days {
		d := start.AddDate(0, 0, i)
		key := d.Format(dayKeyLayout)
		days[i] = DayBucket{
			Date:  key,
			Label: fmt.Sprintf("%s %d", names[d.Weekday()], d.Day()),
		}
		index[key] = i
	}

	stats := &WeeklyStats{
		From:        start.Format(dayKeyLayout),
		To:          today.Format(dayKeyLayout),
		TotalOrders: len(orders),
		Days:        days,
		TopItems:    topItems(aggregateItems(orders), weeklyTopItems),
	}
	for _, o := range orders {
		stats.TotalRevenue += o.Total
		if i, ok := index[o.CreatedAt.In(s.location()).Format(dayKeyLayout)]; ok {
			days[i].Orders++
			days[i].Revenue += o.Total
		}
	}
	return stats, nil
}

// ordersBetween returns sold orders created in [from, to), oldest first.
func (s *AnalyticsService) ordersBetween(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items.Menu").
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Where("status IN ?", []models.OrderStatus{models.OrderStatusPaid, models.OrderStatusServed}).
		Order("created_at asc, id asc").
		Find(&orders).Error
	return orders, err
}

func (s *AnalyticsService) startOfToday() time.Time {
	now := clockNow(s.Now).In(s.location())
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.location())
}

func (s *AnalyticsService) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

func (s *AnalyticsService) weekdayNames() ([7]string, error) {
	locale := s.Locale
	if locale == "" {
		locale = "id"
	}
	names, ok := weekdayNames[locale]
	if !ok {
		return [7]string{}, fmt.Errorf("analytics: unsupported locale %q", locale)
	}
	return names, nil
}

// aggregateItems sums quantities per menu item, sorted by quantity descending.
// Ties keep the order in which items were first seen.
func aggregateItems(orders []models.Order) []ItemSales {
	var out []ItemSales
	index := make(map[uint]int)
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.MenuID]
			if !ok {
				i = len(out)
				index[it.MenuID] = i
				out = append(out, ItemSales{MenuID: it.MenuID, Name: it.Menu.Name})
			}
			out[i].Quantity += it.Quantity
		}
	}

	// revenue follows the current catalog price
	prices := make(map[uint]int64, len(out))
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := prices[it.MenuID]; ok {
				continue
			}
			if it.Menu.ID != 0 {
				prices[it.MenuID] = it.Menu.Price
			} else {
				prices[it.MenuID] = it.UnitPrice
			}
		}
	}
	for i := range out {
		out[i].Revenue = int64(out[i].Quantity) * prices[out[i].MenuID]
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Quantity > out[b].Quantity
	})
	return out
}

func topItems(items []ItemSales, n int) []ItemSales {
	if len(items) > n {
		items = items[:n]
	}
	if items == nil {
		return []ItemSales{}
	}
	return items
}
