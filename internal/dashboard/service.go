// Package dashboard computes the read-side aggregations behind the admin
// dashboard and report views: time-windowed sales, the weekday sales series,
// the status histogram, top sellers and the six-month trend.
package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wildflour/bakery-backend/internal/order"
	"github.com/wildflour/bakery-backend/internal/product"
)

// ErrAggregationFailed wraps any persistence error hit while building a
// snapshot. Snapshots are all-or-nothing: no partial results.
var ErrAggregationFailed = errors.New("aggregation failed")

const (
	topSellersDashboard = 5
	topSellersReport    = 3
	recentOrdersCount   = 5
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type OrderSource interface {
	List(f order.Filter) ([]order.Order, error)
}

type ProductSource interface {
	List() ([]product.Product, error)
}

type Service struct {
	orders   OrderSource
	products ProductSource
	baseURL  string
	now      func() time.Time
}

func NewService(orders OrderSource, products ProductSource, baseURL string) *Service {
	return &Service{orders: orders, products: products, baseURL: baseURL, now: time.Now}
}

type Stats struct {
	SalesToday           float64 `json:"salesToday"`
	WeeklySales          float64 `json:"weeklySales"`
	MonthlySales         float64 `json:"monthlySales"`
	LowStockCount        int     `json:"lowStockCount"`
	CompletedOrdersCount int     `json:"completedOrdersCount"`
}

type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor string    `json:"backgroundColor,omitempty"`
}

type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// TopSeller is a product annotated with the total quantity sold across
// Delivered and Completed orders.
type TopSeller struct {
	product.Product
	TotalSold int `json:"totalSold"`
}

// ReportSeller mirrors TopSeller under the report view's field name.
type ReportSeller struct {
	product.Product
	SalesCount int `json:"salesCount"`
}

type Snapshot struct {
	Stats              Stats         `json:"stats"`
	LineData           ChartData     `json:"lineData"`
	DoughnutData       ChartData     `json:"doughnutData"`
	TopSellingProducts []TopSeller   `json:"topSellingProducts"`
	RecentOrders       []order.Order `json:"recentOrders"`
}

type Report struct {
	SalesData   ChartData      `json:"salesData"`
	TopProducts []ReportSeller `json:"topProducts"`
}

// Dashboard builds the full dashboard snapshot from one read of each
// collection.
func (s *Service) Dashboard() (Snapshot, error) {
	orders, products, err := s.load()
	if err != nil {
		return Snapshot{}, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	lowStock := 0
	for _, p := range products {
		if p.Stock <= product.LowStockThreshold {
			lowStock++
		}
	}

	completed := 0
	for _, ord := range orders {
		if ord.Status == order.StatusCompleted {
			completed++
		}
	}

	stats := Stats{
		SalesToday:           sumSalesSince(orders, today),
		WeeklySales:          sumSalesSince(orders, weekAgo),
		MonthlySales:         sumSalesSince(orders, monthStart),
		LowStockCount:        lowStock,
		CompletedOrdersCount: completed,
	}

	return Snapshot{
		Stats: stats,
		LineData: ChartData{
			Labels:   weekdayLabels,
			Datasets: []Dataset{{Data: dailySales(orders, weekAgo)}},
		},
		DoughnutData:       statusHistogram(orders),
		TopSellingProducts: topSellers(orders, products, topSellersDashboard),
		RecentOrders:       s.recentOrders(orders),
	}, nil
}

// Reports builds the report view: six-month sales trend plus the top three
// sellers.
func (s *Service) Reports() (Report, error) {
	orders, products, err := s.load()
	if err != nil {
		return Report{}, err
	}

	// sum totals into one bucket per calendar month, then take the six
	// buckets ending at the current month, wrapping backward circularly
	monthlyTotals := make([]float64, 12)
	for _, ord := range orders {
		if !countsTowardSales(ord) {
			continue
		}
		monthlyTotals[int(ord.CreatedAt.Month())-1] += ord.Total
	}

	currentMonth := int(s.now().Month()) - 1
	data := make([]float64, 0, 6)
	labels := make([]string, 0, 6)
	for i := 5; i >= 0; i-- {
		idx := (currentMonth - i + 12) % 12
		data = append(data, monthlyTotals[idx])
		labels = append(labels, monthLabels[idx])
	}

	ranked := topSellers(orders, products, topSellersReport)
	top := make([]ReportSeller, 0, len(ranked))
	for _, t := range ranked {
		top = append(top, ReportSeller{Product: t.Product, SalesCount: t.TotalSold})
	}

	return Report{
		SalesData: ChartData{
			Labels:   labels,
			Datasets: []Dataset{{Label: "Sales", Data: data, BackgroundColor: "rgba(54, 162, 235, 0.7)"}},
		},
		TopProducts: top,
	}, nil
}

func (s *Service) load() ([]order.Order, []product.Product, error) {
	orders, err := s.orders.List(order.Filter{})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}
	products, err := s.products.List()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrAggregationFailed, err)
	}
	return orders, products, nil
}

// countsTowardSales reports whether an order's total is revenue for the
// sales aggregations.
func countsTowardSales(ord order.Order) bool {
	return ord.Status == order.StatusDelivered || ord.Status == order.StatusCompleted
}

func sumSalesSince(orders []order.Order, since time.Time) float64 {
	var sum float64
	for _, ord := range orders {
		if countsTowardSales(ord) && !ord.CreatedAt.Before(since) {
			sum += ord.Total
		}
	}
	return sum
}

// dailySales buckets the last week's revenue by weekday, Monday first:
// Sunday maps to bucket 6, Monday to 0, and so on.
func dailySales(orders []order.Order, since time.Time) []float64 {
	buckets := make([]float64, 7)
	for _, ord := range orders {
		if !countsTowardSales(ord) || ord.CreatedAt.Before(since) {
			continue
		}
		day := int(ord.CreatedAt.Weekday())
		adjusted := day - 1
		if day == 0 {
			adjusted = 6
		}
		buckets[adjusted] += ord.Total
	}
	return buckets
}

// statusHistogram counts every order by status, date-unfiltered. Orders with
// no status land under "Unknown".
func statusHistogram(orders []order.Order) ChartData {
	counts := map[string]int{}
	keys := []string{}
	for _, ord := range orders {
		status := string(ord.Status)
		if status == "" {
			status = "Unknown"
		}
		if _, seen := counts[status]; !seen {
			keys = append(keys, status)
		}
		counts[status]++
	}

	data := make([]float64, 0, len(keys))
	for _, k := range keys {
		data = append(data, float64(counts[k]))
	}
	return ChartData{Labels: keys, Datasets: []Dataset{{Data: data}}}
}

// topSellers ranks products by quantity sold across Delivered and Completed
// orders. The sort is stable, so products with equal quantities keep their
// catalogue order.
func topSellers(orders []order.Order, products []product.Product, limit int) []TopSeller {
	sold := map[int]int{}
	for _, ord := range orders {
		if !countsTowardSales(ord) {
			continue
		}
		for _, it := range ord.Items {
			sold[it.ProductID] += it.Quantity
		}
	}

	ranked := make([]TopSeller, 0, len(products))
	for _, p := range products {
		ranked = append(ranked, TopSeller{Product: p, TotalSold: sold[p.ID]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].TotalSold > ranked[j].TotalSold })

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Service) recentOrders(orders []order.Order) []order.Order {
	recent := make([]order.Order, len(orders))
	copy(recent, orders)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })

	if len(recent) > recentOrdersCount {
		recent = recent[:recentOrdersCount]
	}
	for i := range recent {
		recent[i] = order.ResolveItemImages(recent[i], s.baseURL)
	}
	return recent
}
