package order

import (
	"strings"
	"time"
)

// Order represents a customer purchase. Line items are snapshots taken at
// creation time so later product edits never alter historical orders.
type Order struct {
	ID        int        `json:"id"`
	Reference string     `json:"reference"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	Customer  Customer   `json:"customer"`
	Shipping  Shipping   `json:"shipping"`
	Payment   Payment    `json:"payment"`
	UserID    int        `json:"userId,omitempty"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// LineItem is one product/quantity pair with the product's name, price and
// image copied at order creation. Immutable thereafter.
type LineItem struct {
	ProductID int     `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type Shipping struct {
	Address    string `json:"address"`
	City       string `json:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type Payment struct {
	Method    string `json:"method"`
	Reference string `json:"reference,omitempty"`
}

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
	StatusRefunded  Status = "Refunded"
)

// validNext is the order lifecycle. Delivered, Cancelled and Refunded are
// terminal; only Completed orders can be refunded.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusCompleted: true, StatusDelivered: true, StatusCancelled: true},
	StatusCompleted: {StatusRefunded: true},
	StatusDelivered: {},
	StatusCancelled: {},
	StatusRefunded:  {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func IsValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}

// ResolveItemImages returns a copy of the order with every line-item image
// turned into an absolute URL, falling back to a placeholder when the
// snapshot carries none.
func ResolveItemImages(ord Order, baseURL string) Order {
	items := make([]LineItem, len(ord.Items))
	copy(items, ord.Items)
	for i := range items {
		items[i].Image = resolveImageURL(items[i].Image, baseURL)
	}
	ord.Items = items
	return ord
}

func resolveImageURL(image, baseURL string) string {
	if image == "" {
		return "/placeholder.png"
	}
	if strings.HasPrefix(image, "http") {
		return image
	}
	return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(image, "/")
}
