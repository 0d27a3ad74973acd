package product

// Product represents an item in the bakery catalogue and maps to the
// `public.products` table. JSON tags follow the camelCase convention used
// elsewhere in the project.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	Category    *string `json:"category,omitempty"`
	CreatedAt   *string `json:"createdAt,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
}

// LowStockThreshold is the stock level at or below which a product counts as
// low stock on the dashboard.
const LowStockThreshold = 10
