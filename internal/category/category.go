package category

// Category groups products in the storefront. JSON tags follow the camelCase
// convention used elsewhere in the project.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
