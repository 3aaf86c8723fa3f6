package schema

// CatalogProductTable represents the 'catalog.product' table
type CatalogProductTable struct {
	Table       string
	ID          string
	Name        string
	Description string
	CategoryID  string
	Stock       string
	Price       string
	Image       string
	CreatedAt   string
	UpdatedAt   string
	DeletedAt   string
}

// CatalogProduct is the schema definition for catalog.product
var CatalogProduct = CatalogProductTable{
	Table:       "catalog.product",
	ID:          "id",
	Name:        "name",
	Description: "description",
	CategoryID:  "categoryid",
	Stock:       "stock",
	Price:       "price",
	Image:       "image",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	DeletedAt:   "deletedat",
}

func (t CatalogProductTable) Columns() []string {
	return []string{t.ID, t.Name, t.Description, t.CategoryID, t.Stock, t.Price, t.Image, t.CreatedAt, t.UpdatedAt}
}
