package product

type Product struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Description   *string `json:"description,omitempty"`
	ImageFilename *string `json:"image_filename,omitempty"`
	StockQuantity int     `json:"stock_quantity"`
}

type NewProductInput struct {
	Name          string
	Price         float64
	Description   string
	StockQuantity int
	ImageFilename string
}
