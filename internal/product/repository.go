package product

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetList(ctx context.Context, search string) ([]Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Create(ctx context.Context, input NewProductInput) (*Product, error)
	UpdatePrice(ctx context.Context, id uint, price float64) error
	UpdateStock(ctx context.Context, id uint, stock int) error
	Delete(ctx context.Context, id uint) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetList(ctx context.Context, search string) ([]Product, error) {
	query := `
		SELECT id, name, price, description, image_filename, stock_quantity
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageFilename, &p.StockQuantity); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	query := `
		SELECT id, name, price, description, image_filename, stock_quantity
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageFilename, &p.StockQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	p := Product{
		Name:          input.Name,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
	}
	if input.Description != "" {
		p.Description = &input.Description
	}
	if input.ImageFilename != "" {
		p.ImageFilename = &input.ImageFilename
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, description, image_filename, stock_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, p.Price, p.Description, p.ImageFilename, p.StockQuantity).Scan(&p.ID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdatePrice(ctx context.Context, id uint, price float64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET price = $1 WHERE id = $2`, price, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) UpdateStock(ctx context.Context, id uint, stock int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE products SET stock_quantity = $1 WHERE id = $2`, stock, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Delete removes the product row and returns it so callers can clean up the
// stored image. Historical order items keep their dangling product reference.
func (r *repository) Delete(ctx context.Context, id uint) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM products
		WHERE id = $1
		RETURNING id, name, price, description, image_filename, stock_quantity
	`, id).Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.ImageFilename, &p.StockQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}
