package product

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image_filename", "stock_quantity"}).
			AddRow(1, "Sunflower bouquet", 150000.0, "Fresh sunflowers", "sunflower.jpg", 5).
			AddRow(2, "Tulip box", 220000.0, nil, nil, 0)

		mock.ExpectQuery("SELECT id, name, price, description, image_filename, stock_quantity").
			WithArgs("").
			WillReturnRows(rows)

		products, err := repo.GetList(context.Background(), "")
		assert.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "Sunflower bouquet", products[0].Name)
		assert.Nil(t, products[1].Description)
	})

	t.Run("Search passes through", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image_filename", "stock_quantity"}).
			AddRow(1, "Sunflower bouquet", 150000.0, nil, nil, 5)

		mock.ExpectQuery("SELECT id, name, price, description, image_filename, stock_quantity").
			WithArgs("sun").
			WillReturnRows(rows)

		products, err := repo.GetList(context.Background(), "sun")
		assert.NoError(t, err)
		assert.Len(t, products, 1)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, price").
			WillReturnError(errors.New("db error"))

		_, err := repo.GetList(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image_filename", "stock_quantity"}).
			AddRow(7, "Rose bundle", 99000.0, nil, "rose.jpg", 12)

		mock.ExpectQuery("SELECT id, name, price, description, image_filename, stock_quantity").
			WithArgs(uint(7)).
			WillReturnRows(rows)

		p, err := repo.GetByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, uint(7), p.ID)
		assert.Equal(t, 12, p.StockQuantity)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, price, description, image_filename, stock_quantity").
			WithArgs(uint(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WithArgs("Orchid pot", 310000.0, sqlmock.AnyArg(), sqlmock.AnyArg(), 3).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

		p, err := repo.Create(context.Background(), NewProductInput{
			Name:          "Orchid pot",
			Price:         310000.0,
			Description:   "Purple orchid",
			StockQuantity: 3,
			ImageFilename: "orchid.png",
		})
		assert.NoError(t, err)
		assert.Equal(t, uint(9), p.ID)
		require.NotNil(t, p.ImageFilename)
		assert.Equal(t, "orchid.png", *p.ImageFilename)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO products").
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), NewProductInput{Name: "x"})
		assert.Error(t, err)
	})
}

func TestRepository_UpdateStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET stock_quantity").
			WithArgs(20, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStock(context.Background(), 1, 20))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET stock_quantity").
			WithArgs(20, uint(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdateStock(context.Background(), 2, 20), ErrProductNotFound)
	})
}

func TestRepository_UpdatePrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET price").
			WithArgs(175000.0, uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePrice(context.Background(), 1, 175000.0))
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET price").
			WithArgs(175000.0, uint(2)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePrice(context.Background(), 2, 175000.0), ErrProductNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success returns deleted row", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "price", "description", "image_filename", "stock_quantity"}).
			AddRow(3, "Lily vase", 120000.0, nil, "lily.jpg", 2)

		mock.ExpectQuery("DELETE FROM products").
			WithArgs(uint(3)).
			WillReturnRows(rows)

		p, err := repo.Delete(context.Background(), 3)
		assert.NoError(t, err)
		require.NotNil(t, p.ImageFilename)
		assert.Equal(t, "lily.jpg", *p.ImageFilename)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("DELETE FROM products").
			WithArgs(uint(404)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Delete(context.Background(), 404)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
