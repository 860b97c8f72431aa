package product

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"bloomshop-be/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetList(ctx context.Context, search string) ([]Product, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input NewProductInput) (*Product, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) UpdatePrice(ctx context.Context, id uint, price float64) error {
	args := m.Called(ctx, id, price)
	return args.Error(0)
}

func (m *MockRepository) UpdateStock(ctx context.Context, id uint, stock int) error {
	args := m.Called(ctx, id, stock)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

// MockStore is a mock for the blob storage collaborator
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(category storage.Category, name string, r io.Reader) (string, error) {
	args := m.Called(category, name, r)
	return args.String(0), args.Error(1)
}

func (m *MockStore) Remove(category storage.Category, ref string) error {
	args := m.Called(category, ref)
	return args.Error(0)
}

func (m *MockStore) Dir() string {
	args := m.Called()
	return args.String(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	input := NewProductInput{
		Name:          "Sunflower bouquet",
		Price:         150000,
		Description:   "Fresh sunflowers",
		StockQuantity: 5,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockStore := new(MockStore)
		svc := NewService(mockRepo, mockStore)

		mockStore.On("Save", storage.CategoryProduct, "sunflower.jpg", mock.Anything).Return("sunflower.jpg", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(&Product{ID: 1, Name: input.Name}, nil).Once()

		p, err := svc.Create(ctx, input, "sunflower.jpg", strings.NewReader("img"))

		assert.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
		mockStore.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - missing fields", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockStore))

		_, err := svc.Create(ctx, NewProductInput{Price: 1}, "x.jpg", strings.NewReader("img"))
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("Error - missing image", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockStore))

		_, err := svc.Create(ctx, input, "", nil)
		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("Error - negative price", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockStore))

		bad := input
		bad.Price = -1
		_, err := svc.Create(ctx, bad, "x.jpg", strings.NewReader("img"))
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("Error - repo failure cleans up blob", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockStore := new(MockStore)
		svc := NewService(mockRepo, mockStore)

		mockStore.On("Save", storage.CategoryProduct, "sunflower.jpg", mock.Anything).Return("sunflower.jpg", nil).Once()
		mockRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db error")).Once()
		mockStore.On("Remove", storage.CategoryProduct, "sunflower.jpg").Return(nil).Once()

		_, err := svc.Create(ctx, input, "sunflower.jpg", strings.NewReader("img"))

		assert.Error(t, err)
		mockStore.AssertExpectations(t)
	})
}

func TestService_UpdateStock(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockStore))

		mockRepo.On("UpdateStock", ctx, uint(1), 10).Return(nil).Once()

		assert.NoError(t, svc.UpdateStock(ctx, 1, 10))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - negative stock", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockStore))

		assert.ErrorIs(t, svc.UpdateStock(ctx, 1, -3), ErrInvalidStock)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	image := "rose.jpg"

	t.Run("Success removes image", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockStore := new(MockStore)
		svc := NewService(mockRepo, mockStore)

		mockRepo.On("Delete", ctx, uint(2)).Return(&Product{ID: 2, ImageFilename: &image}, nil).Once()
		mockStore.On("Remove", storage.CategoryProduct, image).Return(nil).Once()

		assert.NoError(t, svc.Delete(ctx, 2))
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("Error - not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockStore))

		mockRepo.On("Delete", ctx, uint(404)).Return(nil, ErrProductNotFound).Once()

		assert.ErrorIs(t, svc.Delete(ctx, 404), ErrProductNotFound)
	})
}
