package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"bloomshop-be/internal/logger"
	"bloomshop-be/internal/product"

	"go.uber.org/zap"
)

// Service defines the business logic for session-scoped carts. Every method
// takes the session key explicitly; the cart never reads ambient state.
type Service interface {
	Add(ctx context.Context, sessionKey string, productID uint, quantity int) (int, error)
	Update(ctx context.Context, sessionKey string, productID uint, quantity int) (*UpdateResult, error)
	Remove(ctx context.Context, sessionKey string, productID uint) error
	GetSnapshot(ctx context.Context, sessionKey string) (*Snapshot, error)
	Count(ctx context.Context, sessionKey string) (int, error)
	Clear(ctx context.Context, sessionKey string) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// Add puts quantity more units of a product into the cart after checking the
// live stock. The stock read is advisory only; checkout re-validates.
func (s *service) Add(ctx context.Context, sessionKey string, productID uint, quantity int) (int, error) {
	if sessionKey == "" {
		return 0, ErrMissingSession
	}
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}

	if p.StockQuantity <= 0 {
		return 0, fmt.Errorf("%w: %q is sold out", ErrOutOfStock, p.Name)
	}

	current, err := s.repo.GetQuantity(ctx, sessionKey, productID)
	if err != nil {
		return 0, err
	}

	if current+quantity > p.StockQuantity {
		return 0, fmt.Errorf("%w: only %d of %q left, %d already in cart",
			ErrOutOfStock, p.StockQuantity, p.Name, current)
	}

	newQty := current + quantity
	if err := s.repo.SetQuantity(ctx, sessionKey, productID, newQty); err != nil {
		return 0, err
	}

	return newQty, nil
}

// Update sets the quantity of a product already in the cart, clamped into
// [1, live stock]. Capped tells the caller the request did not survive as is.
func (s *service) Update(ctx context.Context, sessionKey string, productID uint, quantity int) (*UpdateResult, error) {
	if sessionKey == "" {
		return nil, ErrMissingSession
	}

	current, err := s.repo.GetQuantity(ctx, sessionKey, productID)
	if err != nil {
		return nil, err
	}
	if current == 0 {
		return nil, ErrCartItemNotFound
	}

	p, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	capped := false
	if quantity < 1 {
		quantity = 1
		capped = true
	}
	if quantity > p.StockQuantity {
		quantity = p.StockQuantity
		capped = true
	}

	if err := s.repo.SetQuantity(ctx, sessionKey, productID, quantity); err != nil {
		return nil, err
	}

	return &UpdateResult{
		Quantity: quantity,
		Subtotal: p.Price * float64(quantity),
		Capped:   capped,
	}, nil
}

// Remove is idempotent; removing an absent product is not an error.
func (s *service) Remove(ctx context.Context, sessionKey string, productID uint) error {
	if sessionKey == "" {
		return ErrMissingSession
	}
	return s.repo.Remove(ctx, sessionKey, productID)
}

// GetSnapshot renders the cart against live products. Quantities above the
// live stock are clamped and written back, and entries whose product was
// deleted are dropped, so the cart never shows unavailable quantities.
func (s *service) GetSnapshot(ctx context.Context, sessionKey string) (*Snapshot, error) {
	if sessionKey == "" {
		return nil, ErrMissingSession
	}

	log := logger.FromCtx(ctx).With(zap.String("method", "GetSnapshot"))

	entries, err := s.repo.GetAll(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{Lines: []Line{}}

	for productID, quantity := range entries {
		p, err := s.productRepo.GetByID(ctx, productID)
		if errors.Is(err, product.ErrProductNotFound) {
			log.Warn("dropping deleted product from cart", zap.Uint("product_id", productID))
			if err := s.repo.Remove(ctx, sessionKey, productID); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		if quantity > p.StockQuantity {
			// Someone else bought the last units; self-heal.
			if p.StockQuantity <= 0 {
				if err := s.repo.Remove(ctx, sessionKey, productID); err != nil {
					return nil, err
				}
				continue
			}
			quantity = p.StockQuantity
			if err := s.repo.SetQuantity(ctx, sessionKey, productID, quantity); err != nil {
				return nil, err
			}
		}

		subtotal := p.Price * float64(quantity)
		snapshot.Lines = append(snapshot.Lines, Line{
			Product:  *p,
			Quantity: quantity,
			Subtotal: subtotal,
		})
		snapshot.TotalPrice += subtotal
		snapshot.TotalItems += quantity
	}

	sort.Slice(snapshot.Lines, func(i, j int) bool {
		return snapshot.Lines[i].Product.Name < snapshot.Lines[j].Product.Name
	})

	return snapshot, nil
}

func (s *service) Count(ctx context.Context, sessionKey string) (int, error) {
	if sessionKey == "" {
		return 0, ErrMissingSession
	}

	entries, err := s.repo.GetAll(ctx, sessionKey)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, qty := range entries {
		total += qty
	}
	return total, nil
}

func (s *service) Clear(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return ErrMissingSession
	}
	return s.repo.Clear(ctx, sessionKey)
}
