package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"bloomshop-be/internal/cart"
	"bloomshop-be/internal/logger"
	"bloomshop-be/internal/metrics"
	"bloomshop-be/internal/product"
	"bloomshop-be/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the checkout orchestrator and the order status engine.
type Service interface {
	// BeginCheckout re-validates the selected subset of the cart against
	// live stock and commits it as a one-time Draft.
	BeginCheckout(ctx context.Context, sessionKey string, customerID *uint, selected []uint) (*Draft, error)

	// FinalizeCheckout turns a pending draft into a persisted order as a
	// single atomic unit, then clears the purchased entries from the cart.
	FinalizeCheckout(ctx context.Context, draftID uuid.UUID, info CustomerInfo, paymentMethod string, proofName string, proof io.Reader) (*Order, error)

	UpdateStatus(ctx context.Context, orderID uint, newStatus Status) error
	GetOrders(ctx context.Context, customerID *uint) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint, requesterID *uint, isAdmin bool) (*Order, error)
	GetSalesStats(ctx context.Context) ([]ProductStat, error)
}

type service struct {
	repo        Repository
	productRepo product.Repository
	cartRepo    cart.Repository
	blobs       storage.Store
}

func NewService(repo Repository, productRepo product.Repository, cartRepo cart.Repository, blobs storage.Store) Service {
	return &service{
		repo:        repo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		blobs:       blobs,
	}
}

func (s *service) BeginCheckout(ctx context.Context, sessionKey string, customerID *uint, selected []uint) (*Draft, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "BeginCheckout"),
		zap.Int("selected_count", len(selected)),
	)

	if sessionKey == "" {
		return nil, cart.ErrMissingSession
	}
	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}

	entries, err := s.cartRepo.GetAll(ctx, sessionKey)
	if err != nil {
		log.Error("failed to read cart", zap.Error(err))
		return nil, err
	}

	draft := &Draft{
		ID:         uuid.New(),
		SessionKey: sessionKey,
		CustomerID: customerID,
		Status:     DraftStatusPending,
		ExpiresAt:  time.Now().Add(draftTTL),
	}

	for _, productID := range selected {
		quantity := entries[productID]
		if quantity < 1 {
			continue
		}

		p, err := s.productRepo.GetByID(ctx, productID)
		if err != nil {
			log.Error("failed to load product for checkout",
				zap.Uint("product_id", productID),
				zap.Error(err),
			)
			return nil, err
		}

		// Fail fast on the first shortfall; the whole checkout aborts.
		if quantity > p.StockQuantity {
			return nil, fmt.Errorf("%w: %q (need %d, have %d)",
				ErrInsufficientStock, p.Name, quantity, p.StockQuantity)
		}

		subtotal := p.Price * float64(quantity)
		draft.Items = append(draft.Items, DraftItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    quantity,
			UnitPrice:   p.Price,
			Subtotal:    subtotal,
		})
		draft.TotalPrice += subtotal
	}

	if len(draft.Items) == 0 {
		return nil, ErrEmptySelection
	}

	if err := s.repo.CreateDraft(ctx, draft); err != nil {
		return nil, err
	}

	log.Info("checkout draft created",
		zap.String("draft_id", draft.ID.String()),
		zap.Float64("total_price", draft.TotalPrice),
	)

	return draft, nil
}

func (s *service) FinalizeCheckout(ctx context.Context, draftID uuid.UUID, info CustomerInfo, paymentMethod string, proofName string, proof io.Reader) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "FinalizeCheckout"),
		zap.String("draft_id", draftID.String()),
	)
	start := time.Now()

	if info.Name == "" || info.Phone == "" || info.Address == "" {
		return nil, ErrMissingCustomerInfo
	}
	if paymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}

	draft, err := s.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Status != DraftStatusPending {
		return nil, ErrDraftConsumed
	}
	if draft.Expired(time.Now()) {
		// Mark expired lazily; the conditional update keeps this racefree.
		_ = s.repo.ExpireDraft(ctx, draft.ID)
		return nil, ErrDraftExpired
	}

	o := &Order{
		CustomerID:      draft.CustomerID,
		CustomerName:    info.Name,
		CustomerPhone:   info.Phone,
		CustomerAddress: info.Address,
		PaymentMethod:   paymentMethod,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}
	for _, item := range draft.Items {
		o.Items = append(o.Items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		})
	}

	// Store the proof up front so its reference lands inside the atomic
	// insert; the blob is removed again if the transaction fails.
	var proofRef string
	if paymentMethod == PaymentMethodBankTransfer && proof != nil && proofName != "" {
		ref, err := s.blobs.Save(storage.CategoryProof, fmt.Sprintf("proof_%s_%s", draft.ID, proofName), proof)
		if err != nil {
			log.Error("failed to store payment proof", zap.Error(err))
			return nil, err
		}
		proofRef = ref
		o.PaymentProofFilename = &proofRef
	}

	if err := s.repo.CreateOrderTx(ctx, o, draft.ID); err != nil {
		metrics.CheckoutFailedTotal.WithLabelValues(failureReason(err)).Inc()
		if proofRef != "" {
			if rmErr := s.blobs.Remove(storage.CategoryProof, proofRef); rmErr != nil {
				log.Warn("failed to remove orphaned payment proof", zap.Error(rmErr))
			}
		}
		return nil, err
	}

	// The order is committed; a cart cleanup failure only means stale
	// entries, which the snapshot self-heals later.
	purchased := make([]uint, 0, len(draft.Items))
	for _, item := range draft.Items {
		purchased = append(purchased, item.ProductID)
	}
	if err := s.cartRepo.Remove(ctx, draft.SessionKey, purchased...); err != nil {
		log.Warn("failed to clear purchased cart entries", zap.Error(err))
	}

	metrics.OrdersCreatedTotal.Inc()
	metrics.CheckoutLatency.Observe(time.Since(start).Seconds())

	log.Info("order created",
		zap.Uint("order_id", o.ID),
		zap.Float64("total_price", o.TotalPrice),
		zap.String("payment_method", paymentMethod),
	)

	return o, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ErrDraftConsumed):
		return "draft_conflict"
	default:
		return "internal"
	}
}

func (s *service) UpdateStatus(ctx context.Context, orderID uint, newStatus Status) error {
	if !newStatus.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, newStatus)
	}

	previous, restored, err := s.repo.UpdateStatusTx(ctx, orderID, newStatus)
	if err != nil {
		return err
	}

	metrics.OrderStatusChangesTotal.WithLabelValues(string(newStatus)).Inc()
	if restored > 0 {
		metrics.StockRestoredTotal.Add(float64(restored))
	}

	logger.FromCtx(ctx).Info("order status updated",
		zap.Uint("order_id", orderID),
		zap.String("from", string(previous)),
		zap.String("to", string(newStatus)),
		zap.Int("units_restored", restored),
	)

	return nil
}

func (s *service) GetOrders(ctx context.Context, customerID *uint) ([]*Order, error) {
	return s.repo.GetOrders(ctx, customerID)
}

// GetOrderDetail returns an order; customers only see their own.
func (s *service) GetOrderDetail(ctx context.Context, orderID uint, requesterID *uint, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if requesterID == nil || o.CustomerID == nil || *o.CustomerID != *requesterID {
			return nil, ErrUnauthorized
		}
	}

	return o, nil
}

func (s *service) GetSalesStats(ctx context.Context) ([]ProductStat, error) {
	return s.repo.GetSalesStats(ctx)
}
