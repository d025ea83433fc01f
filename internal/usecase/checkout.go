package usecase

import (
	"context"
	"errors"
	"log/slog"

	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/domain/user"
	"recoil-backend/internal/infra/db"
	"recoil-backend/internal/pkg/errs"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProductNotFound         = errs.New("product not found")
	ErrCheckoutValidation      = errs.New("checkout validation failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// CheckoutLine is one requested line. Any price the client submits is
// discarded before it gets here; only the product reference and quantity
// survive.
type CheckoutLine struct {
	ProductID uuid.UUID
	Quantity  int32
}

type CheckoutInput struct {
	Items           []CheckoutLine
	ShippingAddress order.ShippingAddress
	Email           string
	UserID          *uuid.UUID // nil for guest checkout
}

type ProductRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*readmodel.ProductRM, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error)
	List(ctx context.Context) ([]*readmodel.ProductRM, error)
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*readmodel.OrderRM, error)
	ListAll(ctx context.Context) ([]*readmodel.OrderRM, error)
	// UpdateStatus writes only when the current status still matches
	// expected; KindConflict otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected, next order.Status) error
	// DeleteWithStatus removes the order (items cascade) only when the
	// current status still matches expected; KindConflict otherwise.
	DeleteWithStatus(ctx context.Context, id uuid.UUID, expected order.Status) error
}

type CheckoutUseCase interface {
	Checkout(ctx context.Context, input CheckoutInput) (*readmodel.OrderRM, error)
}

type checkoutUseCaseImpl struct {
	productRepo     ProductRepository
	orderRepo       OrderRepository
	dispatcher      Dispatcher
	db              db.Beginner
	flatShippingFee order.Money
}

func NewCheckoutUseCase(
	productRepo ProductRepository,
	orderRepo OrderRepository,
	dispatcher Dispatcher,
	beginner db.Beginner,
	flatShippingFeeCents int64,
) CheckoutUseCase {
	return &checkoutUseCaseImpl{
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		dispatcher:      dispatcher,
		db:              beginner,
		flatShippingFee: order.MustMoney(flatShippingFeeCents),
	}
}

func (u *checkoutUseCaseImpl) Checkout(ctx context.Context, input CheckoutInput) (*readmodel.OrderRM, error) {
	if len(input.Items) == 0 {
		return nil, errs.Mark(errs.New("cart is empty"), ErrCheckoutValidation)
	}
	// Guest checkout has no profile to fall back on, so the submitted
	// address must be a deliverable one.
	email, err := user.NewEmail(input.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrCheckoutValidation)
	}

	items, err := u.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	orderEntity, err := order.NewOrder(input.UserID, email.Value(), input.ShippingAddress, items, u.flatShippingFee)
	if err != nil {
		return nil, errs.Mark(err, ErrCheckoutValidation)
	}

	if err := u.createOrderTransaction(ctx, orderEntity); err != nil {
		return nil, err
	}

	rm := orderToRM(orderEntity)

	// The order is durably committed; a failed dispatch must not undo the
	// checkout response.
	if dispatchErr := u.dispatcher.Dispatch(ctx, Event{Kind: EventOrderCreated, Order: rm}); dispatchErr != nil {
		slog.Warn("order created notification failed", "order_id", rm.ID, "error", dispatchErr)
	}

	return rm, nil
}

// priceItems re-derives name and unit price for every line from the
// catalog. An unresolvable product fails the whole checkout; no partial
// order is ever created.
func (u *checkoutUseCaseImpl) priceItems(ctx context.Context, lines []CheckoutLine) ([]order.Item, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := u.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	byID := make(map[uuid.UUID]*readmodel.ProductRM, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}

		price, priceErr := order.NewMoney(p.PriceCents)
		if priceErr != nil {
			return nil, errs.Mark(priceErr, ErrCheckoutValidation)
		}

		item, itemErr := order.NewItem(p.ID, p.Name, line.Quantity, price)
		if itemErr != nil {
			return nil, errs.Mark(itemErr, ErrCheckoutValidation)
		}
		items = append(items, item)
	}

	return items, nil
}

// createOrderTransaction writes the order row and its item rows in one
// transaction: no order without its items.
func (u *checkoutUseCaseImpl) createOrderTransaction(ctx context.Context, orderEntity *order.Order) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	if err := u.orderRepo.Create(ctx, tx, orderEntity); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return nil
}

func orderToRM(o *order.Order) *readmodel.OrderRM {
	items := make([]readmodel.OrderItemRM, 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, readmodel.OrderItemRM{
			ProductID:      it.ProductID(),
			ProductName:    it.Name(),
			Quantity:       it.Quantity(),
			UnitPriceCents: it.UnitPrice().Cents(),
		})
	}

	return &readmodel.OrderRM{
		ID:              o.ID(),
		UserID:          o.UserID(),
		CustomerEmail:   o.CustomerEmail(),
		TotalCents:      o.Total().Cents(),
		Status:          o.Status(),
		ShippingAddress: o.ShippingAddress(),
		Items:           items,
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
}
