//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/usecase"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*readmodel.ProductRM
}

func newFakeProductRepo(products ...*readmodel.ProductRM) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[uuid.UUID]*readmodel.ProductRM)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*readmodel.ProductRM, error) {
	var out []*readmodel.ProductRM
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.ProductRM, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, usecase.ErrProductNotFound
}

func (f *fakeProductRepo) List(_ context.Context) ([]*readmodel.ProductRM, error) {
	var out []*readmodel.ProductRM
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

// fakeTx satisfies pgx.Tx for the handful of calls the checkout write path
// makes: Commit and the deferred Rollback.
type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(_ context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(_ context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(_ context.Context, _ pgx.Identifier, _ []string, _ pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(_ context.Context, _ *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                             { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(_ context.Context, _, _ string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row        { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(_ context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func catalogProduct(priceCents int64) *readmodel.ProductRM {
	return &readmodel.ProductRM{
		ID:         uuid.New(),
		Name:       "Hoodie",
		PriceCents: priceCents,
		Category:   "hoodies",
		CreatedAt:  time.Now(),
	}
}

func checkoutInput(lines ...usecase.CheckoutLine) usecase.CheckoutInput {
	return usecase.CheckoutInput{
		Items: lines,
		ShippingAddress: order.ShippingAddress{
			Name:    "A. Customer",
			Line1:   "1 Nile St",
			City:    "Cairo",
			Country: "EG",
		},
		Email: "buyer@example.com",
	}
}

func TestCheckoutUseCase_Checkout(t *testing.T) {
	product := catalogProduct(45000)
	repo := newFakeProductRepo(product)

	t.Run("prices come from the catalog and commit in one transaction", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		disp := &fakeDispatcher{}
		tx := &fakeTx{}
		uc := usecase.NewCheckoutUseCase(repo, orderRepo, disp, &fakeBeginner{tx: tx}, 5000)

		rm, err := uc.Checkout(context.Background(), checkoutInput(
			usecase.CheckoutLine{ProductID: product.ID, Quantity: 2},
		))
		require.NoError(t, err)

		// 2 x 45000 plus the flat shipping fee; nothing the client sent
		// influences the figure.
		assert.Equal(t, int64(95000), rm.TotalCents)
		assert.Equal(t, order.StatusProcessing, rm.Status)
		require.Len(t, rm.Items, 1)
		assert.Equal(t, int64(45000), rm.Items[0].UnitPriceCents)
		assert.Equal(t, product.Name, rm.Items[0].ProductName)

		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
		require.Len(t, orderRepo.created, 1)

		require.Len(t, disp.events, 1)
		assert.Equal(t, usecase.EventOrderCreated, disp.events[0].Kind)
	})

	t.Run("failed item insert rolls the order back", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		orderRepo.createErr = errors.New("order_items insert failed")
		disp := &fakeDispatcher{}
		tx := &fakeTx{}
		uc := usecase.NewCheckoutUseCase(repo, orderRepo, disp, &fakeBeginner{tx: tx}, 5000)

		_, err := uc.Checkout(context.Background(), checkoutInput(
			usecase.CheckoutLine{ProductID: product.ID, Quantity: 1},
		))
		require.ErrorIs(t, err, usecase.ErrDatabaseOperationFailed)

		assert.True(t, tx.rolledBack)
		assert.False(t, tx.committed)
		assert.Empty(t, disp.events)
	})

	t.Run("failed begin aborts before any write", func(t *testing.T) {
		orderRepo := newFakeOrderRepo()
		uc := usecase.NewCheckoutUseCase(repo, orderRepo, &fakeDispatcher{},
			&fakeBeginner{beginErr: errors.New("pool exhausted")}, 5000)

		_, err := uc.Checkout(context.Background(), checkoutInput(
			usecase.CheckoutLine{ProductID: product.ID, Quantity: 1},
		))
		require.ErrorIs(t, err, usecase.ErrDatabaseOperationFailed)
		assert.Empty(t, orderRepo.created)
	})
}

// The validation paths below never reach the database, so a nil beginner is
// safe.
func TestCheckoutUseCase_Validation(t *testing.T) {
	product := catalogProduct(45000)
	repo := newFakeProductRepo(product)

	t.Run("empty cart is rejected", func(t *testing.T) {
		uc := usecase.NewCheckoutUseCase(repo, newFakeOrderRepo(), &fakeDispatcher{}, nil, 5000)

		_, err := uc.Checkout(context.Background(), checkoutInput())
		assert.ErrorIs(t, err, usecase.ErrCheckoutValidation)
	})

	t.Run("missing email is rejected", func(t *testing.T) {
		uc := usecase.NewCheckoutUseCase(repo, newFakeOrderRepo(), &fakeDispatcher{}, nil, 5000)

		input := checkoutInput(usecase.CheckoutLine{ProductID: product.ID, Quantity: 1})
		input.Email = ""

		_, err := uc.Checkout(context.Background(), input)
		assert.ErrorIs(t, err, usecase.ErrCheckoutValidation)
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		uc := usecase.NewCheckoutUseCase(repo, newFakeOrderRepo(), &fakeDispatcher{}, nil, 5000)

		input := checkoutInput(usecase.CheckoutLine{ProductID: product.ID, Quantity: 1})
		input.Email = "not-an-address"

		_, err := uc.Checkout(context.Background(), input)
		assert.ErrorIs(t, err, usecase.ErrCheckoutValidation)
	})

	t.Run("unknown product fails the whole checkout", func(t *testing.T) {
		disp := &fakeDispatcher{}
		uc := usecase.NewCheckoutUseCase(repo, newFakeOrderRepo(), disp, nil, 5000)

		_, err := uc.Checkout(context.Background(), checkoutInput(
			usecase.CheckoutLine{ProductID: product.ID, Quantity: 1},
			usecase.CheckoutLine{ProductID: uuid.New(), Quantity: 1},
		))
		assert.ErrorIs(t, err, usecase.ErrProductNotFound)
		assert.Empty(t, disp.events)
	})

	t.Run("zero quantity line is rejected", func(t *testing.T) {
		uc := usecase.NewCheckoutUseCase(repo, newFakeOrderRepo(), &fakeDispatcher{}, nil, 5000)

		_, err := uc.Checkout(context.Background(), checkoutInput(
			usecase.CheckoutLine{ProductID: product.ID, Quantity: 0},
		))
		assert.ErrorIs(t, err, usecase.ErrCheckoutValidation)
	})
}
