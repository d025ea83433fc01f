package usecase

import (
	"context"
	"log/slog"

	"recoil-backend/internal/domain/cart"
	"recoil-backend/internal/infra"
	"recoil-backend/internal/pkg/async"
	"recoil-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCartItemInvalid = errs.New("invalid cart item")
	ErrCartMergeFailed = errs.New("cart merge failed")
)

type CartRepository interface {
	// Find returns KindNotFound when the owner has no cart row yet.
	Find(ctx context.Context, owner cart.OwnerKey) ([]cart.Item, error)
	// Upsert replaces the owner's items wholesale.
	Upsert(ctx context.Context, owner cart.OwnerKey, items []cart.Item) error
	Delete(ctx context.Context, owner cart.OwnerKey) error
}

type CartUseCase interface {
	Get(ctx context.Context, owner cart.OwnerKey) ([]cart.Item, error)
	AddItem(ctx context.Context, owner cart.OwnerKey, item cart.Item) ([]cart.Item, error)
	RemoveItem(ctx context.Context, owner cart.OwnerKey, productID uuid.UUID, variant string) ([]cart.Item, error)
	SetQuantity(ctx context.Context, owner cart.OwnerKey, productID uuid.UUID, variant string, qty int32) ([]cart.Item, error)
	Clear(ctx context.Context, owner cart.OwnerKey) error
	MergeGuestCart(ctx context.Context, guestToken string, userID uuid.UUID) ([]cart.Item, error)
}

type cartUseCaseImpl struct {
	repo   CartRepository
	runner async.Runner
}

func NewCartUseCase(repo CartRepository, runner async.Runner) CartUseCase {
	return &cartUseCaseImpl{
		repo:   repo,
		runner: runner,
	}
}

// load degrades to an empty cart on any read failure. The cart is a
// convenience cache; a broken read must not block shopping or checkout
// navigation.
func (c *cartUseCaseImpl) load(ctx context.Context, owner cart.OwnerKey) *cart.Cart {
	items, err := c.repo.Find(ctx, owner)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("cart read failed, starting empty", "owner", owner.String(), "error", err)
		}
		return cart.New()
	}
	return cart.FromItems(items)
}

// persistAsync is the write-behind half of the optimistic mutation: the
// caller already has the updated view, the durable write happens in the
// background and its failure is only logged. The authoritative totals are
// recomputed at checkout anyway.
func (c *cartUseCaseImpl) persistAsync(owner cart.OwnerKey, items []cart.Item) {
	// Writes for one owner are serialized so a slow upsert can never land
	// after a newer one and revert it.
	c.runner.GoSerial(owner.String(), "cart.upsert", func(ctx context.Context) error {
		return c.repo.Upsert(ctx, owner, items)
	})
}

func (c *cartUseCaseImpl) Get(ctx context.Context, owner cart.OwnerKey) ([]cart.Item, error) {
	return c.load(ctx, owner).Items(), nil
}

func (c *cartUseCaseImpl) AddItem(ctx context.Context, owner cart.OwnerKey, item cart.Item) ([]cart.Item, error) {
	crt := c.load(ctx, owner)
	if err := crt.Add(item); err != nil {
		return nil, errs.Mark(err, ErrCartItemInvalid)
	}

	items := crt.Items()
	c.persistAsync(owner, items)
	return items, nil
}

func (c *cartUseCaseImpl) RemoveItem(ctx context.Context, owner cart.OwnerKey, productID uuid.UUID, variant string) ([]cart.Item, error) {
	crt := c.load(ctx, owner)
	crt.Remove(productID, variant)

	items := crt.Items()
	c.persistAsync(owner, items)
	return items, nil
}

func (c *cartUseCaseImpl) SetQuantity(ctx context.Context, owner cart.OwnerKey, productID uuid.UUID, variant string, qty int32) ([]cart.Item, error) {
	crt := c.load(ctx, owner)
	crt.SetQuantity(productID, variant, qty)

	items := crt.Items()
	c.persistAsync(owner, items)
	return items, nil
}

func (c *cartUseCaseImpl) Clear(ctx context.Context, owner cart.OwnerKey) error {
	c.runner.GoSerial(owner.String(), "cart.delete", func(ctx context.Context) error {
		return c.repo.Delete(ctx, owner)
	})
	return nil
}

// loadForMerge tolerates a missing row but propagates real read failures.
// The merge overwrites the user row wholesale, so degrading a failed read
// to an empty cart here would commit a merge that dropped items.
func (c *cartUseCaseImpl) loadForMerge(ctx context.Context, owner cart.OwnerKey) (*cart.Cart, error) {
	items, err := c.repo.Find(ctx, owner)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return cart.New(), nil
		}
		return nil, errs.Mark(err, ErrCartMergeFailed)
	}
	return cart.FromItems(items), nil
}

// MergeGuestCart folds the anonymous cart into the user cart at sign-in.
// Same (product, variant) lines have their quantities summed; nothing is
// ever silently dropped. Unlike ordinary mutations this persists
// synchronously: the guest row is deleted in the same operation and losing
// the merged result would lose items the shopper already picked.
func (c *cartUseCaseImpl) MergeGuestCart(ctx context.Context, guestToken string, userID uuid.UUID) ([]cart.Item, error) {
	guestOwner := cart.OwnerForGuest(guestToken)
	userOwner := cart.OwnerForUser(userID)

	guestCart, err := c.loadForMerge(ctx, guestOwner)
	if err != nil {
		return nil, err
	}
	userCart, err := c.loadForMerge(ctx, userOwner)
	if err != nil {
		return nil, err
	}

	// Empty guest cart: nothing to merge, just hand back the user cart.
	if guestCart.IsEmpty() {
		return userCart.Items(), nil
	}

	merged := cart.Merge(userCart.Items(), guestCart.Items())

	if err := c.repo.Upsert(ctx, userOwner, merged); err != nil {
		return nil, errs.Mark(err, ErrCartMergeFailed)
	}

	if err := c.repo.Delete(ctx, guestOwner); err != nil {
		// The merged cart is safe; a stale guest row only risks a
		// double-merge if the same token is replayed.
		slog.Warn("failed to clear guest cart after merge", "owner", guestOwner.String(), "error", err)
	}

	return merged, nil
}
