package repository

import (
	"context"
	"encoding/json"

	"recoil-backend/internal/domain/cart"
	"recoil-backend/internal/infra"
	"recoil-backend/internal/infra/db"
)

type CartRepository struct {
	db db.DBTX
}

func NewCartRepository(pool db.DBTX) *CartRepository {
	return &CartRepository{db: pool}
}

func (r *CartRepository) Find(ctx context.Context, owner cart.OwnerKey) ([]cart.Item, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT items FROM carts WHERE owner_key = $1`,
		owner.String(),
	).Scan(&raw)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("cart not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find cart", err)
	}

	var items []cart.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, infra.WrapRepoErr("failed to decode cart items", err)
	}
	return items, nil
}

func (r *CartRepository) Upsert(ctx context.Context, owner cart.OwnerKey, items []cart.Item) error {
	if items == nil {
		items = []cart.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return infra.WrapRepoErr("failed to encode cart items", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO carts (owner_key, items, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (owner_key) DO UPDATE SET items = EXCLUDED.items, updated_at = now()`,
		owner.String(), raw,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert cart", err)
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, owner cart.OwnerKey) error {
	_, err := r.db.Exec(ctx, `DELETE FROM carts WHERE owner_key = $1`, owner.String())
	if err != nil {
		return infra.WrapRepoErr("failed to delete cart", err)
	}
	return nil
}
