package repository

import (
	"context"

	"recoil-backend/internal/infra"
	"recoil-backend/internal/infra/db"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(pool db.DBTX) *ProductRepository {
	return &ProductRepository{db: pool}
}

const productColumns = `id, name, price_cents, image_url, category, created_at`

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	var p readmodel.ProductRM
	if err := row.Scan(&p.ID, &p.Name, &p.PriceCents, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return &p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*readmodel.ProductRM, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find products by ids", err)
	}
	defer rows.Close()

	var result []*readmodel.ProductRM
	for rows.Next() {
		var p readmodel.ProductRM
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read product rows", err)
	}
	return result, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]*readmodel.ProductRM, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var result []*readmodel.ProductRM
	for rows.Next() {
		var p readmodel.ProductRM
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.ImageURL, &p.Category, &p.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read product rows", err)
	}
	return result, nil
}
