package usecase

import (
	"context"

	"recoil-backend/internal/infra"
	"recoil-backend/internal/pkg/errs"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// ProductUseCase covers the read-only catalog surface. The checkout engine
// reads prices through the same repository; nothing in this core writes
// the catalog.
type ProductUseCase interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error)
	ListProducts(ctx context.Context) ([]*readmodel.ProductRM, error)
}

type productUseCaseImpl struct {
	productRepo ProductRepository
}

func NewProductUseCase(productRepo ProductRepository) ProductUseCase {
	return &productUseCaseImpl{productRepo: productRepo}
}

func (u *productUseCaseImpl) GetProduct(ctx context.Context, id uuid.UUID) (*readmodel.ProductRM, error) {
	rm, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm, nil
}

func (u *productUseCaseImpl) ListProducts(ctx context.Context) ([]*readmodel.ProductRM, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return products, nil
}
