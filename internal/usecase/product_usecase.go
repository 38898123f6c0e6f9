package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shop_service/internal/domain"
)

type ProductUseCase interface {
	Create(ctx context.Context, id, name string, price float64) (*domain.Product, error)
	Rename(ctx context.Context, id, name string) (*domain.Product, error)
	Reprice(ctx context.Context, id string, price float64) (*domain.Product, error)
	Update(ctx context.Context, id string, name *string, price *float64) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	locks       *keyLock
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		locks:       newKeyLock(),
		log:         logger,
	}
}

func (uc *productUseCase) Create(ctx context.Context, id, name string, price float64) (*domain.Product, error) {
	if id == "" {
		id = uuid.NewString()
	}
	product := domain.NewProduct(id, name, price)

	uc.log.Infof("Use Case: Attempting to create product '%s' (id %s)", name, id)
	if err := uc.productRepo.Create(ctx, product); err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", name, err)
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) Rename(ctx context.Context, id, name string) (*domain.Product, error) {
	return uc.Update(ctx, id, &name, nil)
}

func (uc *productUseCase) Reprice(ctx context.Context, id string, price float64) (*domain.Product, error) {
	return uc.Update(ctx, id, nil, &price)
}

// Update applies the non-nil fields in a single load and store. With both nil the product is
// returned unchanged and nothing is written.
func (uc *productUseCase) Update(ctx context.Context, id string, name *string, price *float64) (*domain.Product, error) {
	if name == nil && price == nil {
		return uc.productRepo.Find(ctx, id)
	}

	unlock := uc.locks.Lock(id)
	defer unlock()

	product, err := uc.productRepo.Find(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Product %s not loaded for update: %v", id, err)
		return nil, err
	}

	if name != nil {
		product.ChangeName(*name)
	}
	if price != nil {
		product.ChangePrice(*price)
	}

	if err := uc.productRepo.Update(ctx, product); err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product %s: %v", id, err)
		return nil, err
	}
	uc.log.Infof("Use Case: Product %s updated (name '%s', price %.2f)", id, product.Name(), product.Price())
	return product, nil
}

func (uc *productUseCase) Get(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.Find(ctx, id)
}

func (uc *productUseCase) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := uc.productRepo.FindAll(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, err
	}
	return products, nil
}
