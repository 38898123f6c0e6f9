package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shop_service/internal/domain"
)

type CustomerUseCase interface {
	Register(ctx context.Context, id, name string, address *domain.Address) (*domain.Customer, error)
	ChangeName(ctx context.Context, id, name string) (*domain.Customer, error)
	ChangeAddress(ctx context.Context, id string, address domain.Address) (*domain.Customer, error)
	Activate(ctx context.Context, id string) (*domain.Customer, error)
	Deactivate(ctx context.Context, id string) (*domain.Customer, error)
	Get(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context) ([]*domain.Customer, error)
}

type customerUseCase struct {
	customerRepo domain.CustomerRepository
	locks        *keyLock
	log          *logrus.Logger
}

func NewCustomerUseCase(repo domain.CustomerRepository, logger *logrus.Logger) CustomerUseCase {
	return &customerUseCase{
		customerRepo: repo,
		locks:        newKeyLock(),
		log:          logger,
	}
}

// Register creates a customer, generating an id when none is given. A non-nil address is
// assigned right after creation, so both events are emitted.
func (uc *customerUseCase) Register(ctx context.Context, id, name string, address *domain.Address) (*domain.Customer, error) {
	if id == "" {
		id = uuid.NewString()
	}

	customer, err := domain.NewCustomer(id, name, domain.WithEventHandler(domain.NewLogEventHandler(uc.log)))
	if err != nil {
		uc.log.Warnf("Use Case: Rejected customer registration (id %s): %v", id, err)
		return nil, err
	}
	if address != nil {
		customer.ChangeAddress(*address)
	}

	uc.log.Infof("Use Case: Attempting to save customer %s", id)
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		uc.log.Errorf("Use Case: Repository failed to create customer %s: %v", id, err)
		return nil, err
	}
	return customer, nil
}

func (uc *customerUseCase) ChangeName(ctx context.Context, id, name string) (*domain.Customer, error) {
	return uc.mutate(ctx, id, "change name", func(c *domain.Customer) error {
		return c.ChangeName(name)
	})
}

func (uc *customerUseCase) ChangeAddress(ctx context.Context, id string, address domain.Address) (*domain.Customer, error) {
	return uc.mutate(ctx, id, "change address", func(c *domain.Customer) error {
		c.ChangeAddress(address)
		return nil
	})
}

func (uc *customerUseCase) Activate(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.mutate(ctx, id, "activate", func(c *domain.Customer) error {
		return c.Activate()
	})
}

func (uc *customerUseCase) Deactivate(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.mutate(ctx, id, "deactivate", func(c *domain.Customer) error {
		c.Deactivate()
		return nil
	})
}

// mutate loads the customer, applies fn and stores the result. Nothing is stored when fn fails.
// Mutations of one customer run one at a time so none overwrites another's change.
func (uc *customerUseCase) mutate(ctx context.Context, id, action string, fn func(*domain.Customer) error) (*domain.Customer, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	customer, err := uc.customerRepo.Find(ctx, id)
	if err != nil {
		uc.log.Warnf("Use Case: Cannot %s, customer %s not loaded: %v", action, id, err)
		return nil, err
	}

	if err := fn(customer); err != nil {
		uc.log.Warnf("Use Case: Cannot %s for customer %s: %v", action, id, err)
		return nil, err
	}

	if err := uc.customerRepo.Update(ctx, customer); err != nil {
		uc.log.Errorf("Use Case: Repository failed to update customer %s after %s: %v", id, action, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Customer %s: %s done", id, action)
	return customer, nil
}

func (uc *customerUseCase) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.Find(ctx, id)
}

func (uc *customerUseCase) List(ctx context.Context) ([]*domain.Customer, error) {
	customers, err := uc.customerRepo.FindAll(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list customers: %v", err)
		return nil, err
	}
	return customers, nil
}
