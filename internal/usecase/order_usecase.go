package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shop_service/internal/domain"
)

// ItemRequest asks for a quantity of a stored product. Name and price are copied from the
// product when the item is created.
type ItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, customerID string, items []ItemRequest) (*domain.Order, error)
	AddItem(ctx context.Context, orderID string, item ItemRequest) (*domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	Total(ctx context.Context) (float64, error)
}

type orderUseCase struct {
	orderRepo    domain.OrderRepository
	customerRepo domain.CustomerRepository
	productRepo  domain.ProductRepository
	service      domain.OrderService
	newID        func() string
	log          *logrus.Logger
}

func NewOrderUseCase(orders domain.OrderRepository, customers domain.CustomerRepository, products domain.ProductRepository, logger *logrus.Logger) OrderUseCase {
	return &orderUseCase{
		orderRepo:    orders,
		customerRepo: customers,
		productRepo:  products,
		service:      domain.OrderService{NewID: uuid.NewString},
		newID:        uuid.NewString,
		log:          logger,
	}
}

// PlaceOrder stores the new order together with the customer's credited reward points.
// The points are applied as an increment, so orders placed concurrently never drop a credit.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, customerID string, requests []ItemRequest) (*domain.Order, error) {
	if len(requests) == 0 {
		return nil, domain.NewValidationError("Order must have at least one item")
	}

	customer, err := uc.customerRepo.Find(ctx, customerID)
	if err != nil {
		uc.log.Warnf("Use Case: Cannot place order, customer %s not loaded: %v", customerID, err)
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(requests))
	for i, req := range requests {
		item, err := uc.buildItem(ctx, req)
		if err != nil {
			uc.log.Warnf("Use Case: Item %d of order for customer %s rejected: %v", i, customerID, err)
			return nil, err
		}
		items = append(items, item)
	}
	uc.log.Infof("Use Case: Validated %d item(s) for customer %s", len(items), customerID)

	pointsBefore := customer.RewardPoints()
	order, err := uc.service.PlaceOrder(customer, items)
	if err != nil {
		uc.log.Warnf("Use Case: Order for customer %s rejected: %v", customerID, err)
		return nil, err
	}
	credited := customer.RewardPoints() - pointsBefore

	uc.log.Infof("Use Case: Attempting to save order %s for customer %s to repository.", order.ID(), customerID)
	if err := uc.orderRepo.Place(ctx, order, credited); err != nil {
		uc.log.Errorf("Use Case: Repository failed to place order for customer %s: %v", customerID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order %s placed for customer %s (total %.2f, %d points credited)",
		order.ID(), customerID, order.Total(), credited)
	return order, nil
}

// AddItem appends an item to a stored order. No reward points are credited for it.
func (uc *orderUseCase) AddItem(ctx context.Context, orderID string, req ItemRequest) (*domain.Order, error) {
	item, err := uc.buildItem(ctx, req)
	if err != nil {
		uc.log.Warnf("Use Case: Item for order %s rejected: %v", orderID, err)
		return nil, err
	}

	if err := uc.orderRepo.AddItem(ctx, orderID, item); err != nil {
		uc.log.Warnf("Use Case: Cannot add item to order %s: %v", orderID, err)
		return nil, err
	}

	order, err := uc.orderRepo.Find(ctx, orderID)
	if err != nil {
		uc.log.Errorf("Use Case: Item added but order %s could not be reloaded: %v", orderID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Item %s (product %s) added to order %s, new total %.2f", item.ID(), item.ProductID(), orderID, order.Total())
	return order, nil
}

func (uc *orderUseCase) buildItem(ctx context.Context, req ItemRequest) (domain.OrderItem, error) {
	if req.Quantity <= 0 {
		return domain.OrderItem{}, domain.NewValidationError(fmt.Sprintf("Quantity of product %s must be positive", req.ProductID))
	}

	product, err := uc.productRepo.Find(ctx, req.ProductID)
	if err != nil {
		return domain.OrderItem{}, err
	}

	return domain.NewOrderItem(uc.newID(), product.Name(), product.Price(), product.ID(), req.Quantity), nil
}

func (uc *orderUseCase) Get(ctx context.Context, id string) (*domain.Order, error) {
	return uc.orderRepo.Find(ctx, id)
}

func (uc *orderUseCase) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := uc.orderRepo.FindAll(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders: %v", err)
		return nil, err
	}
	return orders, nil
}

// Total sums the totals of every stored order.
func (uc *orderUseCase) Total(ctx context.Context) (float64, error) {
	orders, err := uc.List(ctx)
	if err != nil {
		return 0, err
	}
	return uc.service.Total(orders), nil
}
