package domain

import (
	"math"

	"github.com/google/uuid"
)

// One reward point per two currency units of order total, rounded down.
const currencyUnitsPerPoint = 2

// OrderService holds no state besides the id generator. The zero value is ready to use.
type OrderService struct {
	NewID func() string
}

func (s OrderService) Total(orders []*Order) float64 {
	var total float64
	for _, o := range orders {
		total += o.Total()
	}
	return total
}

// PlaceOrder builds an order for the customer and credits the reward points it earns.
// The customer is left untouched when the order cannot be built.
func (s OrderService) PlaceOrder(customer *Customer, items []OrderItem) (*Order, error) {
	order, err := NewOrder(s.nextID(), customer.ID(), items)
	if err != nil {
		return nil, err
	}

	if err := customer.AddRewardPoints(RewardPointsFor(order.Total())); err != nil {
		return nil, err
	}
	return order, nil
}

// RewardPointsFor returns 0 for NaN and non-positive totals and saturates at math.MaxInt.
func RewardPointsFor(total float64) int {
	if math.IsNaN(total) || total <= 0 {
		return 0
	}
	points := math.Floor(total / currencyUnitsPerPoint)
	if points >= math.MaxInt {
		return math.MaxInt
	}
	return int(points)
}

func (s OrderService) nextID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
