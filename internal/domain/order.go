package domain

// OrderItem copies the product name and price at creation time. Later product changes do not reach it.
type OrderItem struct {
	id        string
	name      string
	price     float64
	productID string
	quantity  int
}

func NewOrderItem(id, name string, price float64, productID string, quantity int) OrderItem {
	return OrderItem{
		id:        id,
		name:      name,
		price:     price,
		productID: productID,
		quantity:  quantity,
	}
}

func (i OrderItem) ID() string        { return i.id }
func (i OrderItem) Name() string      { return i.name }
func (i OrderItem) Price() float64    { return i.price }
func (i OrderItem) ProductID() string { return i.productID }
func (i OrderItem) Quantity() int     { return i.quantity }

func (i OrderItem) Subtotal() float64 {
	return i.price * float64(i.quantity)
}

// Order references its customer by id only.
type Order struct {
	id         string
	customerID string
	items      []OrderItem
}

func NewOrder(id, customerID string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, NewValidationError("Order must have at least one item")
	}

	owned := make([]OrderItem, len(items))
	copy(owned, items)

	return &Order{
		id:         id,
		customerID: customerID,
		items:      owned,
	}, nil
}

func (o *Order) ID() string         { return o.id }
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy; use AddNewItem to grow the order.
func (o *Order) Items() []OrderItem {
	out := make([]OrderItem, len(o.items))
	copy(out, o.items)
	return out
}

func (o *Order) AddNewItem(item OrderItem) {
	o.items = append(o.items, item)
}

// Total is recomputed on every call.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.items {
		total += item.Subtotal()
	}
	return total
}
