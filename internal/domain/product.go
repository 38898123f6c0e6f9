package domain

// Product has no invariants. Empty names and zero prices are accepted.
type Product struct {
	id    string
	name  string
	price float64
}

func NewProduct(id, name string, price float64) *Product {
	return &Product{
		id:    id,
		name:  name,
		price: price,
	}
}

func (p *Product) ID() string     { return p.id }
func (p *Product) Name() string   { return p.name }
func (p *Product) Price() float64 { return p.price }

func (p *Product) ChangeName(name string) {
	p.name = name
}

func (p *Product) ChangePrice(price float64) {
	p.price = price
}
