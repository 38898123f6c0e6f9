package delivery

import "shop_service/internal/domain"

type customerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      *domain.Address `json:"address,omitempty"`
	Active       bool            `json:"active"`
	RewardPoints int             `json:"reward_points"`
}

func toCustomerResponse(c *domain.Customer) customerResponse {
	resp := customerResponse{
		ID:           c.ID(),
		Name:         c.Name(),
		Active:       c.IsActive(),
		RewardPoints: c.RewardPoints(),
	}
	if a, ok := c.Address(); ok {
		resp.Address = &a
	}
	return resp
}

type productResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{ID: p.ID(), Name: p.Name(), Price: p.Price()}
}

type orderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Items      []orderItemResponse `json:"items"`
	Total      float64             `json:"total"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	items := o.Items()
	resp := orderResponse{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Items:      make([]orderItemResponse, 0, len(items)),
		Total:      o.Total(),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}
	return resp
}
