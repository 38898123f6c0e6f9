package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_service/internal/usecase"
)

type OrderHandler struct {
	useCase usecase.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc usecase.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/total", h.TotalOfOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("/:id/items", h.AddItem)
	}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req struct {
		CustomerID string                `json:"customer_id"`
		Items      []usecase.ItemRequest `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for place order: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	h.log.Infof("Processing place order request for customer %s (%d items)", req.CustomerID, len(req.Items))

	order, err := h.useCase.PlaceOrder(c.Request.Context(), req.CustomerID, req.Items)
	if err != nil {
		h.log.Errorf("Failed to place order for customer %s: %v", req.CustomerID, err)
		failWith(c, "Failed to place order", err)
		return
	}

	h.log.Infof("Order %s placed successfully for customer %s", order.ID(), order.CustomerID())
	SuccessResponse(c, http.StatusCreated, "Order placed successfully", toOrderResponse(order))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get order by ID %s: %v", id, err)
		failWith(c, "Failed to retrieve order", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", toOrderResponse(order))
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.useCase.List(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list orders: %v", err)
		failWith(c, "Failed to list orders", err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", resp)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	id := c.Param("id")
	var req usecase.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for add item to order %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	order, err := h.useCase.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.log.Warnf("Failed to add item to order %s: %v", id, err)
		failWith(c, "Failed to add item", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Item added successfully", toOrderResponse(order))
}

func (h *OrderHandler) TotalOfOrders(c *gin.Context) {
	total, err := h.useCase.Total(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to compute total of orders: %v", err)
		failWith(c, "Failed to compute total", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Total computed successfully", gin.H{"total": total})
}
