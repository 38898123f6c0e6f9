package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_service/internal/usecase"
)

type ProductHandler struct {
	useCase usecase.ProductUseCase
	log     *logrus.Logger
}

func NewProductHandler(uc usecase.ProductUseCase, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PATCH("/:id", h.UpdateProduct)
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for create product: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.useCase.Create(c.Request.Context(), req.ID, req.Name, req.Price)
	if err != nil {
		h.log.Errorf("Failed to create product '%s': %v", req.Name, err)
		failWith(c, "Failed to create product", err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Product created successfully", toProductResponse(product))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")
	product, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product %s: %v", id, err)
		failWith(c, "Failed to retrieve product", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", toProductResponse(product))
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.List(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		failWith(c, "Failed to list products", err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", resp)
}

// UpdateProduct applies whichever of name and price are present in the body.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name  *string  `json:"name"`
		Price *float64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for update product %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Name == nil && req.Price == nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: 'name' or 'price' is required")
		return
	}

	product, err := h.useCase.Update(c.Request.Context(), id, req.Name, req.Price)
	if err != nil {
		h.log.Warnf("Failed to update product %s: %v", id, err)
		failWith(c, "Failed to update product", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Product updated successfully", toProductResponse(product))
}
