package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shop_service/internal/domain"
	"shop_service/internal/usecase"
)

type CustomerHandler struct {
	useCase usecase.CustomerUseCase
	log     *logrus.Logger
}

func NewCustomerHandler(uc usecase.CustomerUseCase, logger *logrus.Logger) *CustomerHandler {
	return &CustomerHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CustomerHandler) RegisterRoutes(router gin.IRouter) {
	customers := router.Group("/customers")
	{
		customers.POST("", h.RegisterCustomer)
		customers.GET("", h.ListCustomers)
		customers.GET("/:id", h.GetCustomer)
		customers.PATCH("/:id", h.RenameCustomer)
		customers.PUT("/:id/address", h.ChangeAddress)
		customers.POST("/:id/activate", h.ActivateCustomer)
		customers.POST("/:id/deactivate", h.DeactivateCustomer)
	}
}

func (h *CustomerHandler) RegisterCustomer(c *gin.Context) {
	var req struct {
		ID      string          `json:"id"`
		Name    string          `json:"name"`
		Address *domain.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for register customer: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.useCase.Register(c.Request.Context(), req.ID, req.Name, req.Address)
	if err != nil {
		h.log.Warnf("Failed to register customer '%s': %v", req.Name, err)
		failWith(c, "Failed to register customer", err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Customer registered successfully", toCustomerResponse(customer))
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id := c.Param("id")
	customer, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get customer %s: %v", id, err)
		failWith(c, "Failed to retrieve customer", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Customer retrieved successfully", toCustomerResponse(customer))
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.useCase.List(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list customers: %v", err)
		failWith(c, "Failed to list customers", err)
		return
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		resp = append(resp, toCustomerResponse(customer))
	}
	SuccessResponse(c, http.StatusOK, "Customers retrieved successfully", resp)
}

func (h *CustomerHandler) RenameCustomer(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind JSON for rename customer %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.useCase.ChangeName(c.Request.Context(), id, req.Name)
	if err != nil {
		h.log.Warnf("Failed to rename customer %s: %v", id, err)
		failWith(c, "Failed to rename customer", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Customer renamed successfully", toCustomerResponse(customer))
}

func (h *CustomerHandler) ChangeAddress(c *gin.Context) {
	id := c.Param("id")
	var address domain.Address
	if err := c.ShouldBindJSON(&address); err != nil {
		h.log.Warnf("Failed to bind JSON for address of customer %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.useCase.ChangeAddress(c.Request.Context(), id, address)
	if err != nil {
		h.log.Warnf("Failed to change address of customer %s: %v", id, err)
		failWith(c, "Failed to change address", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Address changed successfully", toCustomerResponse(customer))
}

func (h *CustomerHandler) ActivateCustomer(c *gin.Context) {
	id := c.Param("id")
	customer, err := h.useCase.Activate(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to activate customer %s: %v", id, err)
		failWith(c, "Failed to activate customer", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Customer activated successfully", toCustomerResponse(customer))
}

func (h *CustomerHandler) DeactivateCustomer(c *gin.Context) {
	id := c.Param("id")
	customer, err := h.useCase.Deactivate(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to deactivate customer %s: %v", id, err)
		failWith(c, "Failed to deactivate customer", err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Customer deactivated successfully", toCustomerResponse(customer))
}
