package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/application/service"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/dto/request"
	"github.com/sangkips/farmstore-admin/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// UpdateStatus handles changing an order status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), &service.UpdateStatusInput{
		OrderID: id,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", result)
}
