package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/services"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/gin-gonic/gin"
)

// KitchenNotifier is told about changes the kitchen screens should pick up.
type KitchenNotifier interface {
	OrderCreated(order models.Order)
	OrderStatusChanged(ids []uint, status models.OrderStatus)
}

type OrderController struct {
	Orders  *services.OrderService
	Kitchen KitchenNotifier
}

func NewOrderController(orders *services.OrderService, kitchen KitchenNotifier) *OrderController {
	return &OrderController{Orders: orders, Kitchen: kitchen}
}

type statusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

type bulkStatusRequest struct {
	OrderIDs []uint             `json:"order_ids" binding:"required"`
	Status   models.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder -> order is paid at the till, so it starts as PAID
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if !bindJSON(c, &req) {
		return
	}
	order, err := oc.Orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if oc.Kitchen != nil {
		oc.Kitchen.OrderCreated(*order)
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetAllOrders -> ?status=&search=&limit=
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	filter := services.OrderFilter{
		Status: models.OrderStatus(c.Query("status")),
		Search: c.Query("search"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid limit"))
			return
		}
		filter.Limit = limit
	}

	orders, err := oc.Orders.GetOrders(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetKitchenOrders -> PAID orders, oldest first
func (oc *OrderController) GetKitchenOrders(c *gin.Context) {
	orders, err := oc.Orders.GetKitchenOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen queue", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	order, err := oc.Orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := oc.Orders.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if oc.Kitchen != nil {
		oc.Kitchen.OrderStatusChanged([]uint{order.ID}, order.Status)
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

func (oc *OrderController) UpdateMultipleOrderStatus(c *gin.Context) {
	var req bulkStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	moved, err := oc.Orders.UpdateMultipleOrderStatus(c.Request.Context(), req.OrderIDs, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if oc.Kitchen != nil && len(moved) > 0 {
		oc.Kitchen.OrderStatusChanged(moved, req.Status)
	}
	utils.RespondJSON(c, http.StatusOK, "Order statuses updated", gin.H{
		"updated":   len(moved),
		"order_ids": moved,
	})
}
