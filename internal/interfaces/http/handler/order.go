package handler

import (
	"github.com/gin-gonic/gin"
	orderapp "github.com/maxwelladwale/coltech/internal/application/order"
	"github.com/maxwelladwale/coltech/internal/domain/trade"
	"github.com/maxwelladwale/coltech/internal/interfaces/http/middleware"
)

// OrderHandler handles confirmation, tracking and invoices
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Confirmation godoc
// @Summary      Order confirmation with next steps
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=orderapp.ConfirmationResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/confirmation [get]
func (h *OrderHandler) Confirmation(c *gin.Context) {
	conf, err := h.orderService.GetConfirmation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderapp.ToConfirmationResponse(conf))
}

// Track godoc
// @Summary      Track a guest order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body orderapp.TrackOrderRequest true "Order number and email"
// @Success      200 {object} dto.Response{data=orderapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/track [post]
func (h *OrderHandler) Track(c *gin.Context) {
	var req orderapp.TrackOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	o, err := h.orderService.Track(c.Request.Context(), req.OrderNumber, req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderapp.ToOrderResponse(o))
}

// Mine lists the signed-in customer's orders
func (h *OrderHandler) Mine(c *gin.Context) {
	orders, err := h.orderService.ListMine(c.Request.Context(), getUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderapp.ToOrderResponses(orders))
}

// GuestOrders lists orders placed as a guest with the signed-in
// customer's email
func (h *OrderHandler) GuestOrders(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil || claims.Email == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListByEmail(c.Request.Context(), claims.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderapp.ToOrderResponses(orders))
}

// PaymentStatus reports where the order's payment stands
func (h *OrderHandler) PaymentStatus(c *gin.Context) {
	orderID := c.Param("id")
	status, err := h.orderService.PaymentStatus(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderapp.ToPaymentStatusResponse(orderID, status))
}

// GenerateInvoice godoc
// @Summary      Render and store the order invoice
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      201 {object} dto.Response{data=orderapp.InvoiceResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /orders/{id}/invoice [post]
func (h *OrderHandler) GenerateInvoice(c *gin.Context) {
	invoice, err := h.orderService.GenerateInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, orderapp.ToInvoiceResponse(invoice))
}

// UpdateStatus moves an order along its lifecycle
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	o, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("id"), trade.OrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orderapp.ToOrderResponse(o))
}
